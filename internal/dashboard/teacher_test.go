package dashboard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edgylearn-api/internal/liveness"
	"github.com/noah-isme/edgylearn-api/internal/models"
)

var liveMessages = []string{
	"Nuevo estudiante inscrito en React Avanzado",
	"Carlos completó el módulo 3",
}

func newTeacher() *Teacher {
	return NewTeacher(teacherFixture(), liveMessages, NewIDGenerator(clock), clock)
}

func TestTeacherAddCourse(t *testing.T) {
	teacher := newTeacher()

	teacher.AddCourse(models.TeacherCourse{ID: 99, Title: "Go", Status: models.CourseStatusDraft})

	snap := teacher.Snapshot()
	require.Len(t, snap.Courses, 5)
	require.Equal(t, int64(99), snap.Courses[0].ID)
	require.Equal(t, 6, snap.Stats.TotalCourses)
}

func TestTeacherAddCourseTruncates(t *testing.T) {
	teacher := NewTeacher(TeacherSnapshot{}, nil, nil, clock)
	for i := 1; i <= TeacherCoursesLimit+3; i++ {
		teacher.AddCourse(models.TeacherCourse{ID: int64(i)})
	}

	snap := teacher.Snapshot()
	require.Len(t, snap.Courses, TeacherCoursesLimit)
	require.Equal(t, int64(TeacherCoursesLimit+3), snap.Courses[0].ID)
}

func TestTeacherUpdateCourse(t *testing.T) {
	teacher := newTeacher()

	course, ok := teacher.Course(2)
	require.True(t, ok)
	course.Title = "Node.js Profesional"

	change := teacher.UpdateCourse(course)
	require.True(t, change.Applied)
	require.Equal(t, "Node.js", change.Before.Title)

	updated, _ := teacher.Course(2)
	require.Equal(t, "Node.js Profesional", updated.Title)
	require.Equal(t, 5, teacher.Snapshot().Stats.TotalCourses)

	require.False(t, teacher.UpdateCourse(models.TeacherCourse{ID: 77}).Found)
}

func TestTeacherPublish(t *testing.T) {
	teacher := newTeacher()

	change := teacher.Publish(4)
	require.True(t, change.Applied)
	require.Equal(t, models.CourseStatusPending, change.After.Status)
	require.Equal(t, fixedNow, change.After.LastUpdate)

	approved := teacher.Publish(1)
	require.True(t, approved.Found)
	require.False(t, approved.Applied)
	course, _ := teacher.Course(1)
	require.Equal(t, models.CourseStatusApproved, course.Status)
}

func TestTeacherPublishRejected(t *testing.T) {
	fixture := teacherFixture()
	fixture.Courses[1].Status = models.CourseStatusRejected
	teacher := NewTeacher(fixture, nil, nil, clock)

	require.True(t, teacher.Publish(2).Applied)
	course, _ := teacher.Course(2)
	require.Equal(t, models.CourseStatusPending, course.Status)
}

func TestTeacherDelete(t *testing.T) {
	teacher := newTeacher()

	change := teacher.Delete(3)
	require.True(t, change.Applied)
	require.Equal(t, "TypeScript", change.Before.Title)

	snap := teacher.Snapshot()
	require.Len(t, snap.Courses, 3)
	require.Equal(t, 4, snap.Stats.TotalCourses)

	require.False(t, teacher.Delete(3).Found)
	require.Equal(t, 4, teacher.Snapshot().Stats.TotalCourses)
}

func TestTeacherTickPostsActivity(t *testing.T) {
	teacher := newTeacher()

	changed := teacher.Tick(liveness.NewSequence([]float64{0.75, 0.1}, []int{1}))
	require.True(t, changed)

	snap := teacher.Snapshot()
	require.Len(t, snap.Activity, ActivityLimit)
	require.Equal(t, liveMessages[1], snap.Activity[0].Message)
	require.True(t, snap.Activity[0].IsNew)
	require.Equal(t, fixedNow.UnixMilli(), snap.Activity[0].ID)
	require.Equal(t, int64(3), snap.Activity[3].ID)
	require.Equal(t, 156, snap.Stats.TotalStudents)
}

func TestTeacherTickGrowsStats(t *testing.T) {
	teacher := newTeacher()

	require.True(t, teacher.Tick(liveness.NewSequence([]float64{0.75, 0.95}, []int{0})))

	snap := teacher.Snapshot()
	require.Equal(t, 157, snap.Stats.TotalStudents)
	require.Equal(t, 32.5, snap.Stats.MonthlyHours)
	require.Equal(t, liveMessages[0], snap.Activity[0].Message)
	require.Equal(t, fixedNow.UnixMilli(), snap.Activity[0].ID)
}

func TestTeacherTickStatsNeedActivity(t *testing.T) {
	teacher := newTeacher()
	before := teacher.Snapshot()

	require.False(t, teacher.Tick(liveness.NewSequence([]float64{0.2, 0.95}, nil)))

	snap := teacher.Snapshot()
	require.Equal(t, before, snap)
	require.Equal(t, 156, snap.Stats.TotalStudents)
	require.Equal(t, int64(1), snap.Activity[0].ID)
}

func TestTeacherTickQuiet(t *testing.T) {
	teacher := newTeacher()
	before := teacher.Snapshot()

	require.False(t, teacher.Tick(liveness.NewSequence([]float64{0.1}, nil)))
	require.Equal(t, before, teacher.Snapshot())
}

func TestTeacherActivityIDsUnique(t *testing.T) {
	teacher := NewTeacher(TeacherSnapshot{}, liveMessages, NewIDGenerator(clock), clock)
	src := liveness.NewSequence([]float64{0.99}, []int{0})

	for i := 0; i < 3; i++ {
		teacher.Tick(src)
	}

	seen := map[int64]bool{}
	for _, item := range teacher.Snapshot().Activity {
		require.False(t, seen[item.ID])
		seen[item.ID] = true
	}
	require.Len(t, seen, 3)
}
