package dashboard

import (
	"sync"
	"time"

	"github.com/noah-isme/edgylearn-api/internal/liveness"
	"github.com/noah-isme/edgylearn-api/internal/models"
)

const (
	// ActivityLimit caps the teacher activity feed.
	ActivityLimit = 4
	// TeacherCoursesLimit caps the teacher course list.
	TeacherCoursesLimit = 50

	teacherActivityThreshold = 0.7
	teacherStatsThreshold    = 0.8
	teacherHoursStep         = 0.5
)

// TeacherSnapshot is the full teacher dashboard state.
type TeacherSnapshot struct {
	Stats    models.TeacherStats    `json:"stats"`
	Courses  []models.TeacherCourse `json:"courses"`
	Activity []models.ActivityItem  `json:"activity"`
}

// Teacher is the teacher dashboard container.
type Teacher struct {
	mu       sync.Mutex
	state    TeacherSnapshot
	messages []string
	ids      *IDGenerator
	now      func() time.Time
}

// NewTeacher copies initial into a new container. messages feed the simulated
// activity stream; ids and now may be nil.
func NewTeacher(initial TeacherSnapshot, messages []string, ids *IDGenerator, now func() time.Time) *Teacher {
	if now == nil {
		now = time.Now
	}
	if ids == nil {
		ids = NewIDGenerator(now)
	}
	return &Teacher{
		state: TeacherSnapshot{
			Stats:    initial.Stats,
			Courses:  cloned(initial.Courses),
			Activity: cloned(initial.Activity),
		},
		messages: cloned(messages),
		ids:      ids,
		now:      now,
	}
}

// Role implements Board.
func (t *Teacher) Role() models.Role { return models.RoleTeacher }

// View implements Board.
func (t *Teacher) View() interface{} { return t.Snapshot() }

// Snapshot returns the current state.
func (t *Teacher) Snapshot() TeacherSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Course looks up a course by id.
func (t *Teacher) Course(id int64) (models.TeacherCourse, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.courseIndex(id)
	if idx < 0 {
		return models.TeacherCourse{}, false
	}
	return t.state.Courses[idx], true
}

// AddCourse prepends a course produced by the creation form and bumps the
// course count.
func (t *Teacher) AddCourse(course models.TeacherCourse) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.state
	next.Courses = prepended(course, t.state.Courses, TeacherCoursesLimit)
	next.Stats.TotalCourses++
	t.state = next
}

// UpdateCourse replaces the course with the same id.
func (t *Teacher) UpdateCourse(course models.TeacherCourse) Change[models.TeacherCourse] {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.courseIndex(course.ID)
	if idx < 0 {
		return Change[models.TeacherCourse]{}
	}

	before := t.state.Courses[idx]
	next := t.state
	next.Courses = replaced(t.state.Courses, idx, course)
	t.state = next

	return Change[models.TeacherCourse]{Before: before, After: course, Found: true, Applied: true}
}

// Publish submits a draft or rejected course for review.
func (t *Teacher) Publish(id int64) Change[models.TeacherCourse] {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.courseIndex(id)
	if idx < 0 {
		return Change[models.TeacherCourse]{}
	}

	before := t.state.Courses[idx]
	if before.Status != models.CourseStatusDraft && before.Status != models.CourseStatusRejected {
		return Change[models.TeacherCourse]{Before: before, After: before, Found: true}
	}

	after := before
	after.Status = models.CourseStatusPending
	after.LastUpdate = t.now()

	next := t.state
	next.Courses = replaced(t.state.Courses, idx, after)
	t.state = next

	return Change[models.TeacherCourse]{Before: before, After: after, Found: true, Applied: true}
}

// Delete removes a course. The course count only drops when something was removed.
func (t *Teacher) Delete(id int64) Change[models.TeacherCourse] {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.courseIndex(id)
	if idx < 0 {
		return Change[models.TeacherCourse]{}
	}

	before := t.state.Courses[idx]
	next := t.state
	next.Courses = removed(t.state.Courses, idx)
	if next.Stats.TotalCourses > 0 {
		next.Stats.TotalCourses--
	}
	t.state = next

	return Change[models.TeacherCourse]{Before: before, Found: true, Applied: true}
}

func (t *Teacher) courseIndex(id int64) int {
	return indexOf(t.state.Courses, func(c models.TeacherCourse) bool { return c.ID == id })
}

// Tick may post a simulated activity message. Only a tick that posts one can
// also grow the student count and monthly hours.
func (t *Teacher) Tick(src liveness.Source) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	changed := false
	next := t.state

	if len(t.messages) > 0 && src.Float64() > teacherActivityThreshold {
		item := models.ActivityItem{
			ID:      t.ids.Next(),
			Type:    models.ActivityEnrollment,
			Message: t.messages[src.Intn(len(t.messages))],
			Time:    t.now(),
			IsNew:   true,
		}
		next.Activity = prepended(item, t.state.Activity, ActivityLimit)
		changed = true

		if src.Float64() > teacherStatsThreshold {
			next.Stats.TotalStudents++
			next.Stats.MonthlyHours += teacherHoursStep
		}
	}

	if changed {
		t.state = next
	}
	return changed
}
