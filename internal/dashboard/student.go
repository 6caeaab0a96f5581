package dashboard

import (
	"sync"

	"github.com/noah-isme/edgylearn-api/internal/liveness"
	"github.com/noah-isme/edgylearn-api/internal/models"
)

const (
	// ContinueStep is how far one "continue" moves a course forward.
	ContinueStep = 5
	// FirstLesson is the next lesson shown for a freshly enrolled course.
	FirstLesson = "Introducción"

	studentTickThreshold = 0.8
	studentHoursStep     = 0.5
	maxProgress          = 100
)

// StudentSnapshot is the full student dashboard state.
type StudentSnapshot struct {
	Progress  models.StudentProgress   `json:"progress"`
	Enrolled  []models.EnrolledCourse  `json:"enrolled_courses"`
	Suggested []models.SuggestedCourse `json:"suggested_courses"`
}

// Student is the student dashboard container.
type Student struct {
	mu    sync.Mutex
	state StudentSnapshot
}

// NewStudent copies initial into a new container.
func NewStudent(initial StudentSnapshot) *Student {
	return &Student{state: StudentSnapshot{
		Progress:  initial.Progress,
		Enrolled:  cloned(initial.Enrolled),
		Suggested: cloned(initial.Suggested),
	}}
}

// Role implements Board.
func (s *Student) Role() models.Role { return models.RoleStudent }

// View implements Board.
func (s *Student) View() interface{} { return s.Snapshot() }

// Snapshot returns the current state.
func (s *Student) Snapshot() StudentSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Continue advances an enrolled course. Reaching 100% counts as a completion
// and extends the streak, once.
func (s *Student) Continue(id int64) Change[models.EnrolledCourse] {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.enrolledIndex(id)
	if idx < 0 {
		return Change[models.EnrolledCourse]{}
	}

	before := s.state.Enrolled[idx]
	if before.Progress >= maxProgress {
		return Change[models.EnrolledCourse]{Before: before, After: before, Found: true}
	}

	after := before
	after.Progress = min(before.Progress+ContinueStep, maxProgress)

	next := s.state
	next.Enrolled = replaced(s.state.Enrolled, idx, after)
	if after.Progress == maxProgress {
		next.Progress.CompletedCourses++
		next.Progress.Streak++
	}
	s.state = next

	return Change[models.EnrolledCourse]{Before: before, After: after, Found: true, Applied: true}
}

// ToggleBookmark flips the bookmark flag of an enrolled course.
func (s *Student) ToggleBookmark(id int64) Change[models.EnrolledCourse] {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.enrolledIndex(id)
	if idx < 0 {
		return Change[models.EnrolledCourse]{}
	}

	before := s.state.Enrolled[idx]
	after := before
	after.IsBookmarked = !before.IsBookmarked

	next := s.state
	next.Enrolled = replaced(s.state.Enrolled, idx, after)
	s.state = next

	return Change[models.EnrolledCourse]{Before: before, After: after, Found: true, Applied: true}
}

// ToggleLike flips the like flag of a suggested course.
func (s *Student) ToggleLike(id int64) Change[models.SuggestedCourse] {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.suggestedIndex(id)
	if idx < 0 {
		return Change[models.SuggestedCourse]{}
	}

	before := s.state.Suggested[idx]
	after := before
	after.IsLiked = !before.IsLiked

	next := s.state
	next.Suggested = replaced(s.state.Suggested, idx, after)
	s.state = next

	return Change[models.SuggestedCourse]{Before: before, After: after, Found: true, Applied: true}
}

// Enroll marks a suggestion as enrolled, bumps the course count and starts
// the course at 0%. Enrolling twice is a no-op.
func (s *Student) Enroll(id int64) Change[models.SuggestedCourse] {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.suggestedIndex(id)
	if idx < 0 {
		return Change[models.SuggestedCourse]{}
	}

	before := s.state.Suggested[idx]
	if before.Enrolled {
		return Change[models.SuggestedCourse]{Before: before, After: before, Found: true}
	}

	after := before
	after.Enrolled = true

	next := s.state
	next.Suggested = replaced(s.state.Suggested, idx, after)
	next.Progress.TotalCourses++
	if s.enrolledIndex(id) < 0 {
		next.Enrolled = prepended(models.EnrolledCourse{
			ID:             after.ID,
			Title:          after.Title,
			Instructor:     after.Instructor,
			NextLesson:     FirstLesson,
			TimeToComplete: after.Duration,
			Difficulty:     models.LevelBeginner,
		}, s.state.Enrolled, 0)
	}
	s.state = next

	return Change[models.SuggestedCourse]{Before: before, After: after, Found: true, Applied: true}
}

func (s *Student) enrolledIndex(id int64) int {
	return indexOf(s.state.Enrolled, func(c models.EnrolledCourse) bool { return c.ID == id })
}

func (s *Student) suggestedIndex(id int64) int {
	return indexOf(s.state.Suggested, func(c models.SuggestedCourse) bool { return c.ID == id })
}

// Tick simulates study time: more weekly hours and a point of overall progress.
func (s *Student) Tick(src liveness.Source) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if src.Float64() <= studentTickThreshold {
		return false
	}

	next := s.state
	next.Progress.WeeklyHours += studentHoursStep
	next.Progress.OverallProgress = min(next.Progress.OverallProgress+1, maxProgress)
	s.state = next
	return true
}
