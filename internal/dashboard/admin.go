package dashboard

import (
	"sync"

	"github.com/noah-isme/edgylearn-api/internal/liveness"
	"github.com/noah-isme/edgylearn-api/internal/models"
)

const (
	// RecentUsersLimit caps the admin "recent users" list.
	RecentUsersLimit   = 4
	adminTickThreshold = 0.8
)

// AdminSnapshot is the full admin dashboard state.
type AdminSnapshot struct {
	Stats          models.AdminStats      `json:"stats"`
	PendingCourses []models.PendingCourse `json:"pending_courses"`
	RecentUsers    []models.ManagedUser   `json:"recent_users"`
	Metrics        []models.SystemMetric  `json:"metrics"`
}

// Admin is the admin dashboard container.
type Admin struct {
	mu    sync.Mutex
	state AdminSnapshot
}

// NewAdmin copies initial into a new container.
func NewAdmin(initial AdminSnapshot) *Admin {
	return &Admin{state: AdminSnapshot{
		Stats:          initial.Stats,
		PendingCourses: cloned(initial.PendingCourses),
		RecentUsers:    cloned(initial.RecentUsers),
		Metrics:        cloned(initial.Metrics),
	}}
}

// Role implements Board.
func (a *Admin) Role() models.Role { return models.RoleAdmin }

// View implements Board.
func (a *Admin) View() interface{} { return a.Snapshot() }

// Snapshot returns the current state.
func (a *Admin) Snapshot() AdminSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Approve publishes a pending course: it leaves the pending list, the course
// count grows by one and the pending counter shrinks by one.
func (a *Admin) Approve(id int64) Change[models.PendingCourse] {
	return a.resolve(id, models.CourseStatusApproved)
}

// Reject drops a pending course without publishing it.
func (a *Admin) Reject(id int64) Change[models.PendingCourse] {
	return a.resolve(id, models.CourseStatusRejected)
}

func (a *Admin) resolve(id int64, outcome models.CourseStatus) Change[models.PendingCourse] {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx := indexOf(a.state.PendingCourses, func(c models.PendingCourse) bool { return c.ID == id })
	if idx < 0 {
		return Change[models.PendingCourse]{}
	}

	before := a.state.PendingCourses[idx]
	after := before
	after.Status = outcome

	next := a.state
	next.PendingCourses = removed(a.state.PendingCourses, idx)
	if outcome == models.CourseStatusApproved {
		next.Stats.TotalCourses++
	}
	if next.Stats.PendingApprovals > 0 {
		next.Stats.PendingApprovals--
	}
	a.state = next

	return Change[models.PendingCourse]{Before: before, After: after, Found: true, Applied: true}
}

// Review looks up a pending course without changing anything.
func (a *Admin) Review(id int64) (models.PendingCourse, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx := indexOf(a.state.PendingCourses, func(c models.PendingCourse) bool { return c.ID == id })
	if idx < 0 {
		return models.PendingCourse{}, false
	}
	return a.state.PendingCourses[idx], true
}

// Promote moves a user one step up the student -> teacher -> admin ladder.
// Admins stay admins and the change is reported as not applied.
func (a *Admin) Promote(id int64) Change[models.ManagedUser] {
	return a.updateUser(id, func(u models.ManagedUser) (models.ManagedUser, bool) {
		next := u.Role.Promoted()
		if next == u.Role {
			return u, false
		}
		u.Role = next
		return u, true
	})
}

// ToggleSuspend flips active and suspended. Pending users are left alone so
// that two toggles always restore the original status.
func (a *Admin) ToggleSuspend(id int64) Change[models.ManagedUser] {
	return a.updateUser(id, func(u models.ManagedUser) (models.ManagedUser, bool) {
		switch u.Status {
		case models.UserStatusActive:
			u.Status = models.UserStatusSuspended
		case models.UserStatusSuspended:
			u.Status = models.UserStatusActive
		default:
			return u, false
		}
		return u, true
	})
}

func (a *Admin) updateUser(id int64, fn func(models.ManagedUser) (models.ManagedUser, bool)) Change[models.ManagedUser] {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx := indexOf(a.state.RecentUsers, func(u models.ManagedUser) bool { return u.ID == id })
	if idx < 0 {
		return Change[models.ManagedUser]{}
	}

	before := a.state.RecentUsers[idx]
	after, applied := fn(before)
	if applied {
		next := a.state
		next.RecentUsers = replaced(a.state.RecentUsers, idx, after)
		a.state = next
	}

	return Change[models.ManagedUser]{Before: before, After: after, Found: true, Applied: applied}
}

// AddUser prepends a freshly created user and bumps the user count.
func (a *Admin) AddUser(user models.ManagedUser) {
	a.mu.Lock()
	defer a.mu.Unlock()

	next := a.state
	next.RecentUsers = prepended(user, a.state.RecentUsers, RecentUsersLimit)
	next.Stats.TotalUsers++
	a.state = next
}

// Tick simulates registrations: one new user, up to one new active student
// and a small bump on every count metric.
func (a *Admin) Tick(src liveness.Source) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if src.Float64() <= adminTickThreshold {
		return false
	}

	next := a.state
	next.Stats.TotalUsers++
	next.Stats.ActiveStudents += src.Intn(2)

	metrics := cloned(a.state.Metrics)
	for i := range metrics {
		if metrics[i].Kind == models.MetricCount {
			metrics[i].Value += float64(src.Intn(3))
		}
	}
	next.Metrics = metrics
	a.state = next
	return true
}
