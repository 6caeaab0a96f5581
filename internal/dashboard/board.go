package dashboard

import (
	"fmt"
	"time"

	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/seed"
)

// NewBoard builds the container for role from the seed dashboards.
func NewBoard(role models.Role, boards seed.Dashboards, ids *IDGenerator, now func() time.Time) (Board, error) {
	switch role {
	case models.RoleAdmin:
		return NewAdmin(AdminSnapshot{
			Stats:          boards.Admin.Stats,
			PendingCourses: boards.Admin.PendingCourses,
			RecentUsers:    boards.Admin.RecentUsers,
			Metrics:        boards.Admin.Metrics,
		}), nil
	case models.RoleTeacher:
		return NewTeacher(TeacherSnapshot{
			Stats:    boards.Teacher.Stats,
			Courses:  boards.Teacher.Courses,
			Activity: boards.Teacher.Activity,
		}, boards.Teacher.LiveMessages, ids, now), nil
	case models.RoleStudent:
		return NewStudent(StudentSnapshot{
			Progress:  boards.Student.Progress,
			Enrolled:  boards.Student.Enrolled,
			Suggested: boards.Student.Suggested,
		}), nil
	default:
		return nil, fmt.Errorf("no dashboard for role %q", role)
	}
}
