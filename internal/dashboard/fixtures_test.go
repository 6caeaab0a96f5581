package dashboard

import (
	"time"

	"github.com/noah-isme/edgylearn-api/internal/models"
)

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func adminFixture() AdminSnapshot {
	return AdminSnapshot{
		Stats: models.AdminStats{TotalUsers: 1247, TotalCourses: 89, PendingApprovals: 12, ActiveStudents: 856},
		PendingCourses: []models.PendingCourse{
			{ID: 1, Title: "Machine Learning Avanzado", Instructor: "Dr. Carlos Ruiz", Modules: 12, Status: models.CourseStatusPending},
			{ID: 2, Title: "Diseño UX/UI", Instructor: "Laura Martínez", Modules: 8, Status: models.CourseStatusPending},
			{ID: 3, Title: "Blockchain", Instructor: "Miguel Torres", Modules: 10, Status: models.CourseStatusPending},
		},
		RecentUsers: []models.ManagedUser{
			{ID: 1, Name: "Ana García", Role: models.RoleStudent, Status: models.UserStatusActive},
			{ID: 2, Name: "Pedro López", Role: models.RoleTeacher, Status: models.UserStatusPending},
			{ID: 3, Name: "María Rodríguez", Role: models.RoleStudent, Status: models.UserStatusActive},
			{ID: 4, Name: "Juan Pérez", Role: models.RoleStudent, Status: models.UserStatusSuspended},
		},
		Metrics: []models.SystemMetric{
			{Label: "Sesiones activas", Value: 156, Kind: models.MetricCount},
			{Label: "Cursos nuevos", Value: 23, Kind: models.MetricCount},
			{Label: "Satisfacción", Value: 4.6, Kind: models.MetricScore},
			{Label: "Finalización", Value: 87, Kind: models.MetricPercent},
		},
	}
}

func teacherFixture() TeacherSnapshot {
	return TeacherSnapshot{
		Stats: models.TeacherStats{TotalCourses: 5, TotalStudents: 156, AvgRating: 4.7, MonthlyHours: 32},
		Courses: []models.TeacherCourse{
			{ID: 1, Title: "React Avanzado", Status: models.CourseStatusApproved, Modules: 10},
			{ID: 2, Title: "Node.js", Status: models.CourseStatusApproved, Modules: 8},
			{ID: 3, Title: "TypeScript", Status: models.CourseStatusPending, Modules: 6},
			{ID: 4, Title: "GraphQL", Status: models.CourseStatusDraft, Modules: 5},
		},
		Activity: []models.ActivityItem{
			{ID: 1, Type: models.ActivityEnrollment, Message: "a"},
			{ID: 2, Type: models.ActivityCompletion, Message: "b"},
			{ID: 3, Type: models.ActivityReview, Message: "c"},
			{ID: 4, Type: models.ActivityQuestion, Message: "d"},
		},
	}
}

func studentFixture() StudentSnapshot {
	return StudentSnapshot{
		Progress: models.StudentProgress{CompletedCourses: 3, TotalCourses: 8, OverallProgress: 65, WeeklyHours: 12, Streak: 5},
		Enrolled: []models.EnrolledCourse{
			{ID: 1, Title: "React Avanzado", Progress: 75},
			{ID: 2, Title: "Node.js", Progress: 45, IsBookmarked: true},
			{ID: 3, Title: "Python", Progress: 98},
		},
		Suggested: []models.SuggestedCourse{
			{ID: 4, Title: "Vue.js", Instructor: "Carlos Ruiz", Duration: "6 semanas"},
			{ID: 5, Title: "Docker", Instructor: "Laura Martínez", Duration: "4 semanas", IsLiked: true},
		},
	}
}
