package models

import "time"

// AdminStats are the headline counters of the admin dashboard.
type AdminStats struct {
	TotalUsers       int `json:"total_users"`
	TotalCourses     int `json:"total_courses"`
	PendingApprovals int `json:"pending_approvals"`
	ActiveStudents   int `json:"active_students"`
}

// PendingCourse is a course awaiting admin review.
type PendingCourse struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Instructor    string       `json:"instructor"`
	SubmittedDate string       `json:"submitted_date"`
	Modules       int          `json:"modules"`
	Duration      string       `json:"duration"`
	Status        CourseStatus `json:"status"`
}

// MetricKind decides how a system metric is rendered and whether the liveness
// timer may bump it.
type MetricKind string

const (
	MetricCount   MetricKind = "count"
	MetricScore   MetricKind = "score"
	MetricPercent MetricKind = "percent"
)

// SystemMetric is a labelled value with a trend annotation.
type SystemMetric struct {
	Label string     `json:"label"`
	Value float64    `json:"value"`
	Kind  MetricKind `json:"kind"`
	Trend string     `json:"trend"`
}

// TeacherStats are the headline counters of the teacher dashboard.
type TeacherStats struct {
	TotalCourses  int     `json:"total_courses"`
	TotalStudents int     `json:"total_students"`
	AvgRating     float64 `json:"avg_rating"`
	MonthlyHours  float64 `json:"monthly_hours"`
}

// TeacherCourse is a course owned by the signed-in teacher.
type TeacherCourse struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Difficulty  CourseLevel  `json:"difficulty"`
	Duration    string       `json:"duration"`
	Modules     int          `json:"modules"`
	Students    int          `json:"students"`
	Rating      float64      `json:"rating"`
	Status      CourseStatus `json:"status"`
	Progress    int          `json:"progress"`
	LastUpdate  time.Time    `json:"last_update"`
}

// StudentProgress are the headline counters of the student dashboard.
type StudentProgress struct {
	CompletedCourses int     `json:"completed_courses"`
	TotalCourses     int     `json:"total_courses"`
	OverallProgress  int     `json:"overall_progress"`
	WeeklyHours      float64 `json:"weekly_hours"`
	Streak           int     `json:"streak"`
}

// EnrolledCourse is a course the student is taking.
type EnrolledCourse struct {
	ID             int64       `json:"id"`
	Title          string      `json:"title"`
	Instructor     string      `json:"instructor"`
	Progress       int         `json:"progress"`
	NextLesson     string      `json:"next_lesson"`
	TimeToComplete string      `json:"time_to_complete"`
	Difficulty     CourseLevel `json:"difficulty"`
	IsBookmarked   bool        `json:"is_bookmarked"`
}

// SuggestedCourse is a recommendation shown to the student.
type SuggestedCourse struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Instructor string  `json:"instructor"`
	Rating     float64 `json:"rating"`
	Students   int     `json:"students"`
	Duration   string  `json:"duration"`
	IsLiked    bool    `json:"is_liked"`
	Enrolled   bool    `json:"enrolled"`
}

// Feature is a landing page selling point.
type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial is a landing page quote.
type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}
