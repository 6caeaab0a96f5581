package dto

import "github.com/noah-isme/edgylearn-api/internal/models"

// ActionResponse carries the dashboard after an action. Applied is false when
// the target id was stale or the action left the record unchanged. Record is
// the affected row as it looks after the action, absent for stale ids.
type ActionResponse[T any] struct {
	Applied   bool        `json:"applied"`
	Record    interface{} `json:"record,omitempty"`
	Dashboard T           `json:"dashboard"`
}

// ProgressResponse lists the caller's progress rows with their courses.
type ProgressResponse struct {
	Progress []models.Progress `json:"progress"`
	Courses  []models.Course   `json:"courses"`
}

// LandingResponse is the marketing page content.
type LandingResponse struct {
	Features     []models.Feature     `json:"features"`
	Testimonials []models.Testimonial `json:"testimonials"`
	DemoAccounts []string             `json:"demo_accounts"`
}

// DashboardEvent is pushed to stream subscribers and NATS when a session
// dashboard changes.
type DashboardEvent struct {
	SessionID string      `json:"session_id"`
	Role      models.Role `json:"role"`
	Source    string      `json:"source"`
	Version   uint64      `json:"version"`
	Dashboard interface{} `json:"dashboard"`
}
