package models

import "gorm.io/datatypes"

// Performance is the coarse grade attached to a progress record.
type Performance string

const (
	PerformanceExcellent        Performance = "excellent"
	PerformanceGood             Performance = "good"
	PerformanceNeedsImprovement Performance = "needs_improvement"
)

// Progress is a learner's position within a course. It is never reconciled
// against the course lesson count.
type Progress struct {
	UserID               string      `gorm:"primaryKey;size:32" json:"user_id"`
	CourseID             string      `gorm:"primaryKey;size:32" json:"course_id"`
	CompletionPercentage int         `json:"completion_percentage"`
	CurrentLesson        int         `json:"current_lesson"`
	TotalLessons         int         `json:"total_lessons"`
	TimeSpent            int         `json:"time_spent"`
	LastActivity         string      `gorm:"size:10" json:"last_activity"`
	Performance          Performance `gorm:"size:32" json:"performance"`
}

// LearningPath groups catalog courses into a suggested sequence.
type LearningPath struct {
	ID                string                      `gorm:"primaryKey;size:32" json:"id"`
	Title             string                      `gorm:"size:255;not null" json:"title"`
	Description       string                      `gorm:"type:text" json:"description"`
	CourseIDs         datatypes.JSONSlice[string] `json:"courses"`
	Difficulty        CourseLevel                 `gorm:"size:16" json:"difficulty"`
	EstimatedDuration string                      `gorm:"size:64" json:"estimated_duration"`
	CompletionRate    int                         `json:"completion_rate"`
	IsRecommended     bool                        `json:"is_recommended"`
	AdaptedForUser    bool                        `json:"adapted_for_user"`
}

// TableName pins the progress table name.
func (Progress) TableName() string {
	return "progress_records"
}
