package models

import (
	"strings"

	"gorm.io/datatypes"
)

// CourseLevel is the difficulty tier of a course.
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

// CourseLevels lists the tiers in ascending difficulty.
var CourseLevels = []CourseLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseCourseLevel accepts the canonical names as well as the Spanish labels
// used by the course form (Básico, Intermedio, Avanzado).
func ParseCourseLevel(value string) (CourseLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "beginner", "básico", "basico", "principiante":
		return LevelBeginner, true
	case "intermediate", "intermedio":
		return LevelIntermediate, true
	case "advanced", "avanzado":
		return LevelAdvanced, true
	default:
		return "", false
	}
}

// CourseStatus tracks a course through review.
type CourseStatus string

const (
	CourseStatusDraft    CourseStatus = "draft"
	CourseStatusPending  CourseStatus = "pending"
	CourseStatusApproved CourseStatus = "approved"
	CourseStatusRejected CourseStatus = "rejected"
)

// ParseCourseStatus normalises a status. "published" is an alias of approved.
func ParseCourseStatus(value string) (CourseStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "draft":
		return CourseStatusDraft, true
	case "pending":
		return CourseStatusPending, true
	case "approved", "published":
		return CourseStatusApproved, true
	case "rejected":
		return CourseStatusRejected, true
	default:
		return "", false
	}
}

// Course is an entry of the public catalog.
type Course struct {
	ID               string                      `gorm:"primaryKey;size:32" json:"id"`
	Title            string                      `gorm:"size:255;not null" json:"title"`
	Description      string                      `gorm:"type:text" json:"description"`
	Instructor       string                      `gorm:"size:255" json:"instructor"`
	InstructorID     string                      `gorm:"size:32;index" json:"instructor_id"`
	Category         string                      `gorm:"size:128;index" json:"category"`
	Level            CourseLevel                 `gorm:"size:16" json:"level"`
	Duration         string                      `gorm:"size:64" json:"duration"`
	TotalLessons     int                         `json:"total_lessons"`
	CompletedLessons *int                        `json:"completed_lessons,omitempty"`
	Thumbnail        string                      `gorm:"size:512" json:"thumbnail"`
	Status           CourseStatus                `gorm:"size:16;index" json:"status"`
	Rating           float64                     `json:"rating"`
	StudentsEnrolled int                         `json:"students_enrolled"`
	CreatedOn        string                      `gorm:"size:10" json:"created_at"`
	Tags             datatypes.JSONSlice[string] `json:"tags"`
}
