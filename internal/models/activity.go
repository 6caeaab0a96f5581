package models

import "time"

// ActivityType categorises entries of the teacher activity feed.
type ActivityType string

const (
	ActivityEnrollment ActivityType = "enrollment"
	ActivityCompletion ActivityType = "completion"
	ActivityReview     ActivityType = "review"
	ActivityQuestion   ActivityType = "question"
)

// ActivityItem is a single feed entry, displayed newest first.
type ActivityItem struct {
	ID      int64        `json:"id"`
	Type    ActivityType `json:"type"`
	Message string       `json:"message"`
	Time    time.Time    `json:"time"`
	IsNew   bool         `json:"is_new"`
}
