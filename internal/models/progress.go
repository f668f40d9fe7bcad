package models

import "time"

const FeedbackKindComment = "comment"

type FeedbackEntry struct {
	Day       *int      `json:"day,omitempty"`
	Kind      string    `json:"kind"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// ProgressRecord tracks completion state for one plan. CompletedDays and
// SkippedDays are kept sorted ascending and disjoint.
type ProgressRecord struct {
	PlanID        string          `gorm:"primaryKey" json:"plan_id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	CompletedDays []int           `gorm:"serializer:json" json:"completed_days"`
	SkippedDays   []int           `gorm:"serializer:json" json:"skipped_days"`
	CurrentStreak int             `gorm:"not null;default:0" json:"current_streak"`
	LastActivity  time.Time       `json:"last_activity"`
	Feedback      []FeedbackEntry `gorm:"serializer:json" json:"feedback"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
