package models

import "time"

// ProgramLength is the fixed number of daily practices in every plan.
const ProgramLength = 21

const (
	// PlanVersionLive tags plans assembled from live completion output.
	PlanVersionLive = "live-v2"
	// PlanVersionTemplate tags plans built entirely from the deterministic template.
	PlanVersionTemplate = "template-v1"
)

const (
	QuoteTypeWisdom    = "wisdom"
	QuoteTypeScripture = "scripture"
)

type Quote struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

type DailyPractice struct {
	Day              int      `json:"day"`
	Title            string   `json:"title"`
	Steps            []string `json:"steps"`
	Reflection       string   `json:"reflection"`
	Quote            Quote    `json:"quote"`
	Commentary       string   `json:"commentary"`
	EstimatedMinutes int      `json:"estimated_minutes"`

	// Present only for the scripture door.
	OpeningReflection string `json:"opening_reflection,omitempty"`
	ClosingReflection string `json:"closing_reflection,omitempty"`
	CommunityPrompt   string `json:"community_prompt,omitempty"`
}

type PersonalizedPlan struct {
	ID              string          `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	AssessmentID    uint            `gorm:"not null" json:"assessment_id"`
	Assessment      Assessment      `gorm:"serializer:json" json:"assessment"`
	Anchor          string          `gorm:"not null" json:"anchor"`
	Virtue          Virtue          `gorm:"not null" json:"virtue"`
	Door            Door            `gorm:"not null" json:"door"`
	Daily           []DailyPractice `gorm:"serializer:json" json:"daily"`
	WeeklyCheckin   string          `json:"weekly_checkin"`
	StretchPractice string          `json:"stretch_practice,omitempty"`
	Version         string          `gorm:"not null" json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
}
