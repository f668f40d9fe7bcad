package models

import "time"

type Virtue string

// Declaration order is the scoring tie-break order and must not change.
const (
	VirtueWisdom     Virtue = "wisdom"
	VirtueCourage    Virtue = "courage"
	VirtueJustice    Virtue = "justice"
	VirtueTemperance Virtue = "temperance"
)

// VirtueOrder lists the virtues in canonical tie-break order.
var VirtueOrder = []Virtue{VirtueWisdom, VirtueCourage, VirtueJustice, VirtueTemperance}

func (virtue Virtue) Valid() bool {
	switch virtue {
	case VirtueWisdom, VirtueCourage, VirtueJustice, VirtueTemperance:
		return true
	}
	return false
}

func (virtue Virtue) Label() string {
	switch virtue {
	case VirtueWisdom:
		return "Wisdom"
	case VirtueCourage:
		return "Courage"
	case VirtueJustice:
		return "Justice"
	case VirtueTemperance:
		return "Temperance"
	}
	return string(virtue)
}

type Door string

const (
	DoorSecular   Door = "secular"
	DoorScripture Door = "scripture"
)

func (door Door) Valid() bool {
	return door == DoorSecular || door == DoorScripture
}

type TimeBudget string

const (
	TimeBudgetLow  TimeBudget = "low"
	TimeBudgetMid  TimeBudget = "mid"
	TimeBudgetHigh TimeBudget = "high"
)

func (budget TimeBudget) Valid() bool {
	switch budget {
	case TimeBudgetLow, TimeBudgetMid, TimeBudgetHigh:
		return true
	}
	return false
}

// Minutes maps the declared daily time budget to an estimated practice length.
func (budget TimeBudget) Minutes() int {
	switch budget {
	case TimeBudgetLow:
		return 7
	case TimeBudgetHigh:
		return 17
	default:
		return 12
	}
}

type Daypart string

const (
	DaypartMorning Daypart = "morning"
	DaypartMidday  Daypart = "midday"
	DaypartEvening Daypart = "evening"
)

func (daypart Daypart) Valid() bool {
	switch daypart {
	case DaypartMorning, DaypartMidday, DaypartEvening:
		return true
	}
	return false
}

type Approach string

const (
	ApproachPrepare Approach = "prepare"
	ApproachAct     Approach = "act"
	ApproachServe   Approach = "serve"
	ApproachReflect Approach = "reflect"
)

// ApproachOrder is the fixed order used when a full if-then set is generated.
var ApproachOrder = []Approach{ApproachPrepare, ApproachAct, ApproachServe, ApproachReflect}

// IfThenPlan binds a concrete cue to an action for one of the four approaches.
type IfThenPlan struct {
	Virtue   Virtue   `json:"virtue"`
	Approach Approach `json:"approach"`
	Cue      string   `json:"cue"`
	Action   string   `json:"action"`
}

// IfThenPlanCount is the number of plans in a complete if-then set.
const IfThenPlanCount = 4

type Assessment struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	UserID          uint         `gorm:"not null;index" json:"user_id"`
	Name            string       `gorm:"not null" json:"name"`
	Email           string       `gorm:"not null" json:"email"`
	Struggles       []string     `gorm:"serializer:json;not null" json:"struggles"`
	Door            Door         `gorm:"not null" json:"door"`
	QuotePreference string       `json:"quote_preference,omitempty"`
	TimeBudget      TimeBudget   `gorm:"not null" json:"time_budget"`
	Daypart         Daypart      `gorm:"not null" json:"daypart"`
	PrimaryVirtue   Virtue       `gorm:"not null" json:"primary_virtue"`
	Context         string       `json:"context,omitempty"`
	IfThenPlans     []IfThenPlan `gorm:"serializer:json;not null" json:"if_then_plans,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}
