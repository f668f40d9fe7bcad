package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/praxishq/praxis/internal/models"
)

var ErrMalformedPlanContent = errors.New("malformed plan content")

// rawPlanEnvelope mirrors the JSON document the structure stage is asked to
// produce. Every field below the envelope is optional; only anchor and daily
// are load-bearing.
type rawPlanEnvelope struct {
	Anchor          string       `json:"anchor"`
	WeeklyCheckin   string       `json:"weeklyCheckin"`
	StretchPractice string       `json:"stretchPractice"`
	Daily           []rawPlanDay `json:"daily"`
}

type rawPlanDay struct {
	Day               int       `json:"day"`
	Title             string    `json:"title"`
	Steps             []string  `json:"steps"`
	Reflection        string    `json:"reflection"`
	Quote             *rawQuote `json:"quote"`
	Commentary        string    `json:"commentary"`
	EstimatedTime     int       `json:"estimatedTime"`
	OpeningReflection string    `json:"openingReflection"`
	ClosingReflection string    `json:"closingReflection"`
	CommunityPrompt   string    `json:"communityPrompt"`
}

type rawQuote struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

// NormalizeStructured parses the structure-stage output and repairs it into a
// complete plan. Plan structure never depends on the completeness of generated
// text: whatever the model returned, the result has exactly
// models.ProgramLength days numbered 1..N with every field populated.
// Only an unusable envelope (no anchor, or no daily array) is an error.
func NormalizeStructured(raw string, assessment models.Assessment) (models.PersonalizedPlan, error) {
	virtue := assessment.PrimaryVirtue
	door := assessment.Door

	stripped := stripCodeFences(raw)
	var envelope rawPlanEnvelope
	if err := json.Unmarshal([]byte(stripped), &envelope); err != nil {
		return models.PersonalizedPlan{}, fmt.Errorf("%w: %v", ErrMalformedPlanContent, err)
	}
	if strings.TrimSpace(envelope.Anchor) == "" {
		return models.PersonalizedPlan{}, fmt.Errorf("%w: missing anchor", ErrMalformedPlanContent)
	}
	if len(envelope.Daily) == 0 {
		return models.PersonalizedPlan{}, fmt.Errorf("%w: missing daily entries", ErrMalformedPlanContent)
	}

	daily := make([]models.DailyPractice, 0, models.ProgramLength)
	for i := 0; i < models.ProgramLength; i++ {
		day := i + 1
		if i < len(envelope.Daily) {
			daily = append(daily, normalizeDay(envelope.Daily[i], day, assessment))
			continue
		}
		// Upstream returned fewer days than the program needs; fill the tail
		// from the deterministic template.
		daily = append(daily, templatedDay(day, assessment))
	}

	plan := models.PersonalizedPlan{
		Anchor:          strings.TrimSpace(envelope.Anchor),
		Virtue:          virtue,
		Door:            door,
		Daily:           daily,
		WeeklyCheckin:   defaultString(envelope.WeeklyCheckin, fallbackWeeklyCheckin(virtue)),
		StretchPractice: strings.TrimSpace(envelope.StretchPractice),
		Version:         models.PlanVersionLive,
	}
	return plan, nil
}

// normalizeDay defaults every missing field of one generated day entry. The
// day number is forced to its position in the program regardless of what the
// model claimed.
func normalizeDay(raw rawPlanDay, day int, assessment models.Assessment) models.DailyPractice {
	virtue := assessment.PrimaryVirtue
	door := assessment.Door

	practice := models.DailyPractice{
		Day:              day,
		Title:            defaultString(raw.Title, fallbackTitle(virtue, day)),
		Steps:            cleanSteps(raw.Steps, virtue, day),
		Reflection:       defaultString(raw.Reflection, fallbackReflection(virtue, day)),
		Commentary:       defaultString(raw.Commentary, fallbackCommentary(virtue, door, day)),
		EstimatedMinutes: raw.EstimatedTime,
	}
	if practice.EstimatedMinutes <= 0 {
		practice.EstimatedMinutes = assessment.TimeBudget.Minutes()
	}

	if raw.Quote != nil && strings.TrimSpace(raw.Quote.Text) != "" {
		practice.Quote = models.Quote{
			Text:   strings.TrimSpace(raw.Quote.Text),
			Source: defaultString(raw.Quote.Source, "Unknown"),
			Type:   defaultString(raw.Quote.Type, quoteTypeForDoor(door)),
		}
	} else {
		practice.Quote = fallbackQuote(virtue, door, day)
	}

	if door == models.DoorScripture {
		practice.OpeningReflection = defaultString(raw.OpeningReflection, fallbackOpeningReflection(virtue, day))
		practice.ClosingReflection = defaultString(raw.ClosingReflection, fallbackClosingReflection(day))
		practice.CommunityPrompt = defaultString(raw.CommunityPrompt, fallbackCommunityPrompt(virtue))
	}
	return practice
}

// BuildTemplatedPlan synthesizes a complete plan with no generated text at
// all: the fallback path when the live pipeline is unavailable or its output
// was unstructured prose.
func BuildTemplatedPlan(assessment models.Assessment) models.PersonalizedPlan {
	virtue := assessment.PrimaryVirtue
	door := assessment.Door

	daily := make([]models.DailyPractice, 0, models.ProgramLength)
	for day := 1; day <= models.ProgramLength; day++ {
		daily = append(daily, templatedDay(day, assessment))
	}

	return models.PersonalizedPlan{
		Anchor:          fallbackAnchor(virtue, door),
		Virtue:          virtue,
		Door:            door,
		Daily:           daily,
		WeeklyCheckin:   fallbackWeeklyCheckin(virtue),
		StretchPractice: fallbackStretchPractice(virtue),
		Version:         models.PlanVersionTemplate,
	}
}

func templatedDay(day int, assessment models.Assessment) models.DailyPractice {
	virtue := assessment.PrimaryVirtue
	door := assessment.Door

	practice := models.DailyPractice{
		Day:              day,
		Title:            fmt.Sprintf("Day %d: %s in %s", day, virtue.Label(), weekTheme(day)),
		Steps:            fallbackSteps(virtue, day),
		Reflection:       fallbackReflection(virtue, day),
		Quote:            fallbackQuote(virtue, door, day),
		Commentary:       fallbackCommentary(virtue, door, day),
		EstimatedMinutes: assessment.TimeBudget.Minutes(),
	}
	if door == models.DoorScripture {
		practice.OpeningReflection = fallbackOpeningReflection(virtue, day)
		practice.ClosingReflection = fallbackClosingReflection(day)
		practice.CommunityPrompt = fallbackCommunityPrompt(virtue)
	}
	return practice
}

func cleanSteps(steps []string, virtue models.Virtue, day int) []string {
	cleaned := make([]string, 0, len(steps))
	for _, step := range steps {
		if trimmed := strings.TrimSpace(step); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return fallbackSteps(virtue, day)
	}
	return cleaned
}

func quoteTypeForDoor(door models.Door) string {
	if door == models.DoorScripture {
		return models.QuoteTypeScripture
	}
	return models.QuoteTypeWisdom
}

func defaultString(value string, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

// stripCodeFences removes a surrounding markdown code fence, with or without
// a language tag, leaving anything else untouched.
func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if newline := strings.IndexByte(trimmed, '\n'); newline >= 0 {
		firstLine := strings.TrimSpace(trimmed[:newline])
		// A language tag like "json" sits alone on the fence line.
		if firstLine == "" || !strings.ContainsAny(firstLine, "{[") {
			trimmed = trimmed[newline+1:]
		}
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
