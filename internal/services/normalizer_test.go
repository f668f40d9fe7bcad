package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/praxishq/praxis/internal/models"
)

func courageAssessment(door models.Door) models.Assessment {
	return models.Assessment{
		Name:          "Alex",
		Email:         "alex@example.com",
		Struggles:     []string{"fear-failure", "perfectionism", "avoiding-conflict"},
		Door:          door,
		TimeBudget:    models.TimeBudgetMid,
		Daypart:       models.DaypartMorning,
		PrimaryVirtue: models.VirtueCourage,
	}
}

func structuredPlanJSON(dayCount int) string {
	days := make([]string, 0, dayCount)
	for day := 1; day <= dayCount; day++ {
		days = append(days, fmt.Sprintf(`{
			"day": %d,
			"title": "Practice %d",
			"steps": ["step one", "step two"],
			"reflection": "what did you notice?",
			"quote": {"text": "quote %d", "source": "Seneca", "type": "wisdom"},
			"commentary": "commentary %d",
			"estimatedTime": 10
		}`, day, day, day, day))
	}
	return fmt.Sprintf(`{
		"anchor": "One brave act each day.",
		"weeklyCheckin": "How did courage cost you this week?",
		"daily": [%s]
	}`, strings.Join(days, ","))
}

func TestNormalizeStructuredFullDocument(t *testing.T) {
	plan, err := NormalizeStructured(structuredPlanJSON(21), courageAssessment(models.DoorSecular))
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	if plan.Anchor != "One brave act each day." {
		t.Fatalf("unexpected anchor: %q", plan.Anchor)
	}
	if plan.Version != models.PlanVersionLive {
		t.Fatalf("expected live version tag, got %s", plan.Version)
	}
	if len(plan.Daily) != models.ProgramLength {
		t.Fatalf("expected %d days, got %d", models.ProgramLength, len(plan.Daily))
	}
	for i, practice := range plan.Daily {
		if practice.Day != i+1 {
			t.Fatalf("day %d numbered %d", i+1, practice.Day)
		}
	}
}

func TestNormalizeStructuredStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + structuredPlanJSON(21) + "\n```"
	plan, err := NormalizeStructured(fenced, courageAssessment(models.DoorSecular))
	if err != nil {
		t.Fatalf("normalize failed on fenced document: %v", err)
	}
	if len(plan.Daily) != models.ProgramLength {
		t.Fatalf("expected %d days, got %d", models.ProgramLength, len(plan.Daily))
	}
}

func TestNormalizeStructuredRejectsUnusableEnvelope(t *testing.T) {
	assessment := courageAssessment(models.DoorSecular)

	cases := []struct {
		name string
		raw  string
	}{
		{"prose not json", "Here is your plan! Day 1: wake up early..."},
		{"missing anchor", `{"daily": [{"day": 1}]}`},
		{"missing daily", `{"anchor": "One brave act each day."}`},
		{"empty daily", `{"anchor": "One brave act each day.", "daily": []}`},
	}
	for _, testCase := range cases {
		if _, err := NormalizeStructured(testCase.raw, assessment); !errors.Is(err, ErrMalformedPlanContent) {
			t.Fatalf("%s: expected ErrMalformedPlanContent, got %v", testCase.name, err)
		}
	}
}

func TestNormalizeStructuredRepairsSparseDays(t *testing.T) {
	// Envelope is valid but the model only produced three skeletal days.
	raw := `{"anchor": "Anchor.", "daily": [{"day": 9}, {"title": "kept title"}, {"steps": ["", "  "]}]}`
	assessment := courageAssessment(models.DoorSecular)

	plan, err := NormalizeStructured(raw, assessment)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if len(plan.Daily) != models.ProgramLength {
		t.Fatalf("expected %d days, got %d", models.ProgramLength, len(plan.Daily))
	}

	first := plan.Daily[0]
	if first.Day != 1 {
		t.Fatalf("claimed day number must be overridden by position, got %d", first.Day)
	}
	if first.Title == "" || first.Reflection == "" || first.Commentary == "" {
		t.Fatalf("missing fields not defaulted: %+v", first)
	}
	if first.Quote.Text == "" || first.Quote.Source == "" {
		t.Fatalf("quote not defaulted: %+v", first.Quote)
	}
	if first.EstimatedMinutes != 12 {
		t.Fatalf("expected mid budget default of 12 minutes, got %d", first.EstimatedMinutes)
	}

	if plan.Daily[1].Title != "kept title" {
		t.Fatalf("provided title must be preserved, got %q", plan.Daily[1].Title)
	}
	if len(plan.Daily[2].Steps) == 0 {
		t.Fatalf("blank steps must fall back to the template")
	}
	for _, practice := range plan.Daily[3:] {
		if len(practice.Steps) == 0 || practice.Quote.Text == "" {
			t.Fatalf("synthesized tail day incomplete: %+v", practice)
		}
	}
}

func TestNormalizeStructuredTimeBudgetLookup(t *testing.T) {
	raw := `{"anchor": "Anchor.", "daily": [{"day": 1}]}`
	cases := []struct {
		budget   models.TimeBudget
		expected int
	}{
		{models.TimeBudgetLow, 7},
		{models.TimeBudgetMid, 12},
		{models.TimeBudgetHigh, 17},
	}
	for _, testCase := range cases {
		assessment := courageAssessment(models.DoorSecular)
		assessment.TimeBudget = testCase.budget
		plan, err := NormalizeStructured(raw, assessment)
		if err != nil {
			t.Fatalf("normalize failed: %v", err)
		}
		if plan.Daily[0].EstimatedMinutes != testCase.expected {
			t.Fatalf("budget %s: expected %d minutes, got %d", testCase.budget, testCase.expected, plan.Daily[0].EstimatedMinutes)
		}
	}
}

func TestNormalizeStructuredScriptureDoorFields(t *testing.T) {
	raw := `{"anchor": "Anchor.", "daily": [{"day": 1}]}`
	plan, err := NormalizeStructured(raw, courageAssessment(models.DoorScripture))
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	first := plan.Daily[0]
	if first.OpeningReflection == "" || first.ClosingReflection == "" || first.CommunityPrompt == "" {
		t.Fatalf("scripture door fields not populated: %+v", first)
	}
	if first.Quote.Type != models.QuoteTypeScripture {
		t.Fatalf("expected scripture quote type, got %s", first.Quote.Type)
	}
}

func TestNormalizeStructuredSecularDoorOmitsDevotionalFields(t *testing.T) {
	raw := `{"anchor": "Anchor.", "daily": [{"day": 1}]}`
	plan, err := NormalizeStructured(raw, courageAssessment(models.DoorSecular))
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	first := plan.Daily[0]
	if first.OpeningReflection != "" || first.ClosingReflection != "" || first.CommunityPrompt != "" {
		t.Fatalf("secular door must not carry devotional fields: %+v", first)
	}
}

func TestBuildTemplatedPlanIsCompleteAndDeterministic(t *testing.T) {
	assessment := courageAssessment(models.DoorSecular)
	first := BuildTemplatedPlan(assessment)
	second := BuildTemplatedPlan(assessment)

	if first.Version != models.PlanVersionTemplate {
		t.Fatalf("expected template version tag, got %s", first.Version)
	}
	if len(first.Daily) != models.ProgramLength {
		t.Fatalf("expected %d days, got %d", models.ProgramLength, len(first.Daily))
	}

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	if string(firstJSON) != string(secondJSON) {
		t.Fatalf("templated plan is not deterministic")
	}

	for i, practice := range first.Daily {
		day := i + 1
		if practice.Day != day {
			t.Fatalf("day %d numbered %d", day, practice.Day)
		}
		if len(practice.Steps) < 3 {
			t.Fatalf("day %d has %d steps, want at least 3", day, len(practice.Steps))
		}
		if practice.EstimatedMinutes <= 0 {
			t.Fatalf("day %d has non-positive estimate", day)
		}
	}
}

func TestBuildTemplatedPlanWeekThemes(t *testing.T) {
	plan := BuildTemplatedPlan(courageAssessment(models.DoorSecular))
	cases := []struct {
		day   int
		theme string
	}{
		{1, WeekThemeFoundation},
		{7, WeekThemeFoundation},
		{8, WeekThemeDeepening},
		{14, WeekThemeDeepening},
		{15, WeekThemeIntegration},
		{21, WeekThemeIntegration},
	}
	for _, testCase := range cases {
		title := plan.Daily[testCase.day-1].Title
		if !strings.Contains(title, testCase.theme) {
			t.Fatalf("day %d title %q missing theme %s", testCase.day, title, testCase.theme)
		}
	}
}

func TestBuildTemplatedPlanAlternatesQuotesByParity(t *testing.T) {
	plan := BuildTemplatedPlan(courageAssessment(models.DoorSecular))
	if plan.Daily[0].Quote.Text == plan.Daily[1].Quote.Text {
		t.Fatalf("consecutive days must not share a fallback quote")
	}
	if plan.Daily[0].Quote.Text != plan.Daily[2].Quote.Text {
		t.Fatalf("same-parity days must share the fallback quote")
	}
}
