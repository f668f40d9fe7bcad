package services

import (
	"sort"
	"time"

	"github.com/praxishq/praxis/internal/models"
)

// ProgressUpdate is one day-completion event. Feedback, when present, is
// appended to the record's feedback log as a comment.
type ProgressUpdate struct {
	Day       int
	Completed bool
	Feedback  string
	Timestamp time.Time
}

type ProgressTracker struct {
	now func() time.Time
}

func NewProgressTracker(now func() time.Time) *ProgressTracker {
	if now == nil {
		now = time.Now
	}
	return &ProgressTracker{now: now}
}

// ApplyUpdates mutates the record in place: completed days and skipped days
// stay sorted, deduplicated, and disjoint, comments are appended in arrival
// order, then the streak and last-activity stamp are recomputed.
func (tracker *ProgressTracker) ApplyUpdates(record *models.ProgressRecord, updates []ProgressUpdate) {
	for _, update := range updates {
		if update.Completed {
			record.CompletedDays = insertDay(record.CompletedDays, update.Day)
			record.SkippedDays = removeDay(record.SkippedDays, update.Day)
		} else {
			record.CompletedDays = removeDay(record.CompletedDays, update.Day)
			record.SkippedDays = insertDay(record.SkippedDays, update.Day)
		}

		if update.Feedback != "" {
			day := update.Day
			stamp := update.Timestamp
			if stamp.IsZero() {
				stamp = tracker.now()
			}
			record.Feedback = append(record.Feedback, models.FeedbackEntry{
				Day:       &day,
				Kind:      models.FeedbackKindComment,
				Value:     update.Feedback,
				CreatedAt: stamp,
			})
		}
	}

	record.CurrentStreak = ComputeStreak(record.CompletedDays)
	record.LastActivity = tracker.now()
}

// ComputeStreak counts consecutive day numbers downward from the highest
// completed day, stopping at the first gap. Day numbers, not calendar dates:
// a participant who back-fills days 5..7 in one sitting holds a streak of 3.
func ComputeStreak(completedDays []int) int {
	if len(completedDays) == 0 {
		return 0
	}

	sorted := make([]int, len(completedDays))
	copy(sorted, completedDays)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	streak := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1]-sorted[i] != 1 {
			break
		}
		streak++
	}
	return streak
}

func insertDay(days []int, day int) []int {
	index := sort.SearchInts(days, day)
	if index < len(days) && days[index] == day {
		return days
	}
	days = append(days, 0)
	copy(days[index+1:], days[index:])
	days[index] = day
	return days
}

func removeDay(days []int, day int) []int {
	index := sort.SearchInts(days, day)
	if index >= len(days) || days[index] != day {
		return days
	}
	return append(days[:index], days[index+1:]...)
}
