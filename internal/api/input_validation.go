package api

import (
	"errors"
	"strings"
	"time"

	"github.com/praxishq/praxis/internal/models"
	"github.com/praxishq/praxis/internal/services"
)

var (
	errMissingPlanID = errors.New("planId is required")
	errNoUpdates     = errors.New("at least one update is required")
	errInvalidDay    = errors.New("update day out of range")
)

func validateProgressRequest(request progressUpdateRequest) ([]services.ProgressUpdate, error) {
	if strings.TrimSpace(request.PlanID) == "" {
		return nil, errMissingPlanID
	}
	if len(request.Updates) == 0 {
		return nil, errNoUpdates
	}

	updates := make([]services.ProgressUpdate, 0, len(request.Updates))
	for _, entry := range request.Updates {
		if entry.Day < 1 || entry.Day > models.ProgramLength {
			return nil, errInvalidDay
		}
		update := services.ProgressUpdate{
			Day:       entry.Day,
			Completed: entry.Completed,
			Feedback:  strings.TrimSpace(entry.Feedback),
		}
		if entry.Timestamp != "" {
			if parsed, err := time.Parse(time.RFC3339, entry.Timestamp); err == nil {
				update.Timestamp = parsed
			}
		}
		updates = append(updates, update)
	}
	return updates, nil
}
