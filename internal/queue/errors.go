package queue

import (
	"errors"

	"subburn/internal/services"
)

// FailureStatus maps a pipeline error to the queue status the workflow
// manager should persist after the run fails. Invalid language selections
// stay failed rather than pending so they are never retried automatically.
func FailureStatus(err error) Status {
	if err == nil {
		return StatusCompleted
	}
	if errors.Is(err, services.ErrTransient) || errors.Is(err, services.ErrTimeout) {
		return StatusPending
	}
	return StatusFailed
}
