// services/queue.go
package services

import (
	"errors"
	"fmt"

	"pitstop-backend/models"
)

var ErrIllegalTransition = errors.New("illegal status transition")

// queueTransitions is the complete lifecycle table. paid and cancelled have
// no outgoing transitions; cancellation is allowed while the vehicle has not
// been delivered (waiting or in_progress).
var queueTransitions = map[string][]string{
	models.StatusWaiting:    {models.StatusInProgress, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted:  {models.StatusPaid},
	models.StatusPaid:       {},
	models.StatusCancelled:  {},
}

// CanTransition reports whether from -> to is in the lifecycle table
func CanTransition(from, to string) bool {
	for _, next := range queueTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a descriptive error naming the illegal
// transition; a status update is never silently accepted.
func ValidateTransition(from, to string) error {
	if _, known := queueTransitions[from]; !known {
		return fmt.Errorf("%w: unknown status %q", ErrIllegalTransition, from)
	}
	if _, known := queueTransitions[to]; !known {
		return fmt.Errorf("%w: unknown status %q", ErrIllegalTransition, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}

// IsTerminal reports whether a status ends the appointment lifecycle
func IsTerminal(status string) bool {
	return status == models.StatusPaid || status == models.StatusCancelled
}

// QueueSortRank orders the service floor view: in-wash first, then ready
// for pickup, then waiting (FilaLavagem display order).
func QueueSortRank(status string) int {
	switch status {
	case models.StatusInProgress:
		return 0
	case models.StatusCompleted:
		return 1
	case models.StatusWaiting:
		return 2
	default:
		return 3
	}
}
