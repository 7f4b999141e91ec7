// services/slots.go
package services

import (
	"errors"
	"fmt"
	"time"

	"pitstop-backend/models"
	"pitstop-backend/utils"
)

// ErrBadDate marks a malformed availability date
var ErrBadDate = errors.New("invalid date")

// SlotInterval is the fixed spacing of the booking grid.
const SlotInterval = 30 * time.Minute

// TimeSlot is one candidate start time within business hours
type TimeSlot struct {
	Time      string `json:"time"` // 15:04
	Available bool   `json:"available"`
}

// SlotOptions carries the inputs of one availability computation.
// LockAheadHours > 0 excludes slots starting before now + lock-ahead,
// so nothing can be booked too soon to prepare for.
type SlotOptions struct {
	Date            string // 2006-01-02
	OpeningHour     int
	ClosingHour     int
	DurationMinutes int
	LockAheadHours  float64
	Now             time.Time
}

// overlaps reports half-open interval intersection:
// [s1,e1) and [s2,e2) conflict iff s1 < e2 && e1 > s2. Two jobs that meet
// boundary-to-boundary do not conflict.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// GenerateSlots produces the ordered 30-minute grid between opening
// (inclusive) and closing (exclusive) for one day, each slot flagged
// available or not against the existing non-cancelled appointments.
// An empty result means no grid exists (closing <= opening); a non-empty
// result with every slot unavailable means the day is fully booked.
func GenerateSlots(opts SlotOptions, existing []models.Appointment) ([]TimeSlot, error) {
	loc := opts.Now.Location()
	dayStart, err := time.ParseInLocation(utils.DateLayout, opts.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadDate, opts.Date)
	}

	duration := time.Duration(opts.DurationMinutes) * time.Minute

	type interval struct{ start, end time.Time }
	var occupied []interval
	for _, apt := range existing {
		if apt.Status == models.StatusCancelled || apt.Date != opts.Date {
			continue
		}
		start, err := apt.StartsAt(loc)
		if err != nil {
			continue
		}
		occupied = append(occupied, interval{start, start.Add(time.Duration(apt.DurationMinutes) * time.Minute)})
	}

	lockUntil := opts.Now.Add(time.Duration(opts.LockAheadHours * float64(time.Hour)))

	var slots []TimeSlot
	opening := dayStart.Add(time.Duration(opts.OpeningHour) * time.Hour)
	closing := dayStart.Add(time.Duration(opts.ClosingHour) * time.Hour)

	for start := opening; start.Before(closing); start = start.Add(SlotInterval) {
		if opts.LockAheadHours > 0 && !start.After(lockUntil) {
			continue
		}

		end := start.Add(duration)
		available := true
		for _, occ := range occupied {
			if overlaps(start, end, occ.start, occ.end) {
				available = false
				break
			}
		}

		slots = append(slots, TimeSlot{Time: start.Format(utils.TimeLayout), Available: available})
	}

	return slots, nil
}

// HasFreeSlot reports whether at least one generated slot is available
func HasFreeSlot(slots []TimeSlot) bool {
	for _, s := range slots {
		if s.Available {
			return true
		}
	}
	return false
}

// SlotIsFree checks a single requested start time against the grid; a time
// not on the grid (outside hours or locked) is not bookable.
func SlotIsFree(slots []TimeSlot, clock string) bool {
	for _, s := range slots {
		if s.Time == clock {
			return s.Available
		}
	}
	return false
}
