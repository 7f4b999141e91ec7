package services

import (
	"testing"
	"time"

	"pitstop-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotOpts(duration int, lockHours float64, now time.Time) SlotOptions {
	return SlotOptions{
		Date:            "2026-09-10",
		OpeningHour:     8,
		ClosingHour:     12,
		DurationMinutes: duration,
		LockAheadHours:  lockHours,
		Now:             now,
	}
}

func existingJob(clock string, duration int, status string) models.Appointment {
	return models.Appointment{
		Date:            "2026-09-10",
		Time:            clock,
		DurationMinutes: duration,
		Status:          status,
	}
}

func findSlot(t *testing.T, slots []TimeSlot, clock string) TimeSlot {
	t.Helper()
	for _, s := range slots {
		if s.Time == clock {
			return s
		}
	}
	t.Fatalf("slot %s not in grid", clock)
	return TimeSlot{}
}

func TestGenerateSlotsGrid(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(slotOpts(30, 0, now), nil)
	require.NoError(t, err)

	// 8:00 inclusive to 12:00 exclusive, every 30 minutes
	require.Len(t, slots, 8)
	assert.Equal(t, "08:00", slots[0].Time)
	assert.Equal(t, "11:30", slots[len(slots)-1].Time)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestGenerateSlotsOverlap(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	existing := []models.Appointment{existingJob("09:00", 60, models.StatusWaiting)}

	slots, err := GenerateSlots(slotOpts(30, 0, now), existing)
	require.NoError(t, err)

	// 09:30 + 30min overlaps [09:00, 10:00); 10:00 starts exactly at its end
	assert.False(t, findSlot(t, slots, "09:30").Available)
	assert.False(t, findSlot(t, slots, "09:00").Available)
	assert.True(t, findSlot(t, slots, "10:00").Available)

	// a long candidate reaching into the existing job from before is blocked
	longService, err := GenerateSlots(slotOpts(90, 0, now), existing)
	require.NoError(t, err)
	assert.False(t, findSlot(t, longService, "08:00").Available)
	assert.False(t, findSlot(t, longService, "08:30").Available)
}

func TestGenerateSlotsAdjacentIntervalsDoNotConflict(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	existing := []models.Appointment{existingJob("09:00", 30, models.StatusInProgress)}

	slots, err := GenerateSlots(slotOpts(30, 0, now), existing)
	require.NoError(t, err)

	assert.True(t, findSlot(t, slots, "08:30").Available)
	assert.False(t, findSlot(t, slots, "09:00").Available)
	assert.True(t, findSlot(t, slots, "09:30").Available)
}

func TestGenerateSlotsCancelledJobsReleaseTheSlot(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	existing := []models.Appointment{existingJob("09:00", 60, models.StatusCancelled)}

	slots, err := GenerateSlots(slotOpts(30, 0, now), existing)
	require.NoError(t, err)

	assert.True(t, findSlot(t, slots, "09:00").Available)
	assert.True(t, findSlot(t, slots, "09:30").Available)
}

func TestGenerateSlotsOtherDatesIgnored(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	other := models.Appointment{Date: "2026-09-11", Time: "09:00", DurationMinutes: 240, Status: models.StatusWaiting}

	slots, err := GenerateSlots(slotOpts(30, 0, now), []models.Appointment{other})
	require.NoError(t, err)

	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestGenerateSlotsLockAhead(t *testing.T) {
	// 07:00 same day with a 3h lock: nothing at or before 10:00 is offered
	now := time.Date(2026, 9, 10, 7, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(slotOpts(30, 3, now), nil)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, "10:30", slots[0].Time)
}

func TestGenerateSlotsEmptyGridWhenClosed(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	opts := slotOpts(30, 0, now)
	opts.OpeningHour = 18
	opts.ClosingHour = 18

	slots, err := GenerateSlots(opts, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsFullyBookedStillReturnsGrid(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	existing := []models.Appointment{existingJob("08:00", 240, models.StatusWaiting)}

	slots, err := GenerateSlots(slotOpts(30, 0, now), existing)
	require.NoError(t, err)

	// caller can tell "all occupied" apart from "no grid"
	require.NotEmpty(t, slots)
	assert.False(t, HasFreeSlot(slots))
}

func TestGenerateSlotsBadDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	opts := slotOpts(30, 0, now)
	opts.Date = "10/09/2026"

	_, err := GenerateSlots(opts, nil)
	require.ErrorIs(t, err, ErrBadDate)
}

func TestSlotIsFree(t *testing.T) {
	slots := []TimeSlot{
		{Time: "08:00", Available: true},
		{Time: "08:30", Available: false},
	}

	assert.True(t, SlotIsFree(slots, "08:00"))
	assert.False(t, SlotIsFree(slots, "08:30"))
	assert.False(t, SlotIsFree(slots, "23:00")) // off the grid is not bookable
}
