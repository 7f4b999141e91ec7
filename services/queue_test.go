package services

import (
	"testing"

	"pitstop-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []string{
	models.StatusWaiting,
	models.StatusInProgress,
	models.StatusCompleted,
	models.StatusPaid,
	models.StatusCancelled,
}

func TestTransitionTable(t *testing.T) {
	legal := map[[2]string]bool{
		{models.StatusWaiting, models.StatusInProgress}:   true,
		{models.StatusWaiting, models.StatusCancelled}:    true,
		{models.StatusInProgress, models.StatusCompleted}: true,
		{models.StatusInProgress, models.StatusCancelled}: true,
		{models.StatusCompleted, models.StatusPaid}:       true,
	}

	// every pair not in the table must be rejected
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			err := ValidateTransition(from, to)
			if legal[[2]string{from, to}] {
				assert.NoError(t, err, "%s -> %s should be legal", from, to)
			} else {
				assert.ErrorIs(t, err, ErrIllegalTransition, "%s -> %s should be illegal", from, to)
			}
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []string{models.StatusPaid, models.StatusCancelled} {
		require.True(t, IsTerminal(terminal))
		for _, to := range allStatuses {
			assert.False(t, CanTransition(terminal, to), "%s -> %s must not be allowed", terminal, to)
		}
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	err := ValidateTransition("waiting", "shipped")
	require.ErrorIs(t, err, ErrIllegalTransition)

	err = ValidateTransition("archived", "waiting")
	require.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTransitionErrorNamesTheTransition(t *testing.T) {
	err := ValidateTransition(models.StatusPaid, models.StatusInProgress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paid -> in_progress")
}

func TestQueueSortRank(t *testing.T) {
	assert.Less(t, QueueSortRank(models.StatusInProgress), QueueSortRank(models.StatusCompleted))
	assert.Less(t, QueueSortRank(models.StatusCompleted), QueueSortRank(models.StatusWaiting))
}
