package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_ForwardChain(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusConfirmed, StatusInProgress))
	assert.True(t, CanTransition(StatusInProgress, StatusCompleted))
}

func TestCanTransition_CancelFromNonTerminal(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))
	assert.True(t, CanTransition(StatusInProgress, StatusCancelled))
}

func TestCanTransition_NoBackwardOrSkip(t *testing.T) {
	// Движение назад запрещено
	assert.False(t, CanTransition(StatusConfirmed, StatusPending))
	assert.False(t, CanTransition(StatusInProgress, StatusConfirmed))
	assert.False(t, CanTransition(StatusCompleted, StatusInProgress))

	// Перепрыгивание через шаг запрещено
	assert.False(t, CanTransition(StatusPending, StatusInProgress))
	assert.False(t, CanTransition(StatusPending, StatusCompleted))
	assert.False(t, CanTransition(StatusConfirmed, StatusCompleted))
}

func TestCanTransition_TerminalStatesHaveNoTransitions(t *testing.T) {
	for _, terminal := range []AppointmentStatus{StatusCompleted, StatusCancelled} {
		for _, to := range AllStatuses {
			assert.False(t, CanTransition(terminal, to),
				"transition %s -> %s must be rejected", terminal, to)
		}
		assert.Empty(t, NextStatuses(terminal))
	}
}

func TestNextStatuses_FromPending(t *testing.T) {
	// Из pending за один шаг достижимы только confirmed и cancelled
	next := NextStatuses(StatusPending)
	assert.ElementsMatch(t, []AppointmentStatus{StatusConfirmed, StatusCancelled}, next)
}

func TestNextStatuses_ReturnsCopy(t *testing.T) {
	next := NextStatuses(StatusPending)
	require.NotEmpty(t, next)

	next[0] = StatusCompleted
	assert.ElementsMatch(t, []AppointmentStatus{StatusConfirmed, StatusCancelled}, NextStatuses(StatusPending))
}

func TestParseStatus(t *testing.T) {
	for _, known := range AllStatuses {
		parsed, err := ParseStatus(string(known))
		require.NoError(t, err)
		assert.Equal(t, known, parsed)
	}

	_, err := ParseStatus("no_show")
	assert.Error(t, err)

	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestAppointment_IsActive(t *testing.T) {
	app := &Appointment{Status: StatusPending}
	assert.True(t, app.IsActive())

	app.Status = StatusCompleted
	assert.True(t, app.IsActive(), "completed appointments still occupy history slots")

	app.Status = StatusCancelled
	assert.False(t, app.IsActive())
}
