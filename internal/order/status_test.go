package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []Status{
	StatusPending, StatusConfirmed, StatusPreparing,
	StatusReady, StatusDelivered, StatusCancelled,
}

// legalTransitions mirrors the lifecycle contract pair by pair so the table in
// status.go cannot drift unnoticed.
var legalTransitions = map[Status]map[Status]bool{
	StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusPreparing: true, StatusCancelled: true},
	StatusPreparing: {StatusReady: true, StatusCancelled: true},
	StatusReady:     {StatusDelivered: true},
	StatusDelivered: {},
	StatusCancelled: {},
}

func TestTransition_FullTable(t *testing.T) {
	now := time.Now()

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			diff, err := Transition(from, to, now)

			if legalTransitions[from][to] {
				require.NoError(t, err, "%s -> %s should be allowed", from, to)
				assert.Equal(t, to, diff.Status)
				assert.Equal(t, now, diff.UpdatedAt)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s should be rejected", from, to)
				assert.Nil(t, diff)
			}
		}
	}
}

func TestTransition_ReadyStampsEstimatedDelivery(t *testing.T) {
	now := time.Now()

	diff, err := Transition(StatusPreparing, StatusReady, now)
	require.NoError(t, err)

	require.NotNil(t, diff.EstimatedDeliveryTime)
	assert.Nil(t, diff.ActualDeliveryTime)
	assert.WithinDuration(t, now.Add(30*time.Minute), *diff.EstimatedDeliveryTime, time.Second)
}

func TestTransition_DeliveredStampsActualDelivery(t *testing.T) {
	now := time.Now()

	diff, err := Transition(StatusReady, StatusDelivered, now)
	require.NoError(t, err)

	require.NotNil(t, diff.ActualDeliveryTime)
	assert.Nil(t, diff.EstimatedDeliveryTime)
	assert.WithinDuration(t, now, *diff.ActualDeliveryTime, time.Second)
}

func TestTransition_IntermediateStepsLeaveTimestampsAlone(t *testing.T) {
	now := time.Now()

	for _, step := range []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusConfirmed, StatusPreparing},
		{StatusPending, StatusCancelled},
		{StatusPreparing, StatusCancelled},
	} {
		diff, err := Transition(step.from, step.to, now)
		require.NoError(t, err)
		assert.Nil(t, diff.EstimatedDeliveryTime, "%s -> %s", step.from, step.to)
		assert.Nil(t, diff.ActualDeliveryTime, "%s -> %s", step.from, step.to)
	}
}

func TestTransition_ReadyCannotBeCancelled(t *testing.T) {
	_, err := Transition(StatusReady, StatusCancelled, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_UnknownStatus(t *testing.T) {
	_, err := Transition(Status("shipped"), StatusDelivered, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Transition(StatusPending, Status("shipped"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("shipped").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())

	for _, s := range []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusReady} {
		assert.False(t, s.IsTerminal(), string(s))
	}

	// Unknown statuses are invalid, not terminal.
	assert.False(t, Status("shipped").IsTerminal())
}

func TestAllowedNext_ReturnsCopy(t *testing.T) {
	next := AllowedNext(StatusPending)
	require.Equal(t, []Status{StatusConfirmed, StatusCancelled}, next)

	next[0] = StatusDelivered
	assert.Equal(t, []Status{StatusConfirmed, StatusCancelled}, AllowedNext(StatusPending))
}
