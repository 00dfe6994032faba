package order

import (
	"fmt"
	"time"
)

// EstimatedDeliveryWindow is added to the clock when an order becomes ready.
const EstimatedDeliveryWindow = 30 * time.Minute

// allowedTransitions is the full lifecycle table. Absent keys or empty slices
// mean the state is terminal.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

// Valid reports whether s is a known lifecycle status.
func (s Status) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0 && s.Valid()
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowedNext returns the legal successor statuses of s, in table order.
func AllowedNext(s Status) []Status {
	next := allowedTransitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// TransitionDiff is the field patch a successful transition produces. Only the
// non-nil timestamps are written; persisting the diff is the repository's job.
type TransitionDiff struct {
	Status                Status
	UpdatedAt             time.Time
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
}

// Transition computes the field diff for moving an order from current to next
// at the given clock. It fails with ErrInvalidTransition when next is not
// reachable, leaving nothing to persist. Becoming ready stamps the estimated
// delivery time (now + 30 minutes); delivery stamps the actual delivery time.
// No other transition touches timestamp fields.
func Transition(current, next Status, now time.Time) (*TransitionDiff, error) {
	if !current.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
	}

	diff := &TransitionDiff{
		Status:    next,
		UpdatedAt: now,
	}

	switch next {
	case StatusReady:
		eta := now.Add(EstimatedDeliveryWindow)
		diff.EstimatedDeliveryTime = &eta
	case StatusDelivered:
		delivered := now
		diff.ActualDeliveryTime = &delivered
	}

	return diff, nil
}
