package bestfirst

import "errors"

// Sentinel errors for search operations.
var (
	// ErrEmptyQueue is returned when popping from an empty PriorityQueue.
	// The search loop checks emptiness first, so seeing it from a search
	// means an internal invariant was broken.
	ErrEmptyQueue = errors.New("pop from empty priority queue")

	// ErrKeyNotFound is returned by ScoreOf and Remove when no entry equals the key.
	ErrKeyNotFound = errors.New("key not in priority queue")

	// ErrInvalidOrder is returned by NewPriorityQueue for an unknown Order.
	ErrInvalidOrder = errors.New("order must be either min or max")

	// ErrIllegalAction is wrapped by Problem implementations when Transition
	// is called with an action that is not legal in the given state.
	ErrIllegalAction = errors.New("illegal action")

	// ErrBudgetExceeded is returned when a search hits the limit set by WithMaxExpansions.
	ErrBudgetExceeded = errors.New("expansion budget exceeded")
)
