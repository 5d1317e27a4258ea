package bestfirst

// State is the contract a domain state must satisfy.
//
// Equal states must return equal fingerprints, and the fingerprint is the
// identity used by the cost table: two states are the same search vertex
// iff their fingerprints match. Less only breaks frontier ties.
type State[S any] interface {
	Equal(other S) bool
	Less(other S) bool
	Fingerprint() string
}

// Problem is a state-transition problem the search can solve.
type Problem[S State[S], A any] interface {
	// Initial returns the state the search starts from.
	Initial() S

	// Actions lists the legal actions in state, in a deterministic order.
	// An empty result marks a dead end.
	Actions(state S) []A

	// Transition returns the state reached by applying action to state.
	// It must not modify state. An action that is not legal in state
	// must fail with an error wrapping ErrIllegalAction.
	Transition(state S, action A) (S, error)

	// GoalTest reports whether state satisfies the goal condition.
	GoalTest(state S) bool

	// StepCost returns the path cost after moving from state to next via
	// action, given the cost c accumulated so far. It must be >= c.
	StepCost(c float64, state S, action A, next S) float64
}

// BaseProblem carries the initial and optional goal state and the default
// policies. Embed it and supply Actions and Transition.
type BaseProblem[S State[S], A any] struct {
	InitialState S
	GoalState    *S
}

// NewBaseProblem returns a BaseProblem. At most one goal is used.
func NewBaseProblem[S State[S], A any](initial S, goal ...S) BaseProblem[S, A] {
	base := BaseProblem[S, A]{InitialState: initial}
	if len(goal) > 0 {
		g := goal[0]
		base.GoalState = &g
	}
	return base
}

func (p BaseProblem[S, A]) Initial() S { return p.InitialState }

// Goal returns the explicit goal state, if one was given.
func (p BaseProblem[S, A]) Goal() (S, bool) {
	if p.GoalState == nil {
		var zero S
		return zero, false
	}
	return *p.GoalState, true
}

// GoalTest compares state with the explicit goal. Without one it is always false.
func (p BaseProblem[S, A]) GoalTest(state S) bool {
	if p.GoalState == nil {
		return false
	}
	return state.Equal(*p.GoalState)
}

// StepCost charges one unit per step.
func (p BaseProblem[S, A]) StepCost(c float64, _ S, _ A, _ S) float64 {
	return c + 1
}
