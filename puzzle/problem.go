package puzzle

import (
	"context"
	"fmt"

	"github.com/pdrpinto/bestfirst"
)

// Problem asks for the shortest move sequence from an initial State to
// the solved grid. Every move costs one.
type Problem struct {
	bestfirst.BaseProblem[State, Action]
}

var _ bestfirst.Problem[State, Action] = Problem{}

// NewProblem returns a Problem starting at initial. The goal is the solved
// grid of the same size.
func NewProblem(initial State) Problem {
	goal, err := NewSolved(initial.Rows(), initial.Cols())
	if err != nil {
		return Problem{BaseProblem: bestfirst.NewBaseProblem[State, Action](initial)}
	}
	return Problem{BaseProblem: bestfirst.NewBaseProblem[State, Action](initial, goal)}
}

func (p Problem) Actions(state State) []Action { return state.Actions() }

// Transition applies action to a copy of state.
func (p Problem) Transition(state State, action Action) (State, error) {
	next := state.Clone()
	if !next.Apply(action) {
		return State{}, fmt.Errorf("%w: %v with blank at (%d,%d)",
			bestfirst.ErrIllegalAction, action, state.blank.Row, state.blank.Col)
	}
	return next, nil
}

func (p Problem) GoalTest(state State) bool { return state.IsGoal() }

// Manhattan is State.Heuristic as a bestfirst.Heuristic.
func Manhattan(state State) float64 { return float64(state.Heuristic()) }

// Solve runs A* with the Manhattan heuristic and returns the moves that
// solve initial.
func Solve(ctx context.Context, initial State, options ...bestfirst.Option) ([]Action, bestfirst.Result[State, Action], error) {
	result, err := bestfirst.AStar(ctx, bestfirst.Problem[State, Action](NewProblem(initial)), Manhattan, options...)
	if err != nil {
		return nil, result, err
	}
	if !result.Found() {
		return nil, result, ErrUnsolvable
	}
	return result.Node.Solution(), result, nil
}

// Replay applies actions to a copy of initial and returns the final state.
func Replay(initial State, actions []Action) (State, error) {
	state := initial.Clone()
	for i, action := range actions {
		if !state.Apply(action) {
			return State{}, fmt.Errorf("%w: move %d (%v)", bestfirst.ErrIllegalAction, i, action)
		}
	}
	return state, nil
}
