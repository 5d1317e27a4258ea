package bestfirst

import "fmt"

// Status is the state of a search run.
type Status string

const (
	StatusSearching Status = "SEARCHING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusExhausted Status = "EXHAUSTED"
)

// EvalFunc scores a node; the frontier pops the lowest score first.
type EvalFunc[S State[S], A any] func(node *Node[S, A]) float64

// expansion is what one call to graphSearch.step did.
type expansion[S State[S], A any] struct {
	current  *Node[S, A]
	admitted []*Node[S, A]
}

// graphSearch owns the frontier and the cost table of a single run.
// BestFirstGraphSearch and Stepper both drive it.
type graphSearch[S State[S], A any] struct {
	problem   Problem[S, A]
	frontier  *PriorityQueue[*Node[S, A]]
	costSoFar map[string]float64
	budget    int // max expansions, 0 for none

	status      Status
	failed      error
	goal        *Node[S, A]
	expanded    int
	generated   int
	admitted    int
	maxFrontier int
}

func newGraphSearch[S State[S], A any](problem Problem[S, A], eval EvalFunc[S, A], budget int) (*graphSearch[S, A], error) {
	frontier, err := NewPriorityQueue[*Node[S, A]](MinOrder, eval)
	if err != nil {
		return nil, err
	}
	root := NewNode[S, A](problem.Initial())
	frontier.Insert(root)
	return &graphSearch[S, A]{
		problem:     problem,
		frontier:    frontier,
		costSoFar:   map[string]float64{root.Fingerprint(): 0},
		budget:      budget,
		status:      StatusSearching,
		maxFrontier: 1,
	}, nil
}

// step pops the best node and either finishes on it or expands it.
// An empty frontier moves the run to StatusExhausted. A goal can still be
// popped once the budget is spent, but nothing more is expanded.
func (g *graphSearch[S, A]) step() (expansion[S, A], error) {
	if g.failed != nil {
		return expansion[S, A]{}, g.failed
	}
	if g.status != StatusSearching {
		return expansion[S, A]{}, nil
	}
	if g.frontier.Len() == 0 {
		g.status = StatusExhausted
		return expansion[S, A]{}, nil
	}

	current, err := g.frontier.PopBest()
	if err != nil {
		g.failed = err
		return expansion[S, A]{}, err
	}
	if g.problem.GoalTest(current.State()) {
		g.status = StatusSucceeded
		g.goal = current
		return expansion[S, A]{current: current}, nil
	}

	if g.budget > 0 && g.expanded >= g.budget {
		g.failed = fmt.Errorf("%w: %d expansions", ErrBudgetExceeded, g.budget)
		return expansion[S, A]{current: current}, g.failed
	}
	children, err := current.Expand(g.problem)
	if err != nil {
		g.failed = err
		return expansion[S, A]{current: current}, err
	}
	g.expanded++
	g.generated += len(children)

	step := expansion[S, A]{current: current}
	for _, child := range children {
		if g.relax(child) {
			step.admitted = append(step.admitted, child)
		}
	}
	if n := g.frontier.Len(); n > g.maxFrontier {
		g.maxFrontier = n
	}
	return step, nil
}

// relax admits child when its fingerprint is new or it is strictly cheaper
// than the best known path to that fingerprint.
func (g *graphSearch[S, A]) relax(child *Node[S, A]) bool {
	fingerprint := child.Fingerprint()
	known, seen := g.costSoFar[fingerprint]
	if seen && child.PathCost() >= known {
		return false
	}
	g.costSoFar[fingerprint] = child.PathCost()
	g.frontier.Insert(child)
	g.admitted++
	return true
}

func (g *graphSearch[S, A]) result() Result[S, A] {
	return Result[S, A]{
		Node:        g.goal,
		Status:      g.status,
		Expanded:    g.expanded,
		Generated:   g.generated,
		Admitted:    g.admitted,
		MaxFrontier: g.maxFrontier,
	}
}

func (g *graphSearch[S, A]) copyCostSoFar() map[string]float64 {
	c := make(map[string]float64, len(g.costSoFar))
	for k, v := range g.costSoFar {
		c[k] = v
	}
	return c
}
