package bestfirst

import (
	"time"

	"github.com/google/uuid"
)

// StepSnapshot exposes the per-iteration state of the search.
type StepSnapshot[S State[S], A any] struct {
	Current      *Node[S, A]
	Admitted     []*Node[S, A]
	FrontierSize int
	CostSoFar    map[string]float64
	Done         bool
	Found        bool
	Status       Status
	Solution     []A
	StepIndex    int
}

// Stepper runs BestFirstGraphSearch one expansion at a time.
// Of the options only WithMaxExpansions applies; logging, tracing and
// cancellation are left to the caller.
//
// Not safe for concurrent use.
type Stepper[S State[S], A any] struct {
	search    *graphSearch[S, A]
	runID     string
	startTime time.Time
	stepCount int
	last      StepSnapshot[S, A]
}

// NewStepper prepares a search without expanding anything.
func NewStepper[S State[S], A any](problem Problem[S, A], f EvalFunc[S, A], options ...Option) (*Stepper[S, A], error) {
	search, err := newGraphSearch(problem, f, applyOptions(options).MaxExpansions)
	if err != nil {
		return nil, err
	}
	return &Stepper[S, A]{
		search:    search,
		runID:     uuid.NewString(),
		startTime: time.Now(),
	}, nil
}

// Step advances the search by one iteration and returns a snapshot.
// Once the search is done every call returns the final snapshot.
func (s *Stepper[S, A]) Step() (StepSnapshot[S, A], error) {
	if s.search.status != StatusSearching {
		return s.last, nil
	}

	step, err := s.search.step()
	if err != nil {
		return StepSnapshot[S, A]{Current: step.current, Status: s.search.status, StepIndex: s.stepCount}, err
	}
	if step.current != nil {
		s.stepCount++
	}

	snapshot := StepSnapshot[S, A]{
		Current:      step.current,
		Admitted:     step.admitted,
		FrontierSize: s.search.frontier.Len(),
		CostSoFar:    s.search.copyCostSoFar(),
		Status:       s.search.status,
		Done:         s.search.status != StatusSearching,
		Found:        s.search.status == StatusSucceeded,
		StepIndex:    s.stepCount,
	}
	if snapshot.Found {
		snapshot.Solution = s.search.goal.Solution()
	}
	s.last = snapshot
	return snapshot, nil
}

// Run steps until the search is done.
func (s *Stepper[S, A]) Run() (StepSnapshot[S, A], error) {
	for {
		snapshot, err := s.Step()
		if err != nil || snapshot.Done {
			return snapshot, err
		}
	}
}

// Result returns the counters accumulated so far.
func (s *Stepper[S, A]) Result() Result[S, A] {
	result := s.search.result()
	result.RunID = s.runID
	result.Elapsed = time.Since(s.startTime)
	return result
}
