package bestfirst

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Heuristic estimates the remaining cost from state to the nearest goal.
type Heuristic[S any] func(state S) float64

// Result contains the outcome of a search.
type Result[S State[S], A any] struct {
	// Node is the goal node, or nil when the frontier was exhausted.
	Node *Node[S, A]

	Status      Status
	Expanded    int // nodes popped and expanded
	Generated   int // children produced by expansion
	Admitted    int // children that passed the dominance check
	MaxFrontier int

	RunID   string
	Elapsed time.Duration
}

// Found reports whether the search reached a goal.
func (r Result[S, A]) Found() bool { return r.Node != nil }

// StepEvent describes one iteration of the search loop.
type StepEvent struct {
	StepIndex    int
	Current      any // *Node[S, A] popped this step, typed by the Problem
	Admitted     int
	FrontierSize int
}

// Options defines parameters for the search.
type Options struct {
	Logger        *slog.Logger
	Tracer        trace.Tracer
	MaxExpansions int
	Observer      func(StepEvent)
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger used for run start and end records.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithTracer sets the tracer that receives one span per run.
func WithTracer(tracer trace.Tracer) Option {
	return func(options *Options) { options.Tracer = tracer }
}

// WithMaxExpansions fails the search with ErrBudgetExceeded when it would
// expand more than n nodes. Zero means no limit.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

// WithObserver registers a callback invoked after every expansion or goal
// pop. Options are not generic, so StepEvent.Current carries the node as
// any; assert it to *Node[S, A] for the problem's state and action types.
func WithObserver(observer func(StepEvent)) Option {
	return func(options *Options) { options.Observer = observer }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.Default()
	}
	if searchOptions.Tracer == nil {
		searchOptions.Tracer = noopTracer()
	}
	return searchOptions
}

// BestFirstGraphSearch expands nodes in increasing order of f until one
// passes the problem's goal test.
//
// An exhausted frontier is not an error: the Result has a nil Node and
// StatusExhausted. Errors from Transition, context cancellation (checked
// once per iteration) and the expansion budget abort the run.
func BestFirstGraphSearch[S State[S], A any](
	contextObject context.Context,
	problem Problem[S, A],
	f EvalFunc[S, A],
	options ...Option,
) (Result[S, A], error) {

	// --- Apply options ---
	searchOptions := applyOptions(options)
	runID := uuid.NewString()
	logger := searchOptions.Logger.With(slog.String("run_id", runID))

	contextObject, span := startSearchSpan(contextObject, searchOptions.Tracer, runID)
	if logger.Enabled(contextObject, slog.LevelDebug) {
		logger.DebugContext(contextObject, "search started",
			slog.String("initial", fmt.Sprint(problem.Initial())),
			slog.Int("max_expansions", searchOptions.MaxExpansions),
		)
	}

	// --- Initialize state ---
	startTime := time.Now()
	search, err := newGraphSearch(problem, f, searchOptions.MaxExpansions)

	// --- Orchestrator loop ---
	stepIndex := 0
	for err == nil && search.status == StatusSearching {
		if err = contextObject.Err(); err != nil {
			break
		}

		var step expansion[S, A]
		step, err = search.step()
		if err != nil {
			break
		}
		if step.current != nil {
			stepIndex++
			if searchOptions.Observer != nil {
				searchOptions.Observer(StepEvent{
					StepIndex:    stepIndex,
					Current:      step.current,
					Admitted:     len(step.admitted),
					FrontierSize: search.frontier.Len(),
				})
			}
		}
	}

	var result Result[S, A]
	if search != nil {
		result = search.result()
	}
	result.RunID = runID
	result.Elapsed = time.Since(startTime)
	if err != nil {
		// a failed run carries counters only
		result.Node = nil
	}

	endSearchSpan(span, result, err)
	label := string(result.Status)
	if err != nil {
		label = "error"
	}
	recordSearchMetrics(label, result.Expanded, result.MaxFrontier, result.Elapsed)

	attrs := []any{
		slog.String("status", label),
		slog.Int("expanded", result.Expanded),
		slog.Int("generated", result.Generated),
		slog.Int("max_frontier", result.MaxFrontier),
		slog.Duration("elapsed", result.Elapsed),
	}
	if err != nil {
		logger.WarnContext(contextObject, "search aborted", append(attrs, slog.String("error", err.Error()))...)
		return result, err
	}
	if result.Node != nil {
		attrs = append(attrs, slog.Float64("path_cost", result.Node.PathCost()))
	}
	logger.InfoContext(contextObject, "search completed", attrs...)
	return result, nil
}

// AStar searches with f = path cost + h.
func AStar[S State[S], A any](
	contextObject context.Context,
	problem Problem[S, A],
	h Heuristic[S],
	options ...Option,
) (Result[S, A], error) {
	return BestFirstGraphSearch(contextObject, problem, func(node *Node[S, A]) float64 {
		return node.PathCost() + h(node.State())
	}, options...)
}

// UniformCost searches with f = path cost.
func UniformCost[S State[S], A any](
	contextObject context.Context,
	problem Problem[S, A],
	options ...Option,
) (Result[S, A], error) {
	return BestFirstGraphSearch(contextObject, problem, func(node *Node[S, A]) float64 {
		return node.PathCost()
	}, options...)
}

// GreedyBestFirst searches with f = h. It is fast but not optimal.
func GreedyBestFirst[S State[S], A any](
	contextObject context.Context,
	problem Problem[S, A],
	h Heuristic[S],
	options ...Option,
) (Result[S, A], error) {
	return BestFirstGraphSearch(contextObject, problem, func(node *Node[S, A]) float64 {
		return h(node.State())
	}, options...)
}
