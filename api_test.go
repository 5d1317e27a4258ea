package bestfirst

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestBestFirstGraphSearch_PrefersCheaperPath(t *testing.T) {
	m := lineMap()

	result, err := UniformCost[city, road](context.Background(), m)
	require.NoError(t, err)
	require.True(t, result.Found())
	assert.Equal(t, StatusSucceeded, result.Status)
	assert.Equal(t, 3.0, result.Node.PathCost())
	assert.Equal(t, []road{{"b", 2}, {"d", 1}}, result.Node.Solution())
	assert.NotEmpty(t, result.RunID)
}

func TestBestFirstGraphSearch_InitialIsGoal(t *testing.T) {
	m := newRoadMap("a", "a")

	result, err := UniformCost[city, road](context.Background(), m)
	require.NoError(t, err)
	require.True(t, result.Found())
	assert.Equal(t, 0.0, result.Node.PathCost())
	assert.Empty(t, result.Node.Solution())
	assert.Equal(t, 0, result.Expanded)
}

func TestBestFirstGraphSearch_OptimalAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 60; i++ {
		m := randomRoadMap(rng, 7, 0.35)
		want := bruteForceCost(m)
		exact := distanceToGoal(m)

		evals := map[string]Heuristic[city]{
			"uniform": zeroHeuristic,
			"exact":   func(c city) float64 { return exact[c] },
			"half": func(c city) float64 {
				if d, ok := exact[c]; ok {
					return d / 2
				}
				return 0
			},
		}
		for name, h := range evals {
			t.Run(fmt.Sprintf("map%d/%s", i, name), func(t *testing.T) {
				result, err := AStar[city, road](context.Background(), m, h)
				require.NoError(t, err)
				if math.IsInf(want, 1) {
					assert.False(t, result.Found())
					assert.Equal(t, StatusExhausted, result.Status)
					return
				}
				require.True(t, result.Found())
				assert.Equal(t, want, result.Node.PathCost())
			})
		}
	}
}

func TestBestFirstGraphSearch_SolutionReplaysToGoal(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 30; i++ {
		m := randomRoadMap(rng, 8, 0.3)
		result, err := UniformCost[city, road](context.Background(), m)
		require.NoError(t, err)
		if !result.Found() {
			continue
		}

		state := m.Initial()
		cost := 0.0
		for _, action := range result.Node.Solution() {
			next, err := m.Transition(state, action)
			require.NoError(t, err)
			cost = m.StepCost(cost, state, action, next)
			state = next
		}
		assert.Equal(t, result.Node.State(), state)
		assert.Equal(t, result.Node.PathCost(), cost)
	}
}

func TestBestFirstGraphSearch_ExhaustsFiniteSpaceWithoutGoal(t *testing.T) {
	m := newRoadMap("a")
	m.add("a", "b", 1)
	m.add("b", "c", 1)
	m.add("c", "a", 1)
	m.add("b", "a", 1)

	result, err := UniformCost[city, road](context.Background(), m)
	require.NoError(t, err, "no solution is a result, not an error")
	assert.False(t, result.Found())
	assert.Nil(t, result.Node)
	assert.Equal(t, StatusExhausted, result.Status)
	assert.Equal(t, 3, result.Expanded, "every reachable state is expanded exactly once")
}

func TestBestFirstGraphSearch_NoGoalStateNeverSucceeds(t *testing.T) {
	m := newRoadMap("a")
	m.add("a", "b", 1)
	m.add("b", "a", 1)

	result, err := BestFirstGraphSearch[city, road](context.Background(), noGoalProblem{m}, uniformCost)
	require.NoError(t, err)
	assert.False(t, result.Found())
	assert.Equal(t, StatusExhausted, result.Status)
}

// noGoalProblem falls back to BaseProblem.GoalTest, which is false
// when no goal state was given.
type noGoalProblem struct{ *roadMap }

func (p noGoalProblem) GoalTest(state city) bool {
	return p.BaseProblem.GoalTest(state)
}

// brokenMap advertises an action its Transition rejects.
type brokenMap struct{ *roadMap }

func (b brokenMap) Actions(state city) []road {
	return append(b.roadMap.Actions(state), road{to: "nowhere", cost: 1})
}

func TestBestFirstGraphSearch_IllegalActionAborts(t *testing.T) {
	m := lineMap()

	result, err := UniformCost[city, road](context.Background(), brokenMap{m})
	require.ErrorIs(t, err, ErrIllegalAction)
	assert.Nil(t, result.Node)
}

func TestBestFirstGraphSearch_BudgetExceeded(t *testing.T) {
	m := newRoadMap("c0", "c9")
	for i := 0; i < 9; i++ {
		m.add(city(fmt.Sprintf("c%d", i)), city(fmt.Sprintf("c%d", i+1)), 1)
	}

	_, err := UniformCost[city, road](context.Background(), m, WithMaxExpansions(3))
	require.ErrorIs(t, err, ErrBudgetExceeded)

	result, err := UniformCost[city, road](context.Background(), m, WithMaxExpansions(9))
	require.NoError(t, err)
	assert.Equal(t, 9.0, result.Node.PathCost())
}

func TestBestFirstGraphSearch_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := UniformCost[city, road](ctx, lineMap())
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result.Node)
}

func TestBestFirstGraphSearch_GreedyFollowsHeuristicOnly(t *testing.T) {
	m := lineMap()
	// Greedy prefers c because h says it is closer, even though the path is dearer.
	h := func(c city) float64 {
		switch c {
		case "b":
			return 10
		case "c":
			return 1
		}
		return 0
	}

	result, err := GreedyBestFirst[city, road](context.Background(), m, h)
	require.NoError(t, err)
	assert.Equal(t, 6.0, result.Node.PathCost())
}

func TestBestFirstGraphSearch_Observer(t *testing.T) {
	var events []StepEvent
	result, err := UniformCost[city, road](context.Background(), lineMap(),
		WithObserver(func(e StepEvent) { events = append(events, e) }))
	require.NoError(t, err)

	require.NotEmpty(t, events)
	assert.Equal(t, result.Expanded+1, len(events), "one event per expansion plus the goal pop")
	for i, e := range events {
		assert.Equal(t, i+1, e.StepIndex)
		assert.IsType(t, &Node[city, road]{}, e.Current, "Current is the problem's node type")
	}
	last := events[len(events)-1].Current.(*Node[city, road])
	assert.Same(t, result.Node, last)
}

func TestBestFirstGraphSearch_LogsAndTraces(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	result, err := UniformCost[city, road](context.Background(), lineMap(),
		WithLogger(logger), WithTracer(provider.Tracer("test")))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"msg":"search started"`)
	assert.Contains(t, buf.String(), `"msg":"search completed"`)
	assert.Contains(t, buf.String(), result.RunID)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "bestfirst.search", spans[0].Name())
}

func TestBestFirstGraphSearch_RecordsMetrics(t *testing.T) {
	before := testutil.ToFloat64(searchTotal.WithLabelValues(string(StatusExhausted)))

	m := newRoadMap("a")
	m.add("a", "b", 1)
	_, err := UniformCost[city, road](context.Background(), m)
	require.NoError(t, err)

	after := testutil.ToFloat64(searchTotal.WithLabelValues(string(StatusExhausted)))
	assert.Equal(t, before+1, after)
}
