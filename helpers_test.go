package bestfirst

import (
	"fmt"
	"math"
	"math/rand"
)

// city is a minimal State for tests.
type city string

func (c city) Equal(other city) bool { return c == other }
func (c city) Less(other city) bool  { return c < other }
func (c city) Fingerprint() string   { return string(c) }

type road struct {
	to   city
	cost float64
}

// roadMap is a weighted directed graph problem. Goals are a set so the
// goal test is structural rather than equality with one state.
type roadMap struct {
	BaseProblem[city, road]
	roads map[city][]road
	goals map[city]bool
}

func newRoadMap(start city, goals ...city) *roadMap {
	m := &roadMap{
		BaseProblem: NewBaseProblem[city, road](start),
		roads:       make(map[city][]road),
		goals:       make(map[city]bool),
	}
	for _, g := range goals {
		m.goals[g] = true
	}
	return m
}

func (m *roadMap) add(from, to city, cost float64) {
	m.roads[from] = append(m.roads[from], road{to: to, cost: cost})
}

func (m *roadMap) Actions(state city) []road { return m.roads[state] }

func (m *roadMap) Transition(state city, action road) (city, error) {
	for _, r := range m.roads[state] {
		if r == action {
			return r.to, nil
		}
	}
	return "", fmt.Errorf("%w: %s -> %s", ErrIllegalAction, state, action.to)
}

func (m *roadMap) GoalTest(state city) bool { return m.goals[state] }

func (m *roadMap) StepCost(c float64, _ city, action road, _ city) float64 {
	return c + action.cost
}

// randomRoadMap builds n cities c0..c(n-1) with random non-negative edges.
// c0 is the start and the last city the only goal.
func randomRoadMap(rng *rand.Rand, n int, density float64) *roadMap {
	name := func(i int) city { return city(fmt.Sprintf("c%d", i)) }
	m := newRoadMap(name(0), name(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && rng.Float64() < density {
				m.add(name(i), name(j), float64(rng.Intn(10)))
			}
		}
	}
	return m
}

// bruteForceCost enumerates every simple path from the start and returns
// the cheapest cost to a goal, or +Inf.
func bruteForceCost(m *roadMap) float64 {
	best := math.Inf(1)
	visited := map[city]bool{}
	var dfs func(c city, cost float64)
	dfs = func(c city, cost float64) {
		if m.goals[c] && cost < best {
			best = cost
		}
		visited[c] = true
		for _, r := range m.roads[c] {
			if !visited[r.to] {
				dfs(r.to, cost+r.cost)
			}
		}
		visited[c] = false
	}
	dfs(m.Initial(), 0)
	return best
}

// distanceToGoal computes the exact remaining cost for every city by
// relaxing reversed edges; it is a consistent heuristic.
func distanceToGoal(m *roadMap) map[city]float64 {
	dist := map[city]float64{}
	for g := range m.goals {
		dist[g] = 0
	}
	for changed := true; changed; {
		changed = false
		for from, roads := range m.roads {
			for _, r := range roads {
				d, ok := dist[r.to]
				if !ok {
					continue
				}
				if cur, seen := dist[from]; !seen || d+r.cost < cur {
					dist[from] = d + r.cost
					changed = true
				}
			}
		}
	}
	return dist
}

func zeroHeuristic(city) float64 { return 0 }

func uniformCost(node *Node[city, road]) float64 { return node.PathCost() }
