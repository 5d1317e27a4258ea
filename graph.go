package bestfirst

import (
	"context"
	"fmt"
	"strconv"
)

// Graph is generic over node type NodeType.
// NodeType must be comparable so it can be used in maps.
type Graph[NodeType comparable] interface {
	Neighbors(node NodeType) []Neighbor[NodeType]
}

// Neighbor represents a reachable node with a cost.
type Neighbor[NodeType comparable] struct {
	ID   NodeType
	Cost float64
}

// DistanceHeuristic returns the estimated cost from node a to node b.
type DistanceHeuristic[NodeType comparable] func(from NodeType, to NodeType) float64

// PathResult contains the outcome of ShortestPath.
type PathResult[NodeType comparable] struct {
	Path          []NodeType
	TotalCost     float64
	ExpandedNodes int
	Found         bool
}

// Vertex wraps a graph node as a search State. Its fingerprint is the
// order in which the owning GraphProblem first saw the node.
type Vertex[NodeType comparable] struct {
	ID    NodeType
	order int
}

func (v Vertex[NodeType]) Equal(other Vertex[NodeType]) bool { return v.ID == other.ID }
func (v Vertex[NodeType]) Less(other Vertex[NodeType]) bool  { return v.order < other.order }
func (v Vertex[NodeType]) Fingerprint() string               { return strconv.Itoa(v.order) }
func (v Vertex[NodeType]) String() string                    { return fmt.Sprint(v.ID) }

// GraphProblem adapts a Graph to Problem. Actions are the outgoing
// neighbors; the step cost is the neighbor's edge cost.
type GraphProblem[NodeType comparable] struct {
	graph  Graph[NodeType]
	start  Vertex[NodeType]
	goal   NodeType
	intern map[NodeType]int
}

// NewGraphProblem builds a problem that looks for goal starting at start.
func NewGraphProblem[NodeType comparable](graph Graph[NodeType], start, goal NodeType) *GraphProblem[NodeType] {
	p := &GraphProblem[NodeType]{
		graph:  graph,
		goal:   goal,
		intern: make(map[NodeType]int),
	}
	p.start = p.vertex(start)
	return p
}

func (p *GraphProblem[NodeType]) vertex(id NodeType) Vertex[NodeType] {
	order, ok := p.intern[id]
	if !ok {
		order = len(p.intern)
		p.intern[id] = order
	}
	return Vertex[NodeType]{ID: id, order: order}
}

func (p *GraphProblem[NodeType]) Initial() Vertex[NodeType] { return p.start }

func (p *GraphProblem[NodeType]) Actions(state Vertex[NodeType]) []Neighbor[NodeType] {
	return p.graph.Neighbors(state.ID)
}

func (p *GraphProblem[NodeType]) Transition(state Vertex[NodeType], action Neighbor[NodeType]) (Vertex[NodeType], error) {
	for _, neighbor := range p.graph.Neighbors(state.ID) {
		if neighbor == action {
			return p.vertex(action.ID), nil
		}
	}
	return Vertex[NodeType]{}, fmt.Errorf("%w: no edge %v -> %v with cost %v", ErrIllegalAction, state.ID, action.ID, action.Cost)
}

func (p *GraphProblem[NodeType]) GoalTest(state Vertex[NodeType]) bool { return state.ID == p.goal }

func (p *GraphProblem[NodeType]) StepCost(c float64, _ Vertex[NodeType], action Neighbor[NodeType], _ Vertex[NodeType]) float64 {
	return c + action.Cost
}

// ShortestPath runs A* over graph from startNode to goalNode.
// A missing path is reported with Found == false, not an error.
func ShortestPath[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic DistanceHeuristic[NodeType],
	options ...Option,
) (PathResult[NodeType], error) {
	problem := NewGraphProblem(graph, startNode, goalNode)
	result, err := AStar(contextObject, Problem[Vertex[NodeType], Neighbor[NodeType]](problem),
		func(state Vertex[NodeType]) float64 { return heuristic(state.ID, goalNode) },
		options...)
	if err != nil {
		return PathResult[NodeType]{ExpandedNodes: result.Expanded}, err
	}
	if !result.Found() {
		return PathResult[NodeType]{ExpandedNodes: result.Expanded}, nil
	}

	path := result.Node.Path()
	nodes := make([]NodeType, 0, len(path))
	for _, node := range path {
		nodes = append(nodes, node.State().ID)
	}
	return PathResult[NodeType]{
		Path:          nodes,
		TotalCost:     result.Node.PathCost(),
		ExpandedNodes: result.Expanded,
		Found:         true,
	}, nil
}
