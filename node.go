package bestfirst

import (
	"fmt"

	"github.com/pdrpinto/bestfirst/internal"
)

// Node is a vertex of the search tree. Several children may share one
// parent; nodes are never modified after construction.
type Node[S State[S], A any] struct {
	state     S
	parent    *Node[S, A]
	action    A
	hasAction bool
	pathCost  float64
	depth     int
}

// NewNode returns a root node for state.
func NewNode[S State[S], A any](state S) *Node[S, A] {
	return &Node[S, A]{state: state}
}

func (n *Node[S, A]) State() S { return n.state }

// Parent returns nil for the root.
func (n *Node[S, A]) Parent() *Node[S, A] { return n.parent }

// Action returns the action that produced this node. The root has none.
func (n *Node[S, A]) Action() (A, bool) { return n.action, n.hasAction }

func (n *Node[S, A]) PathCost() float64 { return n.pathCost }

func (n *Node[S, A]) Depth() int { return n.depth }

// ChildNode applies action to this node's state.
func (n *Node[S, A]) ChildNode(problem Problem[S, A], action A) (*Node[S, A], error) {
	next, err := problem.Transition(n.state, action)
	if err != nil {
		return nil, err
	}
	return &Node[S, A]{
		state:     next,
		parent:    n,
		action:    action,
		hasAction: true,
		pathCost:  problem.StepCost(n.pathCost, n.state, action, next),
		depth:     n.depth + 1,
	}, nil
}

// Expand returns one child per legal action, in the order the problem lists them.
func (n *Node[S, A]) Expand(problem Problem[S, A]) ([]*Node[S, A], error) {
	actions := problem.Actions(n.state)
	children := make([]*Node[S, A], 0, len(actions))
	for _, action := range actions {
		child, err := n.ChildNode(problem, action)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// Path returns the nodes from the root to n.
func (n *Node[S, A]) Path() []*Node[S, A] {
	path := internal.Walk(n, func(node *Node[S, A]) (*Node[S, A], bool) {
		return node.parent, node.parent != nil
	})
	return internal.Reverse(path)
}

// Solution returns the actions leading from the root to n.
func (n *Node[S, A]) Solution() []A {
	path := n.Path()
	actions := make([]A, 0, len(path)-1)
	for _, node := range path[1:] {
		actions = append(actions, node.action)
	}
	return actions
}

// Equal compares states, not paths.
func (n *Node[S, A]) Equal(other *Node[S, A]) bool {
	return n.state.Equal(other.state)
}

func (n *Node[S, A]) Less(other *Node[S, A]) bool {
	return n.state.Less(other.state)
}

func (n *Node[S, A]) Fingerprint() string { return n.state.Fingerprint() }

func (n *Node[S, A]) String() string {
	return fmt.Sprintf("<Node %v>", n.state)
}
