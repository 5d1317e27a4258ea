package bestfirst

import (
	"container/heap"
	"fmt"
)

// Order selects whether PopBest returns the lowest or the highest score.
type Order int

const (
	MinOrder Order = iota
	MaxOrder
)

func (o Order) String() string {
	switch o {
	case MinOrder:
		return "min"
	case MaxOrder:
		return "max"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// Item is what a PriorityQueue can hold.
// Equal is the logical key used by Contains, ScoreOf and Remove.
// Less only breaks ties between equal scores.
type Item[T any] interface {
	Equal(other T) bool
	Less(other T) bool
}

// PriorityQueueItem is one heap entry.
type PriorityQueueItem[T Item[T]] struct {
	Value        T
	Score        float64 // as returned by the scoring function
	key          float64 // Score, negated for MaxOrder
	sequence     uint64
	IndexInQueue int
}

type itemHeap[T Item[T]] []*PriorityQueueItem[T]

func (queue itemHeap[T]) Len() int { return len(queue) }
func (queue itemHeap[T]) Less(i, j int) bool {
	a, b := queue[i], queue[j]
	if a.key != b.key {
		return a.key < b.key
	}
	if a.Value.Less(b.Value) {
		return true
	}
	if b.Value.Less(a.Value) {
		return false
	}
	return a.sequence < b.sequence
}
func (queue itemHeap[T]) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *itemHeap[T]) Push(x any) {
	item := x.(*PriorityQueueItem[T])
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *itemHeap[T]) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	*queue = oldQueue[:n-1]
	item.IndexInQueue = -1
	return item
}

// PriorityQueue is a binary heap of items ordered by an external scoring
// function. Key lookups scan the entries linearly; the structure is tuned
// for Insert and PopBest.
//
// Not safe for concurrent use.
type PriorityQueue[T Item[T]] struct {
	items    itemHeap[T]
	order    Order
	score    func(T) float64
	sequence uint64
}

// NewPriorityQueue creates an empty queue. score is evaluated once per Insert.
func NewPriorityQueue[T Item[T]](order Order, score func(T) float64) (*PriorityQueue[T], error) {
	if order != MinOrder && order != MaxOrder {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrder, order)
	}
	if score == nil {
		return nil, fmt.Errorf("priority queue: nil scoring function")
	}
	queue := &PriorityQueue[T]{
		items: make(itemHeap[T], 0),
		order: order,
		score: score,
	}
	heap.Init(&queue.items)
	return queue, nil
}

// Insert adds item in O(log n).
func (q *PriorityQueue[T]) Insert(item T) {
	score := q.score(item)
	key := score
	if q.order == MaxOrder {
		key = -score
	}
	q.sequence++
	heap.Push(&q.items, &PriorityQueueItem[T]{
		Value:    item,
		Score:    score,
		key:      key,
		sequence: q.sequence,
	})
}

// Extend inserts every item in order.
func (q *PriorityQueue[T]) Extend(items ...T) {
	for _, item := range items {
		q.Insert(item)
	}
}

// PopBest removes and returns the best-scored item.
func (q *PriorityQueue[T]) PopBest() (T, error) {
	if q.items.Len() == 0 {
		var zero T
		return zero, ErrEmptyQueue
	}
	return heap.Pop(&q.items).(*PriorityQueueItem[T]).Value, nil
}

// Peek returns the best-scored item without removing it.
func (q *PriorityQueue[T]) Peek() (T, error) {
	if q.items.Len() == 0 {
		var zero T
		return zero, ErrEmptyQueue
	}
	return q.items[0].Value, nil
}

// Len returns the number of entries.
func (q *PriorityQueue[T]) Len() int { return q.items.Len() }

// Contains reports whether some entry equals key.
func (q *PriorityQueue[T]) Contains(key T) bool {
	return q.indexOf(key) >= 0
}

// ScoreOf returns the score of the first entry equal to key.
func (q *PriorityQueue[T]) ScoreOf(key T) (float64, error) {
	i := q.indexOf(key)
	if i < 0 {
		return 0, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return q.items[i].Score, nil
}

// Remove deletes the first entry equal to key.
func (q *PriorityQueue[T]) Remove(key T) error {
	i := q.indexOf(key)
	if i < 0 {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	heap.Remove(&q.items, i)
	return nil
}

func (q *PriorityQueue[T]) indexOf(key T) int {
	for i, item := range q.items {
		if item.Value.Equal(key) {
			return i
		}
	}
	return -1
}
