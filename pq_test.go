package bestfirst

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type job struct {
	name     string
	priority float64
}

func (j job) Equal(other job) bool { return j.name == other.name }
func (j job) Less(other job) bool  { return j.name < other.name }

func byPriority(j job) float64 { return j.priority }

func newJobQueue(t *testing.T, order Order) *PriorityQueue[job] {
	t.Helper()
	q, err := NewPriorityQueue(order, byPriority)
	require.NoError(t, err)
	return q
}

func TestPriorityQueue_MinOrder(t *testing.T) {
	q := newJobQueue(t, MinOrder)
	q.Extend(job{"c", 3}, job{"a", 1}, job{"d", 4}, job{"b", 2})
	require.Equal(t, 4, q.Len())

	var got []string
	for q.Len() > 0 {
		j, err := q.PopBest()
		require.NoError(t, err)
		got = append(got, j.name)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestPriorityQueue_MaxOrder(t *testing.T) {
	q := newJobQueue(t, MaxOrder)
	q.Extend(job{"c", 3}, job{"a", 1}, job{"d", 4}, job{"b", 2})

	j, err := q.PopBest()
	require.NoError(t, err)
	assert.Equal(t, "d", j.name)

	score, err := q.ScoreOf(job{name: "c"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, score, "ScoreOf reports the scoring function's value, not the negated key")
}

func TestPriorityQueue_TiesUseLessThenInsertionOrder(t *testing.T) {
	q := newJobQueue(t, MinOrder)
	q.Insert(job{"b", 1})
	q.Insert(job{"a", 1})
	q.Insert(job{"x", 0})

	first, _ := q.PopBest()
	second, _ := q.PopBest()
	third, _ := q.PopBest()
	assert.Equal(t, []string{"x", "a", "b"}, []string{first.name, second.name, third.name})

	// Same key and same score: insertion order decides.
	q.Insert(job{"k", 5})
	q.Insert(job{"k", 5})
	require.Equal(t, 2, q.Len())
	_, err := q.PopBest()
	require.NoError(t, err)
	_, err = q.PopBest()
	require.NoError(t, err)
}

func TestPriorityQueue_PopEmpty(t *testing.T) {
	q := newJobQueue(t, MinOrder)
	_, err := q.PopBest()
	assert.ErrorIs(t, err, ErrEmptyQueue)
	_, err = q.Peek()
	assert.ErrorIs(t, err, ErrEmptyQueue)
}

func TestPriorityQueue_InvalidOrder(t *testing.T) {
	_, err := NewPriorityQueue(Order(7), byPriority)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = NewPriorityQueue[job](MinOrder, nil)
	assert.Error(t, err)
}

func TestPriorityQueue_KeyOperations(t *testing.T) {
	q := newJobQueue(t, MinOrder)
	q.Extend(job{"a", 1}, job{"b", 2}, job{"c", 3})

	assert.True(t, q.Contains(job{name: "b"}), "lookup is by Equal, not by score")
	score, err := q.ScoreOf(job{name: "b", priority: 99})
	require.NoError(t, err)
	assert.Equal(t, 2.0, score)

	require.NoError(t, q.Remove(job{name: "a"}))
	assert.False(t, q.Contains(job{name: "a"}))
	assert.Equal(t, 2, q.Len())

	best, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, "b", best.name, "heap order must survive removal of the root")

	_, err = q.ScoreOf(job{name: "zz"})
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.ErrorIs(t, q.Remove(job{name: "zz"}), ErrKeyNotFound)
}

func TestPriorityQueue_RandomOperationsPopGlobalMinimum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	q := newJobQueue(t, MinOrder)
	shadow := map[string]float64{}

	for i := 0; i < 2000; i++ {
		switch op := rng.Intn(10); {
		case op < 6:
			j := job{name: fmt.Sprintf("j%d", i), priority: float64(rng.Intn(50))}
			q.Insert(j)
			shadow[j.name] = j.priority
		case op < 8 && len(shadow) > 0:
			got, err := q.PopBest()
			require.NoError(t, err)
			assert.Equal(t, minValue(shadow), got.priority)
			delete(shadow, got.name)
		case len(shadow) > 0:
			victim := anyKey(shadow, rng)
			require.NoError(t, q.Remove(job{name: victim}))
			assert.False(t, q.Contains(job{name: victim}))
			delete(shadow, victim)
		}
		require.Equal(t, len(shadow), q.Len())
	}
}

func minValue(m map[string]float64) float64 {
	first := true
	var best float64
	for _, v := range m {
		if first || v < best {
			best, first = v, false
		}
	}
	return best
}

func anyKey(m map[string]float64, rng *rand.Rand) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[rng.Intn(len(keys))]
}
