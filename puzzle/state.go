// Package puzzle implements the sliding-tile puzzle as a bestfirst.Problem.
//
// A State is a rows x cols grid of tile ids where 0 is the blank. The
// solved grid holds tile i at row-major index i, so the blank sits in the
// top-left corner. Actions name the direction the neighbouring tile moves
// into the blank: Up slides the tile below the blank upwards.
package puzzle

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

var (
	// ErrInvalidGrid is returned for grids that are not a rectangular
	// permutation of 0..rows*cols-1.
	ErrInvalidGrid = errors.New("invalid puzzle grid")

	// ErrUnsolvable is returned by Solve when no sequence of moves reaches the goal.
	ErrUnsolvable = errors.New("puzzle has no solution")
)

const maxTiles = 1 << 16

// Action slides a tile into the blank.
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

var actionNames = [...]string{Up: "up", Down: "down", Left: "left", Right: "right"}

func (a Action) String() string {
	if a < Up || a > Right {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction is the inverse of Action.String.
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == strings.ToLower(name) {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Position is a grid cell.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// State is a puzzle configuration. The zero value is not usable; build
// states with NewSolved, FromGrid or Shuffled. Apply and Shuffle modify the
// receiver; use Clone to keep the original.
type State struct {
	rows, cols int
	tiles      []int
	blank      Position
}

// NewSolved returns the solved rows x cols puzzle.
func NewSolved(rows, cols int) (State, error) {
	if rows < 1 || cols < 1 || rows*cols < 2 || rows*cols > maxTiles {
		return State{}, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, rows, cols)
	}
	tiles := make([]int, rows*cols)
	for i := range tiles {
		tiles[i] = i
	}
	return State{rows: rows, cols: cols, tiles: tiles}, nil
}

// FromGrid copies grid into a State after checking it is rectangular and
// holds every tile id exactly once.
func FromGrid(grid [][]int) (State, error) {
	rows := len(grid)
	if rows == 0 || len(grid[0]) == 0 {
		return State{}, fmt.Errorf("%w: empty grid", ErrInvalidGrid)
	}
	cols := len(grid[0])
	s, err := NewSolved(rows, cols)
	if err != nil {
		return State{}, err
	}
	seen := make([]bool, rows*cols)
	for r, row := range grid {
		if len(row) != cols {
			return State{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidGrid, r, len(row), cols)
		}
		for c, tile := range row {
			if tile < 0 || tile >= rows*cols || seen[tile] {
				return State{}, fmt.Errorf("%w: bad or repeated tile %d at (%d,%d)", ErrInvalidGrid, tile, r, c)
			}
			seen[tile] = true
			s.tiles[r*cols+c] = tile
			if tile == 0 {
				s.blank = Position{Row: r, Col: c}
			}
		}
	}
	return s, nil
}

// Shuffled returns a solved puzzle scrambled by a random walk of moves
// legal moves, so the result is always solvable.
func Shuffled(rows, cols, moves int, rng *rand.Rand) (State, error) {
	s, err := NewSolved(rows, cols)
	if err != nil {
		return State{}, err
	}
	s.Shuffle(rng, moves)
	return s, nil
}

// DefaultShuffleMoves is the walk length used when none is configured.
func DefaultShuffleMoves(rows, cols int) int { return rows * cols * 2 }

func (s State) Rows() int       { return s.rows }
func (s State) Cols() int       { return s.cols }
func (s State) Blank() Position { return s.blank }

// At returns the tile at (row, col).
func (s State) At(row, col int) int { return s.tiles[row*s.cols+col] }

// Grid returns a copy of the tiles as rows.
func (s State) Grid() [][]int {
	grid := make([][]int, s.rows)
	for r := range grid {
		grid[r] = append([]int(nil), s.tiles[r*s.cols:(r+1)*s.cols]...)
	}
	return grid
}

// Clone returns a State that shares no memory with s.
func (s State) Clone() State {
	s.tiles = append([]int(nil), s.tiles...)
	return s
}

// Actions lists the legal moves for the current blank position.
func (s State) Actions() []Action {
	actions := make([]Action, 0, 4)
	if s.blank.Col > 0 {
		actions = append(actions, Right)
	}
	if s.blank.Col < s.cols-1 {
		actions = append(actions, Left)
	}
	if s.blank.Row > 0 {
		actions = append(actions, Down)
	}
	if s.blank.Row < s.rows-1 {
		actions = append(actions, Up)
	}
	return actions
}

func (s State) legal(action Action) bool {
	for _, a := range s.Actions() {
		if a == action {
			return true
		}
	}
	return false
}

// Apply performs action in place. It returns false and leaves s unchanged
// when the action is not legal.
func (s *State) Apply(action Action) bool {
	if !s.legal(action) {
		return false
	}
	next := s.blank
	switch action {
	case Up:
		next.Row++
	case Down:
		next.Row--
	case Left:
		next.Col++
	case Right:
		next.Col--
	}
	from, to := next.Row*s.cols+next.Col, s.blank.Row*s.cols+s.blank.Col
	s.tiles[to] = s.tiles[from]
	s.tiles[from] = 0
	s.blank = next
	return true
}

// Shuffle applies moves random legal actions.
func (s *State) Shuffle(rng *rand.Rand, moves int) {
	for i := 0; i < moves; i++ {
		actions := s.Actions()
		s.Apply(actions[rng.Intn(len(actions))])
	}
}

// IsGoal reports whether every tile sits at its own row-major index.
func (s State) IsGoal() bool {
	for i, tile := range s.tiles {
		if tile != i {
			return false
		}
	}
	return true
}

// Heuristic sums the Manhattan distance of every tile except the blank to
// its goal cell. One move changes it by exactly one, so it is consistent.
func (s State) Heuristic() int {
	distance := 0
	for i, tile := range s.tiles {
		if tile == 0 {
			continue
		}
		row, col := i/s.cols, i%s.cols
		distance += abs(tile/s.cols-row) + abs(tile%s.cols-col)
	}
	return distance
}

// Solvable reports whether the goal is reachable, using the inversion
// parity rule. On a single row or column the blank only slides along the
// line, so the other tiles must already be in order.
func (s State) Solvable() bool {
	inversions := 0
	for i := 0; i < len(s.tiles); i++ {
		if s.tiles[i] == 0 {
			continue
		}
		for j := i + 1; j < len(s.tiles); j++ {
			if s.tiles[j] != 0 && s.tiles[i] > s.tiles[j] {
				inversions++
			}
		}
	}
	if s.rows == 1 || s.cols == 1 {
		return inversions == 0
	}
	if s.cols%2 == 1 {
		return inversions%2 == 0
	}
	// Even width: each vertical move flips parity and moves the blank one row.
	// The goal has zero inversions with the blank on row 0.
	return (inversions+s.blank.Row)%2 == 0
}

// Fingerprint encodes the dimensions and every tile as fixed-width
// big-endian uint16 values, so distinct grids never collide.
func (s State) Fingerprint() string {
	buf := make([]byte, 4+2*len(s.tiles))
	binary.BigEndian.PutUint16(buf[0:], uint16(s.rows))
	binary.BigEndian.PutUint16(buf[2:], uint16(s.cols))
	for i, tile := range s.tiles {
		binary.BigEndian.PutUint16(buf[4+2*i:], uint16(tile))
	}
	return string(buf)
}

func (s State) Equal(other State) bool {
	if s.rows != other.rows || s.cols != other.cols || s.blank != other.blank {
		return false
	}
	for i := range s.tiles {
		if s.tiles[i] != other.tiles[i] {
			return false
		}
	}
	return true
}

// Less orders states by dimensions, then tiles in row-major order, which
// is also the byte order of their fingerprints. It carries no meaning
// beyond deterministic tie-breaking.
func (s State) Less(other State) bool {
	if s.rows != other.rows {
		return s.rows < other.rows
	}
	if s.cols != other.cols {
		return s.cols < other.cols
	}
	for i := range s.tiles {
		if s.tiles[i] != other.tiles[i] {
			return s.tiles[i] < other.tiles[i]
		}
	}
	return false
}

func (s State) String() string {
	var b bytes.Buffer
	width := len(fmt.Sprint(len(s.tiles) - 1))
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			if tile := s.At(r, c); tile == 0 {
				b.WriteString(strings.Repeat(" ", width-1) + "_")
			} else {
				fmt.Fprintf(&b, "%*d", width, tile)
			}
		}
		if r < s.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
