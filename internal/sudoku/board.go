// internal/sudoku/board.go
package sudoku

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Size is the width and height of a board; BlockSize is the width of a block.
const (
	Size      = 9
	BlockSize = 3
	cells     = Size * Size
)

var (
	// ErrInvalidPuzzle is returned when a puzzle string cannot be parsed or
	// its givens already conflict.
	ErrInvalidPuzzle = errors.New("invalid puzzle")
	// ErrUnsolvable is returned by a solver that proved no solution exists.
	ErrUnsolvable = errors.New("puzzle has no solution")
)

// Cell addresses a square on the board by row and column.
type Cell struct {
	Row int
	Col int
}

// Block returns the index (0..8, row-major) of the block containing c.
func (c Cell) Block() int {
	return (c.Row/BlockSize)*BlockSize + c.Col/BlockSize
}

// Board is a 9x9 Sudoku grid. A zero value means the square is empty.
// Givens are tracked separately so solvers never move them.
type Board struct {
	values [Size][Size]int
	fixed  [Size][Size]bool
}

// Parse reads a puzzle in one of two single-line formats:
//
//   - 81 semicolon-separated integers, row-major, 0 for empty;
//   - 81 characters, digits 1-9 for givens and '.' or '0' for empty.
func Parse(input string) (*Board, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidPuzzle)
	}

	var vals []int
	if strings.Contains(input, ";") {
		parts := strings.Split(strings.TrimSuffix(input, ";"), ";")
		if len(parts) != cells {
			return nil, fmt.Errorf("%w: expected %d values, got %d", ErrInvalidPuzzle, cells, len(parts))
		}
		vals = make([]int, cells)
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v < 0 || v > Size {
				return nil, fmt.Errorf("%w: bad value %q at position %d", ErrInvalidPuzzle, p, i)
			}
			vals[i] = v
		}
	} else {
		if len(input) != cells {
			return nil, fmt.Errorf("%w: expected %d characters, got %d", ErrInvalidPuzzle, cells, len(input))
		}
		vals = make([]int, cells)
		for i := 0; i < cells; i++ {
			ch := input[i]
			switch {
			case ch == '.' || ch == '0':
				vals[i] = 0
			case ch >= '1' && ch <= '9':
				vals[i] = int(ch - '0')
			default:
				return nil, fmt.Errorf("%w: bad character %q at position %d", ErrInvalidPuzzle, ch, i)
			}
		}
	}

	b := &Board{}
	for i, v := range vals {
		r, c := i/Size, i%Size
		b.values[r][c] = v
		b.fixed[r][c] = v > 0
	}
	if c, ok := b.firstConflict(); ok {
		return nil, fmt.Errorf("%w: conflicting given at row %d column %d", ErrInvalidPuzzle, c.Row+1, c.Col+1)
	}
	return b, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// built-in fixtures.
func MustParse(input string) *Board {
	b, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return b
}

// Value returns the value at r, c (0 when empty).
func (b *Board) Value(r, c int) int { return b.values[r][c] }

// Fixed reports whether the square at r, c is a given.
func (b *Board) Fixed(r, c int) bool { return b.fixed[r][c] }

// Set writes v to the square at r, c. Givens are left untouched.
func (b *Board) Set(r, c, v int) {
	if b.fixed[r][c] {
		return
	}
	b.values[r][c] = v
}

// Givens returns the number of fixed squares.
func (b *Board) Givens() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.fixed[r][c] {
				n++
			}
		}
	}
	return n
}

// Clone returns an independent copy of b.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// Reset clears every non-given square.
func (b *Board) Reset() {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if !b.fixed[r][c] {
				b.values[r][c] = 0
			}
		}
	}
}

// Solved reports whether every row, column and block holds 1..9 exactly once.
func (b *Board) Solved() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.values[r][c] == 0 {
				return false
			}
		}
	}
	_, conflict := b.firstConflict()
	return !conflict
}

// firstConflict finds the first non-empty square that shares its value with
// a peer.
func (b *Board) firstConflict() (Cell, bool) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			v := b.values[r][c]
			if v == 0 {
				continue
			}
			for _, p := range peers[r][c] {
				if b.values[p.Row][p.Col] == v {
					return Cell{r, c}, true
				}
			}
		}
	}
	return Cell{}, false
}

// Line returns the board as an 81-character string with '.' for empty squares.
func (b *Board) Line() string {
	var sb strings.Builder
	sb.Grow(cells)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if v := b.values[r][c]; v == 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('0' + v))
			}
		}
	}
	return sb.String()
}

// String renders the board with block separators, one row per line.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		if r == 3 || r == 6 {
			sb.WriteString("---------------------\n")
		}
		for c := 0; c < Size; c++ {
			if c == 3 || c == 6 {
				sb.WriteString("| ")
			}
			sb.WriteString(strconv.Itoa(b.values[r][c]))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	return sb.String()
}

// BlockCells lists the squares of block i in row-major order.
func BlockCells(i int) []Cell {
	r0, c0 := (i/BlockSize)*BlockSize, (i%BlockSize)*BlockSize
	out := make([]Cell, 0, Size)
	for r := r0; r < r0+BlockSize; r++ {
		for c := c0; c < c0+BlockSize; c++ {
			out = append(out, Cell{r, c})
		}
	}
	return out
}

// peers[r][c] holds the 20 squares sharing a row, column or block with r, c.
var peers = func() (p [Size][Size][]Cell) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			seen := map[Cell]bool{{r, c}: true}
			add := func(x Cell) {
				if !seen[x] {
					seen[x] = true
					p[r][c] = append(p[r][c], x)
				}
			}
			for i := 0; i < Size; i++ {
				add(Cell{r, i})
				add(Cell{i, c})
			}
			for _, x := range BlockCells(Cell{r, c}.Block()) {
				add(x)
			}
		}
	}
	return p
}()
