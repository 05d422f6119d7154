// internal/sudoku/ils.go
package sudoku

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// swap is an unordered pair of non-fixed squares inside one block.
type swap struct {
	a, b Cell
}

// ILS is an Iterated Local Search solver. Every block is kept a permutation
// of 1..9 and the search only swaps non-fixed squares within a block, so the
// score counts row and column conflicts only.
type ILS struct {
	walkLength int
	threshold  int
	rng        *rand.Rand
}

// NewILS returns an ILS solver with random walk length s and stagnation
// threshold p.
func NewILS(s, p int, rng *rand.Rand) (*ILS, error) {
	if s < 0 {
		return nil, fmt.Errorf("walk length must be >= 0, got %d", s)
	}
	if p < 1 {
		return nil, fmt.Errorf("threshold must be >= 1, got %d", p)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ILS{walkLength: s, threshold: p, rng: rng}, nil
}

// Name implements Solver.
func (s *ILS) Name() string { return MethodILS }

// WalkLength returns S.
func (s *ILS) WalkLength() int { return s.walkLength }

// Threshold returns P.
func (s *ILS) Threshold() int { return s.threshold }

// Solve fills b and searches until every row and column is complete.
// The initial fill is not part of the measured time.
func (s *ILS) Solve(ctx context.Context, b *Board) (Result, error) {
	res := Result{Method: MethodILS}
	swaps := initialFill(b, s.rng)

	var movable []int
	for i, sw := range swaps {
		if len(sw) > 0 {
			movable = append(movable, i)
		}
	}

	start := time.Now()
	score := Evaluate(b)
	if score > 0 && len(movable) == 0 {
		return res, fmt.Errorf("%w: no swappable block", ErrUnsolvable)
	}

	counter := 0
	for step := 0; score > 0; step++ {
		if err := checkCtx(ctx, step); err != nil {
			res.Elapsed = time.Since(start)
			return res, err
		}
		res.Iterations++

		if counter == s.threshold {
			counter = 0
			s.randomWalk(b, swaps, movable)
			score = Evaluate(b)
			res.Iterations += s.walkLength
			res.Walks++
		}

		current := score
		var best *swap
		block := swaps[s.rng.Intn(Size)]
		for i := range block {
			apply(b, block[i])
			if next := Evaluate(b); next <= score {
				score = next
				best = &block[i]
			}
			apply(b, block[i])
		}
		if best != nil {
			apply(b, *best)
		}

		if current == score {
			counter++
		} else {
			counter = 0
		}
	}

	res.Elapsed = time.Since(start)
	if !b.Solved() {
		return res, errors.New("ils: search ended on an invalid board")
	}
	return res, nil
}

// randomWalk performs walkLength random swaps, each in a random block that
// has at least one swap.
func (s *ILS) randomWalk(b *Board, swaps [Size][]swap, movable []int) {
	for i := 0; i < s.walkLength; i++ {
		block := swaps[movable[s.rng.Intn(len(movable))]]
		apply(b, block[s.rng.Intn(len(block))])
	}
}

// initialFill completes every block with its missing values in random order
// and returns the candidate swaps of each block.
func initialFill(b *Board, rng *rand.Rand) [Size][]swap {
	var swaps [Size][]swap
	for i := 0; i < Size; i++ {
		present := [Size + 1]bool{}
		var free []Cell
		for _, c := range BlockCells(i) {
			if b.fixed[c.Row][c.Col] {
				present[b.values[c.Row][c.Col]] = true
			} else {
				free = append(free, c)
			}
		}

		missing := make([]int, 0, len(free))
		for v := 1; v <= Size; v++ {
			if !present[v] {
				missing = append(missing, v)
			}
		}
		rng.Shuffle(len(missing), func(x, y int) { missing[x], missing[y] = missing[y], missing[x] })

		for k, c := range free {
			b.values[c.Row][c.Col] = missing[k]
		}
		for x := 0; x < len(free); x++ {
			for y := x + 1; y < len(free); y++ {
				swaps[i] = append(swaps[i], swap{free[x], free[y]})
			}
		}
	}
	return swaps
}

// Evaluate returns the number of values missing from each row plus the
// number missing from each column. A solved board scores 0. Empty squares
// count as missing values.
func Evaluate(b *Board) int {
	score := 0
	for i := 0; i < Size; i++ {
		var row, col [Size + 1]bool
		for j := 0; j < Size; j++ {
			row[b.values[i][j]] = true
			col[b.values[j][i]] = true
		}
		for v := 1; v <= Size; v++ {
			if !row[v] {
				score++
			}
			if !col[v] {
				score++
			}
		}
	}
	return score
}

func apply(b *Board, s swap) {
	va := b.values[s.a.Row][s.a.Col]
	b.values[s.a.Row][s.a.Col] = b.values[s.b.Row][s.b.Col]
	b.values[s.b.Row][s.b.Col] = va
}
