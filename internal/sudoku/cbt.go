// internal/sudoku/cbt.go
package sudoku

import (
	"context"
	"fmt"
	"time"
)

// domain is a bitset of candidate values; bit v set means v is allowed.
type domain uint16

const fullDomain domain = 0x3fe // bits 1..9

func (d domain) has(v int) bool { return d&(1<<v) != 0 }

// next returns the smallest candidate greater than after, or 0.
func (d domain) next(after int) int {
	for v := after + 1; v <= Size; v++ {
		if d.has(v) {
			return v
		}
	}
	return 0
}

// CBT is a chronological backtracking solver with forward checking. Empty
// squares are visited in row-major order and values are tried ascending.
type CBT struct{}

// NewCBT returns a CBT solver.
func NewCBT() *CBT { return &CBT{} }

// Name implements Solver.
func (s *CBT) Name() string { return MethodCBT }

// Solve clears every non-given square of b and solves it in place.
func (s *CBT) Solve(ctx context.Context, b *Board) (Result, error) {
	res := Result{Method: MethodCBT}
	start := time.Now()
	b.Reset()

	var domains [Size][Size]domain
	var order []Cell
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if !b.fixed[r][c] {
				domains[r][c] = fullDomain
				order = append(order, Cell{r, c})
			}
		}
	}

	// Node consistency: givens remove their value from every empty peer.
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if !b.fixed[r][c] {
				continue
			}
			v := b.values[r][c]
			for _, p := range peers[r][c] {
				if b.fixed[p.Row][p.Col] {
					continue
				}
				domains[p.Row][p.Col] &^= 1 << v
				if domains[p.Row][p.Col] == 0 {
					res.Elapsed = time.Since(start)
					return res, fmt.Errorf("%w: no candidates for row %d column %d", ErrUnsolvable, p.Row+1, p.Col+1)
				}
			}
		}
	}

	// pruned[k] lists the peers whose domain lost the value assigned at order[k].
	pruned := make([][]Cell, len(order))
	restore := func(k, v int) {
		for _, p := range pruned[k] {
			domains[p.Row][p.Col] |= 1 << v
		}
		pruned[k] = pruned[k][:0]
	}

	k := 0
	for step := 0; k < len(order); step++ {
		if err := checkCtx(ctx, step); err != nil {
			res.Elapsed = time.Since(start)
			return res, err
		}

		cell := order[k]
		cur := b.values[cell.Row][cell.Col]
		if cur != 0 {
			restore(k, cur)
		}

		v := domains[cell.Row][cell.Col].next(cur)
		if v == 0 {
			b.values[cell.Row][cell.Col] = 0
			k--
			if k < 0 {
				res.Elapsed = time.Since(start)
				return res, ErrUnsolvable
			}
			continue
		}

		b.values[cell.Row][cell.Col] = v
		res.Iterations++

		wipeout := false
		for _, p := range peers[cell.Row][cell.Col] {
			if b.values[p.Row][p.Col] != 0 || !domains[p.Row][p.Col].has(v) {
				continue
			}
			domains[p.Row][p.Col] &^= 1 << v
			pruned[k] = append(pruned[k], p)
			if domains[p.Row][p.Col] == 0 {
				wipeout = true
			}
		}
		if !wipeout {
			k++
		}
	}

	res.Elapsed = time.Since(start)
	return res, nil
}
