// Package gf2 implements the bit-packed GF(2) linear-algebra solver CFRAC
// uses to find exponent-parity dependencies among smooth relations: a
// Gauss-Jordan column sweep over rows of exponent-parity bits, carrying a
// parallel history matrix so a zeroed-out row can be traced back to the
// original relations that XOR-combine to it.
package gf2

import (
	"math/big"
	"sync"
)

// Row is one exponent-parity vector (Bits, indexed by factor-base column)
// together with the set of original relation indices (History) whose XOR
// produces it. A row with Bits entirely zero is a dependency: History names
// a subset of relations whose combined exponents are all even.
type Row struct {
	Bits    big.Int
	History big.Int
}

// Matrix is the row set under elimination. NumCols is the factor-base size;
// rows are indexed 0..len(Rows)-1, matching the original relation order
// they were built from (History bit i refers to Rows[i] as it stood before
// any elimination).
type Matrix struct {
	Rows    []*Row
	NumCols int
}

// New builds a Matrix from exponent-parity vectors, one per relation, in
// the stabilized order the caller collected them (§5: "elimination reads
// them from a stabilized ordered list" regardless of how sieving completed
// them).
func New(vectors []*big.Int, numCols int) *Matrix {
	m := &Matrix{NumCols: numCols, Rows: make([]*Row, len(vectors))}
	for i, v := range vectors {
		r := &Row{}
		r.Bits.Set(v)
		r.History.SetBit(&r.History, i, 1)
		m.Rows[i] = r
	}
	return m
}

// Eliminate performs sequential Gauss-Jordan elimination: for each column,
// pick any row at or below the current pivot row with a 1 in that column,
// swap it to the pivot position, and XOR-eliminate the column from every
// other row that has a 1 there, keeping History in lockstep.
func (m *Matrix) Eliminate() {
	m.eliminate(func(col int, pivotRow int, pivot *Row) {
		for i, row := range m.Rows {
			if i == pivotRow {
				continue
			}
			if row.Bits.Bit(col) == 1 {
				row.Bits.Xor(&row.Bits, &pivot.Bits)
				row.History.Xor(&row.History, &pivot.History)
			}
		}
	})
}

// EliminateParallel is Eliminate with the per-column row sweep split across
// workers goroutines, each owning a disjoint contiguous range of rows. The
// pivot row is only read, never written, by any worker (§5, §9): no locks
// are required.
func (m *Matrix) EliminateParallel(workers int) {
	if workers < 1 {
		workers = 1
	}
	m.eliminate(func(col int, pivotRow int, pivot *Row) {
		n := len(m.Rows)
		chunk := (n + workers - 1) / workers
		var wg sync.WaitGroup
		for start := 0; start < n; start += chunk {
			end := start + chunk
			if end > n {
				end = n
			}
			wg.Add(1)
			go func(start, end int) {
				defer wg.Done()
				for i := start; i < end; i++ {
					if i == pivotRow {
						continue
					}
					row := m.Rows[i]
					if row.Bits.Bit(col) == 1 {
						row.Bits.Xor(&row.Bits, &pivot.Bits)
						row.History.Xor(&row.History, &pivot.History)
					}
				}
			}(start, end)
		}
		wg.Wait()
	})
}

func (m *Matrix) eliminate(sweep func(col, pivotRow int, pivot *Row)) {
	pivotRow := 0
	for col := 0; col < m.NumCols && pivotRow < len(m.Rows); col++ {
		sel := -1
		for i := pivotRow; i < len(m.Rows); i++ {
			if m.Rows[i].Bits.Bit(col) == 1 {
				sel = i
				break
			}
		}
		if sel == -1 {
			continue
		}
		m.Rows[pivotRow], m.Rows[sel] = m.Rows[sel], m.Rows[pivotRow]
		sweep(col, pivotRow, m.Rows[pivotRow])
		pivotRow++
	}
}

// Dependencies returns, for every row that elimination reduced to the zero
// vector, the sorted list of original relation indices its History names.
func (m *Matrix) Dependencies() [][]int {
	var deps [][]int
	for _, r := range m.Rows {
		if r.Bits.Sign() == 0 {
			deps = append(deps, bitsSet(&r.History))
		}
	}
	return deps
}

func bitsSet(b *big.Int) []int {
	var out []int
	for i := 0; i < b.BitLen(); i++ {
		if b.Bit(i) == 1 {
			out = append(out, i)
		}
	}
	return out
}
