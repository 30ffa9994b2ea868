package sudoku

import "math/rand/v2"

// nodeBudget bounds the number of cell expansions a single
// CountSolutions call may perform. Wide-branching grids (many empty
// cells arranged adversarially) can churn for a long time before the
// solution-count cutoff triggers; past this budget the count is
// reported pessimistically so a caller deciding uniqueness treats the
// grid as ambiguous rather than waiting it out.
const nodeBudget = 1 << 22

// Fill completes the grid in place with a valid assignment, trying
// digits at each cell in a fresh random order. Pre-filled cells are
// trusted to be mutually consistent and are left untouched. Returns
// false when no completion exists, in which case every cell placed
// during the attempt has been cleared again.
func (g *Grid) Fill(rnd *rand.Rand) bool {
	i := g.firstEmpty()
	if i < 0 {
		return true
	}
	row, col := i/Size, i%Size

	digits := [Size]uint8{1, 2, 3, 4, 5, 6, 7, 8, 9}
	rnd.Shuffle(Size, func(a, b int) {
		digits[a], digits[b] = digits[b], digits[a]
	})

	for _, d := range digits {
		if g.Allows(row, col, d) {
			g[i] = d
			if g.Fill(rnd) {
				return true
			}
			g[i] = Empty
		}
	}
	return false
}

// CountSolutions counts completions of the grid, stopping as soon as
// the count reaches cutoff. The receiver is never mutated; the search
// runs on a private copy. A generator only ever needs cutoff 2 ("is it
// unique or not"), which is what keeps this affordable.
//
// If the internal node budget is exhausted before the search finishes,
// the count found so far is clamped up to cutoff: an unverifiable grid
// must never pass for a unique one.
func (g *Grid) CountSolutions(cutoff int) int {
	work := *g
	nodes := 0
	count := countSolutions(&work, cutoff, &nodes)
	if nodes >= nodeBudget && count < cutoff {
		return cutoff
	}
	return count
}

func countSolutions(g *Grid, cutoff int, nodes *int) int {
	i := g.firstEmpty()
	if i < 0 {
		return 1
	}
	row, col := i/Size, i%Size

	count := 0
	for d := uint8(1); d <= Size; d++ {
		(*nodes)++
		if *nodes >= nodeBudget {
			break
		}
		if g.Allows(row, col, d) {
			g[i] = d
			count += countSolutions(g, cutoff-count, nodes)
			g[i] = Empty
			if count >= cutoff {
				break
			}
		}
	}
	return count
}
