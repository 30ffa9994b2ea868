package sudoku

import (
	"fmt"
	"math/rand/v2"
)

// Difficulty selects how many cells a generated puzzle has removed.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
	Master Difficulty = "master"
)

// removals maps each difficulty to its target count of cleared cells
// (of 81). High targets may fall short when no further cell can be
// cleared without losing uniqueness; that is accepted.
var removals = map[Difficulty]int{
	Easy:   38,
	Medium: 46,
	Hard:   53,
	Expert: 59,
	Master: 64,
}

// Difficulties lists all recognized difficulties, easiest first.
var Difficulties = []Difficulty{Easy, Medium, Hard, Expert, Master}

// ParseDifficulty validates a difficulty received at a boundary.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if _, ok := removals[d]; !ok {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

// TargetRemovals returns the removal target for d, or 0 for an
// unrecognized difficulty.
func (d Difficulty) TargetRemovals() int {
	return removals[d]
}

// Generate builds a puzzle with exactly one solution.
//
// It fills an empty grid into a random complete solution, then walks
// all 81 coordinates in a random order, clearing each cell whose
// removal keeps the solution unique, until the difficulty's removal
// target is met or every coordinate has been tried once. Each
// coordinate is tried at most once, so generation performs at most 81
// uniqueness checks.
//
// Every filled cell of the returned puzzle equals the corresponding
// cell of the returned solution.
func Generate(d Difficulty, rnd *rand.Rand) (puzzle, solution Grid, err error) {
	target, ok := removals[d]
	if !ok {
		return Grid{}, Grid{}, fmt.Errorf("unknown difficulty %q", d)
	}

	var work Grid
	if !work.Fill(rnd) {
		// An empty grid always has completions; reaching this
		// line means the consistency checker is broken.
		return Grid{}, Grid{}, AssertionError{"unable to fill an empty grid"}
	}
	solution = work

	coords := make([]int, CellCount)
	for i := range coords {
		coords[i] = i
	}
	rnd.Shuffle(len(coords), func(a, b int) {
		coords[a], coords[b] = coords[b], coords[a]
	})

	removed := 0
	for _, i := range coords {
		if removed >= target {
			break
		}
		kept := work[i]
		work[i] = Empty
		if work.CountSolutions(2) == 1 {
			removed++
		} else {
			work[i] = kept
		}
	}

	return work, solution, nil
}
