package sudoku

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// Size is the side length of a board.
	Size = 9
	// BoxSize is the side length of a 3x3 box.
	BoxSize = 3
	// CellCount is the total number of cells on a board.
	CellCount = Size * Size
	// Empty marks a cell with no digit.
	Empty = uint8(0)
)

// Grid is a 9x9 board in row-major order, 0 for empty, 1-9 for digits.
// It is a value type: assignment copies the whole board, so callers can
// snapshot a grid with plain assignment and never alias working state.
type Grid [CellCount]uint8

func cellIndex(row, col int) int {
	return row*Size + col
}

// At returns the digit at (row, col).
func (g *Grid) At(row, col int) uint8 {
	return g[cellIndex(row, col)]
}

// Set writes a digit (or Empty) at (row, col) without validation.
func (g *Grid) Set(row, col int, v uint8) {
	g[cellIndex(row, col)] = v
}

// FilledCount returns the number of non-empty cells.
func (g *Grid) FilledCount() (n int) {
	for _, v := range g {
		if v != Empty {
			n++
		}
	}
	return
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	return CellCount - g.FilledCount()
}

// firstEmpty returns the index of the first empty cell in row-major
// order, or -1 when the grid is full.
func (g *Grid) firstEmpty() int {
	for i, v := range g {
		if v == Empty {
			return i
		}
	}
	return -1
}

// Allows reports whether digit may be placed at (row, col): it must not
// already appear in the cell's row, column or 3x3 box. The cell itself
// is assumed empty; its current value is not inspected.
func (g *Grid) Allows(row, col int, digit uint8) bool {
	for i := range Size {
		if g[cellIndex(row, i)] == digit || g[cellIndex(i, col)] == digit {
			return false
		}
	}
	boxRow, boxCol := row/BoxSize*BoxSize, col/BoxSize*BoxSize
	for r := boxRow; r < boxRow+BoxSize; r++ {
		for c := boxCol; c < boxCol+BoxSize; c++ {
			if g[cellIndex(r, c)] == digit {
				return false
			}
		}
	}
	return true
}

// Complete reports whether every cell is filled and every row, column
// and box contains each digit exactly once.
func (g *Grid) Complete() bool {
	var rows, cols, boxes [Size]uint16
	for i, v := range g {
		if v == Empty {
			return false
		}
		row, col := i/Size, i%Size
		box := row/BoxSize*BoxSize + col/BoxSize
		bit := uint16(1) << v
		if rows[row]&bit != 0 || cols[col]&bit != 0 || boxes[box]&bit != 0 {
			return false
		}
		rows[row] |= bit
		cols[col] |= bit
		boxes[box] |= bit
	}
	return true
}

// Rows returns the grid as 9 rows of 9 ints, the shape clients consume.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, Size)
	for r := range Size {
		rows[r] = make([]int, Size)
		for c := range Size {
			rows[r][c] = int(g.At(r, c))
		}
	}
	return rows
}

// MarshalJSON encodes the grid as an array of 9 rows.
func (g Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Rows())
}

// UnmarshalJSON accepts the row-of-rows shape produced by MarshalJSON.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows [][]int
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != Size {
		return fmt.Errorf("grid must have %d rows, got %d", Size, len(rows))
	}
	for r, row := range rows {
		if len(row) != Size {
			return fmt.Errorf("grid row %d must have %d cells, got %d", r, Size, len(row))
		}
		for c, v := range row {
			if v < 0 || v > 9 {
				return fmt.Errorf("grid cell (%d,%d) out of range: %d", r, c, v)
			}
			g.Set(r, c, uint8(v))
		}
	}
	return nil
}

func (g *Grid) String() string {
	var b strings.Builder
	for r := range Size {
		for c := range Size {
			if v := g.At(r, c); v == Empty {
				fmt.Fprint(&b, ". ")
			} else {
				fmt.Fprintf(&b, "%d ", v)
			}
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
