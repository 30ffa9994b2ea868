package sudoku

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"
)

// GameState is one playable session: the puzzle as dealt, its unique
// solution, and the player's progress over it. Puzzle and Solution are
// fixed at creation; only Board, Mistakes and the outcome flags change.
type GameState struct {
	Difficulty Difficulty
	Puzzle     Grid // givens; non-empty cells are immutable
	Solution   Grid
	Board      Grid // player view, starts equal to Puzzle
	Mistakes   int
	Won        bool
	Forfeited  bool
}

// NewGame generates a fresh puzzle at the requested difficulty.
func NewGame(d Difficulty, rnd *rand.Rand) (*GameState, error) {
	puzzle, solution, err := Generate(d, rnd)
	if err != nil {
		return nil, err
	}
	return &GameState{
		Difficulty: d,
		Puzzle:     puzzle,
		Solution:   solution,
		Board:      puzzle,
	}, nil
}

// DecodeGameState restores a session from its gob encoding.
func DecodeGameState(buf []byte) (*GameState, error) {
	var game GameState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// Bytes gob-encodes the session for persistence.
func (s *GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ValidatePosition reports whether (row, col) is on the board.
func (s *GameState) ValidatePosition(row, col int) bool {
	return 0 <= row && row < Size && 0 <= col && col < Size
}

// IsGiven reports whether (row, col) was dealt as part of the puzzle.
func (s *GameState) IsGiven(row, col int) bool {
	return s.Puzzle.At(row, col) != Empty
}

// Over reports whether the session has finished one way or the other.
func (s *GameState) Over() bool {
	return s.Won || s.Forfeited
}

// SetCell writes the player's digit at (row, col). Givens cannot be
// overwritten. A digit that disagrees with the solution is still
// placed (the player sees their own mistake) but counted against them.
// Filling the last cell correctly wins the game.
func (s *GameState) SetCell(row, col int, digit uint8) error {
	if s.Over() {
		return fmt.Errorf("game is over")
	}
	if s.IsGiven(row, col) {
		return fmt.Errorf("cell (%d,%d) is a given", row, col)
	}
	if digit < 1 || digit > 9 {
		return fmt.Errorf("digit out of range: %d", digit)
	}
	if digit != s.Solution.At(row, col) && digit != s.Board.At(row, col) {
		s.Mistakes++
	}
	s.Board.Set(row, col, digit)
	if s.Board == s.Solution {
		s.Won = true
	}
	return nil
}

// ClearCell erases the player's digit at (row, col). Givens stay.
func (s *GameState) ClearCell(row, col int) error {
	if s.Over() {
		return fmt.Errorf("game is over")
	}
	if s.IsGiven(row, col) {
		return fmt.Errorf("cell (%d,%d) is a given", row, col)
	}
	s.Board.Set(row, col, Empty)
	return nil
}

// CheckCell reports whether the player's digit at (row, col) agrees
// with the solution. Empty cells check as false.
func (s *GameState) CheckCell(row, col int) bool {
	v := s.Board.At(row, col)
	return v != Empty && v == s.Solution.At(row, col)
}

// Forfeit ends the session and reveals the solution on the board.
func (s *GameState) Forfeit() {
	if s.Over() {
		return
	}
	s.Forfeited = true
	s.Board = s.Solution
}
