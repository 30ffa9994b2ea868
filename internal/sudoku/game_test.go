package sudoku

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T) *GameState {
	t.Helper()
	game, err := NewGame(Easy, rand.New(rand.NewPCG(11, 13)))
	require.NoError(t, err)
	return game
}

// findEmptyCell returns some cell the player still has to fill.
func findEmptyCell(t *testing.T, game *GameState) (int, int) {
	t.Helper()
	for row := range Size {
		for col := range Size {
			if game.Board.At(row, col) == Empty {
				return row, col
			}
		}
	}
	t.Fatal("no empty cell on a fresh board")
	return 0, 0
}

func TestNewGameStartsFromPuzzle(t *testing.T) {
	t.Parallel()

	game := newTestGame(t)
	assert.Equal(t, game.Puzzle, game.Board)
	assert.Equal(t, Easy, game.Difficulty)
	assert.Zero(t, game.Mistakes)
	assert.False(t, game.Over())
}

func TestSetCell(t *testing.T) {
	t.Parallel()

	game := newTestGame(t)
	row, col := findEmptyCell(t, game)
	want := game.Solution.At(row, col)
	wrong := want%9 + 1 // any digit != want

	require.NoError(t, game.SetCell(row, col, wrong))
	assert.Equal(t, wrong, game.Board.At(row, col))
	assert.Equal(t, 1, game.Mistakes)

	// re-entering the same wrong digit is not a second mistake
	require.NoError(t, game.SetCell(row, col, wrong))
	assert.Equal(t, 1, game.Mistakes)

	require.NoError(t, game.SetCell(row, col, want))
	assert.Equal(t, 1, game.Mistakes)
	assert.True(t, game.CheckCell(row, col))
}

func TestSetCellRejectsGivens(t *testing.T) {
	t.Parallel()

	game := newTestGame(t)
	for row := range Size {
		for col := range Size {
			if game.IsGiven(row, col) {
				assert.Error(t, game.SetCell(row, col, 1))
				assert.Error(t, game.ClearCell(row, col))
				return
			}
		}
	}
	t.Fatal("puzzle has no givens")
}

func TestSetCellRejectsBadDigit(t *testing.T) {
	t.Parallel()

	game := newTestGame(t)
	row, col := findEmptyCell(t, game)
	assert.Error(t, game.SetCell(row, col, 0))
	assert.Error(t, game.SetCell(row, col, 10))
}

func TestClearCell(t *testing.T) {
	t.Parallel()

	game := newTestGame(t)
	row, col := findEmptyCell(t, game)
	require.NoError(t, game.SetCell(row, col, game.Solution.At(row, col)))
	require.NoError(t, game.ClearCell(row, col))
	assert.Equal(t, Empty, game.Board.At(row, col))
	assert.False(t, game.CheckCell(row, col))
}

func TestWinByFillingBoard(t *testing.T) {
	t.Parallel()

	game := newTestGame(t)
	for row := range Size {
		for col := range Size {
			if game.Board.At(row, col) == Empty {
				require.NoError(
					t, game.SetCell(row, col, game.Solution.At(row, col)),
				)
			}
		}
	}
	assert.True(t, game.Won)
	assert.True(t, game.Over())
	assert.Zero(t, game.Mistakes)
	assert.Error(t, game.SetCell(0, 0, 1))
}

func TestForfeit(t *testing.T) {
	t.Parallel()

	game := newTestGame(t)
	game.Forfeit()
	assert.True(t, game.Forfeited)
	assert.False(t, game.Won)
	assert.Equal(t, game.Solution, game.Board)

	// forfeiting twice changes nothing
	game.Forfeit()
	assert.True(t, game.Forfeited)
}

func TestGameStateRoundTrip(t *testing.T) {
	t.Parallel()

	game := newTestGame(t)
	row, col := findEmptyCell(t, game)
	require.NoError(t, game.SetCell(row, col, game.Solution.At(row, col)%9+1))

	b, err := game.Bytes()
	require.NoError(t, err)

	restored, err := DecodeGameState(b)
	require.NoError(t, err)
	assert.Equal(t, game, restored)
}
