package sudoku

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	t.Parallel()

	for _, d := range Difficulties {
		parsed, err := ParseDifficulty(string(d))
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}

	_, err := ParseDifficulty("nightmare")
	assert.Error(t, err)

	_, err = ParseDifficulty("")
	assert.Error(t, err)
}

func TestDifficultyTargetsIncrease(t *testing.T) {
	t.Parallel()

	prev := 0
	for _, d := range Difficulties {
		target := d.TargetRemovals()
		assert.Greater(t, target, prev, "difficulty %s", d)
		prev = target
	}
}

func TestGenerate(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	for _, d := range Difficulties {
		t.Run(string(d), func(t *testing.T) {
			t.Parallel()

			rnd := rand.New(rand.NewPCG(42, uint64(len(d))))
			puzzle, solution, err := Generate(d, rnd)
			require.NoError(t, err)

			require.True(t, solution.Complete())

			// every given must come from the solution
			for i, v := range puzzle {
				if v != Empty {
					assert.Equal(t, solution[i], v, "cell %d", i)
				}
			}

			assert.LessOrEqual(t, puzzle.EmptyCount(), d.TargetRemovals())
			assert.Equal(t, 1, puzzle.CountSolutions(2))
		})
	}
}

func TestGenerateEasyReachesTarget(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	// at low removal counts the single-pass dig never runs out of
	// removable cells
	rnd := rand.New(rand.NewPCG(3, 5))
	puzzle, _, err := Generate(Easy, rnd)
	require.NoError(t, err)
	assert.Equal(t, Easy.TargetRemovals(), puzzle.EmptyCount())
}

func TestGenerateDifficultySpread(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	easyRnd := rand.New(rand.NewPCG(100, 200))
	masterRnd := rand.New(rand.NewPCG(300, 400))

	easy, _, err := Generate(Easy, easyRnd)
	require.NoError(t, err)
	master, _, err := Generate(Master, masterRnd)
	require.NoError(t, err)

	assert.Greater(t, master.EmptyCount(), easy.EmptyCount())
	assert.LessOrEqual(t, master.EmptyCount(), Master.TargetRemovals())
	assert.Equal(t, 1, easy.CountSolutions(2))
	assert.Equal(t, 1, master.CountSolutions(2))
}

func TestGenerateDeterministic(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	p1, s1, err := Generate(Medium, rand.New(rand.NewPCG(8, 16)))
	require.NoError(t, err)
	p2, s2, err := Generate(Medium, rand.New(rand.NewPCG(8, 16)))
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, s1, s2)
}

func TestGenerateUnknownDifficulty(t *testing.T) {
	t.Parallel()

	_, _, err := Generate(Difficulty("trivial"), rand.New(rand.NewPCG(1, 2)))
	assert.Error(t, err)
}
