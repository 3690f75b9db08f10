package bot

import (
	"math/rand"
	"testing"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCalculateBestMoveEveryDifficultyWins(t *testing.T) {
	e := NewEngine(1)
	b := mustBoard(t, immediateWinRows...)
	for _, d := range []string{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		assert.Equal(t, 0, e.CalculateBestMove(b, domain.Player2, d), d)
	}
}

func TestCalculateBestMoveEveryDifficultyBlocks(t *testing.T) {
	e := NewEngine(1)
	b := mustBoard(t, mustBlockRows...)
	for _, d := range []string{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		assert.Equal(t, 4, e.CalculateBestMove(b, domain.Player2, d), d)
	}
}

func TestCalculateBestMoveUnknownDifficultyIsHard(t *testing.T) {
	e := NewEngine(1)
	assert.Equal(t, 3, e.CalculateBestMove(domain.NewBoard(), domain.Player2, "unknown"))
}

func TestEasyBotPlaysLegalColumns(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := mustBoard(t,
		"1000000",
		"2000000",
		"1000000",
		"2000000",
		"1000000",
		"2000000",
	)
	for i := 0; i < 50; i++ {
		col := CalculateBestMoveEasy(b, domain.Player2, rng)
		assert.NotEqual(t, 0, col)
		assert.Contains(t, b.ValidMoves(), col)
	}
}

func TestEasyBotFullBoard(t *testing.T) {
	b := mustBoard(t, fullDrawRows...)
	assert.Equal(t, domain.NoMove, CalculateBestMoveEasy(b, domain.Player2, rand.New(rand.NewSource(1))))
}

func TestEasyBotPrefersWinOverBlock(t *testing.T) {
	// both sides have three stacked; Player2 completes its own column
	b := mustBoard(t,
		"0000000",
		"0000000",
		"0000000",
		"1000002",
		"1000002",
		"1000002",
	)
	assert.Equal(t, 6, CalculateBestMoveEasy(b, domain.Player2, rand.New(rand.NewSource(1))))
}
