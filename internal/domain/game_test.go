package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	g := NewGame(Player2)
	assert.Equal(t, Player1, g.CurrentPlayer)
	assert.Equal(t, StatusActive, g.Status)
	assert.True(t, g.HasAI())
	assert.False(t, g.IsAITurn())
	assert.Equal(t, InitialStateString(), g.StateString())

	pvp := NewGame(Empty)
	assert.False(t, pvp.HasAI())
}

func TestMakeMoveAlternatesTurns(t *testing.T) {
	g := NewGame(Player2)

	row, err := g.MakeMove(Player1, 3)
	require.NoError(t, err)
	assert.Equal(t, Rows-1, row)
	assert.Equal(t, Player2, g.CurrentPlayer)
	assert.True(t, g.IsAITurn())
	assert.Equal(t, 1, g.MoveCount)

	_, err = g.MakeMove(Player1, 3)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	_, err = g.MakeMove(Empty, 3)
	assert.ErrorIs(t, err, ErrInvalidPlayer)
}

func TestMakeMoveRejectsIllegalColumn(t *testing.T) {
	g := NewGame(Empty)
	_, err := g.MakeMove(Player1, 7)
	assert.ErrorIs(t, err, ErrColumnOutOfRange)
	assert.Equal(t, Player1, g.CurrentPlayer)
	assert.Equal(t, 0, g.MoveCount)
}

func TestMakeMoveDetectsWin(t *testing.T) {
	g := NewGame(Empty)
	for i := 0; i < 3; i++ {
		_, err := g.MakeMove(Player1, 0)
		require.NoError(t, err)
		_, err = g.MakeMove(Player2, 1)
		require.NoError(t, err)
	}
	_, err := g.MakeMove(Player1, 0)
	require.NoError(t, err)

	assert.Equal(t, StatusWon, g.Status)
	assert.Equal(t, Player1, g.Winner)
	assert.True(t, g.IsFinished())

	_, err = g.MakeMove(Player2, 1)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestMakeMoveDetectsDraw(t *testing.T) {
	g := NewGame(Empty)
	// one cell short of the draw board, Player2 to fill the top right corner
	s := strings.Join(drawRows, "")
	require.NoError(t, g.SetStateString(s[:6]+"0"+s[7:]))
	require.Equal(t, Player2, g.CurrentPlayer)
	require.Equal(t, StatusActive, g.Status)

	_, err := g.MakeMove(Player2, 6)
	require.NoError(t, err)
	assert.Equal(t, StatusDraw, g.Status)
	assert.Equal(t, Empty, g.Winner)
	assert.Equal(t, s, g.StateString())
}

func TestSetStateString(t *testing.T) {
	g := NewGame(Player2)
	b := "0000000" + "0000000" + "0000000" + "0000000" + "0000000" + "0012000"
	require.NoError(t, g.SetStateString(b))
	assert.Equal(t, 2, g.MoveCount)
	assert.Equal(t, Player1, g.CurrentPlayer)
	assert.Equal(t, StatusActive, g.Status)

	b = "0000000" + "0000000" + "0000000" + "0000000" + "0000000" + "0012100"
	require.NoError(t, g.SetStateString(b))
	assert.Equal(t, Player2, g.CurrentPlayer)

	won := "0000000" + "0000000" + "0000000" + "0000000" + "0002220" + "0011110"
	require.NoError(t, g.SetStateString(won))
	assert.Equal(t, StatusWon, g.Status)
	assert.Equal(t, Player1, g.Winner)
}

func TestSetStateStringMalformedLeavesGame(t *testing.T) {
	g := NewGame(Player2)
	_, err := g.MakeMove(Player1, 3)
	require.NoError(t, err)
	before := *g

	assert.ErrorIs(t, g.SetStateString("not a board"), ErrMalformedBoard)
	assert.Equal(t, before, *g)
}

func TestReset(t *testing.T) {
	g := NewGame(Player1)
	_, err := g.MakeMove(Player1, 2)
	require.NoError(t, err)

	g.Reset()
	assert.Equal(t, *NewGame(Player1), *g)
}
