package bot

import (
	"math/rand"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

// CalculateBestMoveEasy wins when it can, blocks when it must and otherwise
// plays a random legal column.
func CalculateBestMoveEasy(board domain.Board, botPlayer domain.PlayerID, rng *rand.Rand) int {
	validColumns := board.ValidMoves()
	if len(validColumns) == 0 {
		return domain.NoMove
	}

	if col := findWinningColumn(board, botPlayer); col != domain.NoMove {
		return col
	}
	if col := findWinningColumn(board, botPlayer.Opponent()); col != domain.NoMove {
		return col
	}

	return validColumns[rng.Intn(len(validColumns))]
}

func findWinningColumn(board domain.Board, player domain.PlayerID) int {
	for _, col := range board.ValidMoves() {
		row, err := board.Drop(col, player)
		if err != nil {
			continue
		}
		won := board.CheckWinAt(col, row)
		board.Undo(col, row)
		if won {
			return col
		}
	}
	return domain.NoMove
}
