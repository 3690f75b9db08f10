package bot

import (
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

// SelectMove is the hard bot: a full-depth negamax search for ai.
func SelectMove(board domain.Board, ai domain.PlayerID) int {
	col, _ := NewSearcher(ai, SearchDepth).BestMove(board)
	return col
}
