package bot

import (
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

const (
	// SearchDepth is the ply cutoff used by the hard bot.
	SearchDepth = 6

	searchInfinity = 10000
)

// ColumnOrder tries the centre first; stronger moves there cause earlier cutoffs.
var ColumnOrder = [domain.Columns]int{3, 2, 4, 1, 5, 0, 6}

// Searcher runs negamax with alpha-beta pruning for one AI side. It keeps no
// state between searches apart from the node counter.
type Searcher struct {
	AI       domain.PlayerID
	MaxDepth int
	Nodes    int
}

func NewSearcher(ai domain.PlayerID, maxDepth int) *Searcher {
	return &Searcher{AI: ai, MaxDepth: maxDepth}
}

// Negamax returns the value of board for the side to move, where sign is +1
// when the AI moves and -1 when its opponent does. Moves are applied to board
// and undone before returning.
func (s *Searcher) Negamax(board *domain.Board, depth, alpha, beta, sign int) int {
	s.Nodes++

	// the evaluator's win magnitude doubles as the terminal check
	score := Evaluate(board, s.AI)
	if score >= WinScore || score <= -WinScore {
		return sign * score
	}

	if board.IsFull() {
		return 0
	}

	if depth >= s.MaxDepth {
		return sign * score
	}

	mover := s.AI
	if sign < 0 {
		mover = s.AI.Opponent()
	}

	bestVal := -searchInfinity
	for _, col := range ColumnOrder {
		row, err := board.Drop(col, mover)
		if err != nil {
			continue
		}
		val := -s.Negamax(board, depth+1, -beta, -alpha, -sign)
		board.Undo(col, row)

		bestVal = max(bestVal, val)
		alpha = max(alpha, bestVal)
		if alpha >= beta {
			break
		}
	}

	return bestVal
}

// BestMove tries every legal column for the AI and returns the one with the
// highest negamax value, or domain.NoMove on a full board. The caller's board
// is not modified.
func (s *Searcher) BestMove(board domain.Board) (int, int) {
	bestCol := domain.NoMove
	bestVal := -searchInfinity

	for _, col := range ColumnOrder {
		row, err := board.Drop(col, s.AI)
		if err != nil {
			continue
		}
		// the opponent replies next
		val := -s.Negamax(&board, 0, -searchInfinity, searchInfinity, -1)
		board.Undo(col, row)

		if bestCol == domain.NoMove || val > bestVal {
			bestVal = val
			bestCol = col
		}
	}

	return bestCol, bestVal
}
