package bot

import (
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

const (
	// WinScore marks a completed line. The search treats any score of this
	// magnitude as a finished game, so no mix of the smaller weights may reach it.
	WinScore = 1000

	SCORE_THREE_OPEN      = 50
	SCORE_TWO_OPEN        = 10
	SCORE_OPP_THREE_OPEN  = -100 // blocking outweighs attacking
	SCORE_OPP_TWO_OPEN    = -10
	SCORE_CENTER_PIECE    = 6
	windowSize            = 4
	maxHeuristicMagnitude = WinScore - 1
)

type window struct {
	col, row   int
	dCol, dRow int
}

// windows lists every run of four cells on the board: 24 horizontal,
// 21 vertical and 12 on each diagonal.
var windows = buildWindows()

func buildWindows() []window {
	var ws []window
	for row := 0; row < domain.Rows; row++ {
		for col := 0; col <= domain.Columns-windowSize; col++ {
			ws = append(ws, window{col, row, 1, 0})
		}
	}
	for col := 0; col < domain.Columns; col++ {
		for row := 0; row <= domain.Rows-windowSize; row++ {
			ws = append(ws, window{col, row, 0, 1})
		}
	}
	// diagonal \
	for row := 0; row <= domain.Rows-windowSize; row++ {
		for col := 0; col <= domain.Columns-windowSize; col++ {
			ws = append(ws, window{col, row, 1, 1})
		}
	}
	// diagonal /
	for row := windowSize - 1; row < domain.Rows; row++ {
		for col := 0; col <= domain.Columns-windowSize; col++ {
			ws = append(ws, window{col, row, 1, -1})
		}
	}
	return ws
}

// Evaluate scores board from the point of view of favourable.
func Evaluate(board *domain.Board, favourable domain.PlayerID) int {
	opponent := favourable.Opponent()
	score := 0

	center := domain.Columns / 2
	for row := 0; row < domain.Rows; row++ {
		switch board.At(center, row) {
		case favourable:
			score += SCORE_CENTER_PIECE
		case opponent:
			score -= SCORE_CENTER_PIECE
		}
	}

	won, lost := false, false
	for _, w := range windows {
		s := evaluateWindow(board, w, favourable, opponent)
		switch s {
		case WinScore:
			won = true
		case -WinScore:
			lost = true
		}
		score += s
	}

	return saturate(score, won, lost)
}

// saturate keeps WinScore reserved for real lines.
func saturate(score int, won, lost bool) int {
	switch {
	case won && !lost:
		return max(score, WinScore)
	case lost && !won:
		return min(score, -WinScore)
	case won && lost:
		return score
	}
	return max(-maxHeuristicMagnitude, min(score, maxHeuristicMagnitude))
}

func evaluateWindow(board *domain.Board, w window, favourable, opponent domain.PlayerID) int {
	own, opp, empty := 0, 0, 0
	for i := 0; i < windowSize; i++ {
		switch board.At(w.col+i*w.dCol, w.row+i*w.dRow) {
		case favourable:
			own++
		case opponent:
			opp++
		default:
			empty++
		}
	}

	if own > 0 && opp > 0 {
		return 0
	}

	switch {
	case own == 4:
		return WinScore
	case own == 3 && empty == 1:
		return SCORE_THREE_OPEN
	case own == 2 && empty == 2:
		return SCORE_TWO_OPEN
	case opp == 4:
		return -WinScore
	case opp == 3 && empty == 1:
		return SCORE_OPP_THREE_OPEN
	case opp == 2 && empty == 2:
		return SCORE_OPP_TWO_OPEN
	}
	return 0
}
