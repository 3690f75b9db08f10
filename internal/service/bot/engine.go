package bot

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

// mediumDepth keeps the medium bot on the same search with a shallow cutoff.
const mediumDepth = 2

// Engine picks moves for the bot according to a difficulty level.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewEngine(seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// CalculateBestMove selects the best move based on difficulty
func (e *Engine) CalculateBestMove(board domain.Board, botPlayer domain.PlayerID, difficulty string) int {
	switch difficulty {
	case domain.DifficultyEasy:
		e.mu.Lock()
		defer e.mu.Unlock()
		return CalculateBestMoveEasy(board, botPlayer, e.rng)
	case domain.DifficultyMedium:
		return e.search(board, botPlayer, mediumDepth)
	default:
		return e.search(board, botPlayer, SearchDepth)
	}
}

func (e *Engine) search(board domain.Board, botPlayer domain.PlayerID, depth int) int {
	start := time.Now()
	s := NewSearcher(botPlayer, depth)
	col, val := s.BestMove(board)
	log.Printf("[BOT] depth %d chose column %d (value %d, %d nodes, %s)", depth, col, val, s.Nodes, time.Since(start))
	return col
}
