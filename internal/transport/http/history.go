package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type GameHistoryRepository interface {
	GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error)
	GetRecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error)
}

type HistoryHandler struct {
	GameRepo GameHistoryRepository
}

func NewHistoryHandler(gameRepo GameHistoryRepository) *HistoryHandler {
	return &HistoryHandler{GameRepo: gameRepo}
}

type historyItem struct {
	ID         string `json:"id"`
	PlayerName string `json:"playerName"`
	BotName    string `json:"botName"`
	// Result is from the human's side ("win", "loss" or "draw"), or the
	// winning seat ("player1", "player2") when both sides were human
	Result     string `json:"result"`
	EndReason  string `json:"endReason"`
	MovesCount int    `json:"movesCount"`
	FinishedAt string `json:"finishedAt"`
}

func (h *HistoryHandler) GetHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	games, err := h.GameRepo.GetRecentGames(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	history := make([]historyItem, 0, len(games))
	for _, g := range games {
		item := historyItem{
			ID:         g.GameID,
			PlayerName: g.PlayerName,
			BotName:    domain.GetBotName(g.Difficulty),
			EndReason:  g.Reason,
			MovesCount: g.TotalMoves,
			FinishedAt: g.FinishedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}

		item.Result = gameResult(g)

		history = append(history, item)
	}

	c.JSON(http.StatusOK, history)
}

func gameResult(g domain.GameRecord) string {
	switch {
	case g.Winner == domain.Empty:
		return "draw"
	case !g.AIPlayer.Valid():
		return fmt.Sprintf("player%d", g.Winner)
	case g.Winner == g.AIPlayer:
		return "loss"
	}
	return "win"
}

func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	rec, err := h.GameRepo.GetGameByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if rec == nil {
		writeError(c, domain.ErrGameNotFound)
		return
	}

	board, err := domain.ParseBoard(rec.BoardState)
	if err != nil {
		// If board fails, just return game info
		c.JSON(http.StatusOK, rec)
		return
	}

	c.JSON(http.StatusOK, struct {
		*domain.GameRecord
		Grid [][]int `json:"grid"`
	}{
		GameRecord: rec,
		Grid:       board.Grid(),
	})
}
