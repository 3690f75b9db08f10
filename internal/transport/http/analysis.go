package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
)

// AnalysisHandler exposes the engine on a bare board, without a game session.
type AnalysisHandler struct {
	Depth int
}

func NewAnalysisHandler(depth int) *AnalysisHandler {
	return &AnalysisHandler{Depth: depth}
}

type analyzeRequest struct {
	Board string `json:"board" binding:"required"`
	AI    int    `json:"ai"`
}

type analyzeResponse struct {
	Board    string          `json:"board"`
	Winner   domain.PlayerID `json:"winner"`
	Draw     bool            `json:"draw"`
	Score    int             `json:"score"`
	BestMove int             `json:"bestMove"`
	Value    int             `json:"value"`
	Nodes    int             `json:"nodes"`
}

// Analyze reports the winner, draw flag and evaluation of a board and the
// column the hard bot would play for the requested side.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ai := domain.PlayerID(req.AI)
	if !ai.Valid() {
		writeError(c, domain.ErrInvalidPlayer)
		return
	}

	board, err := domain.ParseBoard(req.Board)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := board.CheckGravity(); err != nil {
		writeError(c, err)
		return
	}

	resp := analyzeResponse{
		Board:    board.String(),
		Winner:   board.Winner(),
		Score:    bot.Evaluate(&board, ai),
		BestMove: domain.NoMove,
	}
	resp.Draw = resp.Winner == domain.Empty && board.IsFull()

	if resp.Winner == domain.Empty && !resp.Draw {
		s := bot.NewSearcher(ai, h.Depth)
		resp.BestMove, resp.Value = s.BestMove(board)
		resp.Nodes = s.Nodes
	}

	c.JSON(http.StatusOK, resp)
}
