package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	"github.com/iamasit07/4-in-a-row/engine/pkg/auth"
)

type GameHandler struct {
	Sessions          *game.SessionManager
	DefaultAIPlayer   domain.PlayerID
	DefaultDifficulty string
}

func NewGameHandler(sm *game.SessionManager, defaultAI domain.PlayerID, defaultDifficulty string) *GameHandler {
	return &GameHandler{
		Sessions:          sm,
		DefaultAIPlayer:   defaultAI,
		DefaultDifficulty: defaultDifficulty,
	}
}

type createGameRequest struct {
	Name       string `json:"name"`
	AIPlayer   *int   `json:"aiPlayer"`
	Difficulty string `json:"difficulty"`
}

type createGameResponse struct {
	GameID string        `json:"gameId"`
	Token  string        `json:"token"`
	Game   game.GameView `json:"game"`
}

type moveRequest struct {
	Column *int `json:"column"`
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Guest"
	}
	if len(name) > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name must be at most 50 characters"})
		return
	}

	aiPlayer := h.DefaultAIPlayer
	if req.AIPlayer != nil {
		aiPlayer = domain.PlayerID(*req.AIPlayer)
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = h.DefaultDifficulty
	}

	view, err := h.Sessions.CreateSession(c.Request.Context(), name, aiPlayer, difficulty)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := auth.GenerateGameToken(view.GameID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createGameResponse{GameID: view.GameID, Token: token, Game: view})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	view, err := h.Sessions.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) MakeMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Column == nil {
		writeError(c, domain.ErrInvalidMove)
		return
	}

	view, err := h.Sessions.HandleMove(c.Request.Context(), c.Param("id"), *req.Column)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) ResetGame(c *gin.Context) {
	view, err := h.Sessions.ResetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
