package domain

import "time"

// GameRecord is the archived form of a finished game.
type GameRecord struct {
	GameID          string    `json:"gameId"`
	PlayerName      string    `json:"playerName"`
	AIPlayer        PlayerID  `json:"aiPlayer"`
	Difficulty      string    `json:"difficulty"`
	Winner          PlayerID  `json:"winner"`
	Reason          string    `json:"reason"`
	TotalMoves      int       `json:"totalMoves"`
	DurationSeconds int       `json:"durationSeconds"`
	CreatedAt       time.Time `json:"createdAt"`
	FinishedAt      time.Time `json:"finishedAt"`
	BoardState      string    `json:"boardState"`
}

// finish reasons
const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
)
