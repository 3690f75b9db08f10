package domain

import "strings"

// difficulty levels understood by the bot engine
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var BotNames = map[string]string{
	DifficultyEasy:   "Alice",
	DifficultyMedium: "Bob",
	DifficultyHard:   "Charles",
}

func GetBotName(difficulty string) string {
	if name, ok := BotNames[difficulty]; ok {
		return name
	}
	return "BOT"
}

// ParseDifficulty normalises a difficulty string, reporting false for unknown values.
func ParseDifficulty(s string) (string, bool) {
	d := strings.ToLower(strings.TrimSpace(s))
	if d == "" {
		return DifficultyHard, true
	}
	if _, ok := BotNames[d]; ok {
		return d, true
	}
	return "", false
}

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Opponent returns the other side. Empty has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

// Symbol is the character used for p in a serialized board.
func (p PlayerID) Symbol() byte {
	return '0' + byte(p)
}

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
	Cells   = Rows * Columns
)

// NoMove is returned in place of a column when no legal move exists.
const NoMove = -1

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove       Error = "invalid move"
	ErrColumnFull        Error = "column is full"
	ErrColumnOutOfRange  Error = "column out of range"
	ErrMalformedBoard    Error = "malformed board"
	ErrFloatingPiece     Error = "piece is not supported from below"
	ErrGameOver          Error = "game is already over"
	ErrNotYourTurn       Error = "not your turn"
	ErrGameNotFound      Error = "game not found"
	ErrInvalidPlayer     Error = "invalid player"
	ErrInvalidDifficulty Error = "unknown difficulty"
)
