package domain

type Game struct {
	Board         Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	MoveCount     int
	// AIPlayer is the automated side, Empty when both sides are human.
	AIPlayer PlayerID
}

func NewGame(aiPlayer PlayerID) *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
		MoveCount:     0,
		AIPlayer:      aiPlayer,
	}
}

func (g *Game) MakeMove(player PlayerID, column int) (int, error) {
	if g.IsFinished() {
		return -1, ErrGameOver
	}
	if !player.Valid() {
		return -1, ErrInvalidPlayer
	}
	if player != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}

	row, err := g.Board.Drop(column, player)
	if err != nil {
		return -1, err
	}

	g.MoveCount++

	if g.Board.CheckWinAt(column, row) {
		g.Status = StatusWon
		g.Winner = player
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = player.Opponent()
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

func (g *Game) HasAI() bool {
	return g.AIPlayer.Valid()
}

func (g *Game) IsAITurn() bool {
	return g.HasAI() && !g.IsFinished() && g.CurrentPlayer == g.AIPlayer
}

func (g *Game) StateString() string {
	return g.Board.String()
}

// SetStateString replaces the board and recomputes the derived state. A
// malformed string leaves the game untouched.
func (g *Game) SetStateString(s string) error {
	board, err := ParseBoard(s)
	if err != nil {
		return err
	}

	g.Board = board
	p1 := board.PieceCount(Player1)
	p2 := board.PieceCount(Player2)
	g.MoveCount = p1 + p2
	g.CurrentPlayer = Player1
	if p1 > p2 {
		g.CurrentPlayer = Player2
	}

	g.Status = StatusActive
	g.Winner = Empty
	if w := board.Winner(); w != Empty {
		g.Status = StatusWon
		g.Winner = w
	} else if board.IsFull() {
		g.Status = StatusDraw
	}
	return nil
}

// Reset clears every piece and starts over with the same sides.
func (g *Game) Reset() {
	*g = *NewGame(g.AIPlayer)
}
