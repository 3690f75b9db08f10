package game

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	redisrepo "github.com/iamasit07/4-in-a-row/engine/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row/engine/pkg/uid"
	"github.com/pkg/errors"
)

const (
	snapshotKeyPrefix = "game:"
	snapshotTTL       = 24 * time.Hour
)

// event types
const (
	EventGameStarted = "game_started"
	EventMoveMade    = "move_made"
	EventGameOver    = "game_over"
)

type GameRepository interface {
	SaveGame(ctx context.Context, rec domain.GameRecord) error
}

// SnapshotStore returns redisrepo.ErrCacheMiss from Get for unknown keys.
type SnapshotStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType, gameID string, data interface{}) error
}

type MoveEngine interface {
	CalculateBestMove(board domain.Board, botPlayer domain.PlayerID, difficulty string) int
}

type GameSession struct {
	GameID       string
	PlayerName   string
	Game         *domain.Game
	Difficulty   string
	Reason       string
	LastAIMove   int
	CreatedAt    time.Time
	LastActivity time.Time
	FinishedAt   time.Time
	mu           sync.Mutex
	// events queued under mu, sent once mu is released
	outbox []queuedEvent
	// held while sending so a game's events stay in order
	pubMu sync.Mutex
}

type queuedEvent struct {
	eventType string
	data      interface{}
}

// GameView is a copy of a session's state that is safe to hand out.
type GameView struct {
	GameID        string            `json:"gameId"`
	PlayerName    string            `json:"playerName"`
	Board         string            `json:"board"`
	Grid          [][]int           `json:"grid"`
	CurrentPlayer domain.PlayerID   `json:"currentPlayer"`
	Status        domain.GameStatus `json:"status"`
	Winner        domain.PlayerID   `json:"winner"`
	MoveCount     int               `json:"moveCount"`
	AIPlayer      domain.PlayerID   `json:"aiPlayer"`
	Difficulty    string            `json:"difficulty"`
	LastAIMove    int               `json:"lastAIMove"`
	CreatedAt     time.Time         `json:"createdAt"`
}

type snapshot struct {
	Board      string          `json:"board"`
	PlayerName string          `json:"playerName"`
	AIPlayer   domain.PlayerID `json:"aiPlayer"`
	Difficulty string          `json:"difficulty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type moveEvent struct {
	Column int             `json:"column"`
	Row    int             `json:"row"`
	Player domain.PlayerID `json:"player"`
	Board  string          `json:"board"`
}

// SessionManager manages active game sessions. The repository, snapshot store
// and publisher are optional.
type SessionManager struct {
	Session map[string]*GameSession // gameID → GameSession
	mu      sync.RWMutex
	engine  MoveEngine
	repo    GameRepository
	cache   SnapshotStore
	events  EventPublisher
	pending sync.WaitGroup
	now     func() time.Time
}

func NewSessionManager(engine MoveEngine, repo GameRepository, cache SnapshotStore, events EventPublisher) *SessionManager {
	return &SessionManager{
		Session: make(map[string]*GameSession),
		engine:  engine,
		repo:    repo,
		cache:   cache,
		events:  events,
		now:     time.Now,
	}
}

// CreateSession starts a game against the bot. When the bot plays first its
// opening move is already on the board.
func (sm *SessionManager) CreateSession(ctx context.Context, playerName string, aiPlayer domain.PlayerID, difficulty string) (GameView, error) {
	if aiPlayer != domain.Empty && !aiPlayer.Valid() {
		return GameView{}, domain.ErrInvalidPlayer
	}
	difficulty, ok := domain.ParseDifficulty(difficulty)
	if !ok {
		return GameView{}, domain.ErrInvalidDifficulty
	}

	now := sm.now()
	gs := &GameSession{
		GameID:       uid.GenerateGameID(),
		PlayerName:   playerName,
		Game:         domain.NewGame(aiPlayer),
		Difficulty:   difficulty,
		LastAIMove:   domain.NoMove,
		CreatedAt:    now,
		LastActivity: now,
	}

	sm.mu.Lock()
	sm.Session[gs.GameID] = gs
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: %s vs %s (AI side %d)",
		gs.GameID, playerName, domain.GetBotName(difficulty), aiPlayer)

	gs.mu.Lock()
	gs.queue(EventGameStarted, gs.view())
	if gs.Game.IsAITurn() {
		sm.playAIMove(ctx, gs)
	}
	sm.saveSnapshot(ctx, gs)
	view := gs.view()
	sm.unlockAndPublish(ctx, gs)

	return view, nil
}

// GetSession looks in memory first and then tries to restore the game from
// its board snapshot. Only a missing game yields domain.ErrGameNotFound; a
// failing or corrupt snapshot store is reported as is.
func (sm *SessionManager) GetSession(ctx context.Context, gameID string) (*GameSession, error) {
	sm.mu.RLock()
	gs, exists := sm.Session[gameID]
	sm.mu.RUnlock()
	if exists {
		return gs, nil
	}

	gs, err := sm.restore(ctx, gameID)
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	// another request may have restored it first
	if existing, ok := sm.Session[gameID]; ok {
		return existing, nil
	}
	sm.Session[gameID] = gs
	log.Printf("[SESSION] Restored session %s from snapshot", gameID)
	return gs, nil
}

func (sm *SessionManager) GetGame(ctx context.Context, gameID string) (GameView, error) {
	gs, err := sm.GetSession(ctx, gameID)
	if err != nil {
		return GameView{}, err
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.view(), nil
}

// HandleMove plays column for the side to move and, in a game with a bot,
// answers with the bot's move in the same call.
func (sm *SessionManager) HandleMove(ctx context.Context, gameID string, column int) (GameView, error) {
	gs, err := sm.GetSession(ctx, gameID)
	if err != nil {
		return GameView{}, err
	}

	gs.mu.Lock()
	view, err := sm.playTurn(ctx, gs, column)
	sm.unlockAndPublish(ctx, gs)
	return view, err
}

// caller must hold gs.mu
func (sm *SessionManager) playTurn(ctx context.Context, gs *GameSession, column int) (GameView, error) {
	if gs.Game.IsAITurn() {
		return GameView{}, domain.ErrNotYourTurn
	}

	player := gs.Game.CurrentPlayer
	row, err := gs.Game.MakeMove(player, column)
	if err != nil {
		return GameView{}, err
	}
	gs.LastActivity = sm.now()
	sm.afterMove(ctx, gs, player, column, row)

	if gs.Game.IsAITurn() {
		sm.playAIMove(ctx, gs)
	}
	sm.saveSnapshot(ctx, gs)

	return gs.view(), nil
}

// ResetSession clears the board and keeps both sides.
func (sm *SessionManager) ResetSession(ctx context.Context, gameID string) (GameView, error) {
	gs, err := sm.GetSession(ctx, gameID)
	if err != nil {
		return GameView{}, err
	}

	gs.mu.Lock()
	gs.Game.Reset()
	gs.Reason = ""
	gs.LastAIMove = domain.NoMove
	gs.CreatedAt = sm.now()
	gs.LastActivity = gs.CreatedAt
	gs.FinishedAt = time.Time{}

	log.Printf("[SESSION] Reset session %s", gameID)
	gs.queue(EventGameStarted, gs.view())
	if gs.Game.IsAITurn() {
		sm.playAIMove(ctx, gs)
	}
	sm.saveSnapshot(ctx, gs)
	view := gs.view()
	sm.unlockAndPublish(ctx, gs)

	return view, nil
}

// caller must hold gs.mu
func (sm *SessionManager) playAIMove(ctx context.Context, gs *GameSession) {
	ai := gs.Game.AIPlayer
	column := sm.engine.CalculateBestMove(gs.Game.Board, ai, gs.Difficulty)
	if column == domain.NoMove {
		// only a full board leaves the bot without a move
		gs.Game.Status = domain.StatusDraw
		sm.finish(ctx, gs)
		return
	}

	row, err := gs.Game.MakeMove(ai, column)
	if err != nil {
		log.Printf("[BOT] Error applying bot move %d in game %s: %v", column, gs.GameID, err)
		return
	}
	gs.LastAIMove = column
	sm.afterMove(ctx, gs, ai, column, row)
}

// caller must hold gs.mu
func (sm *SessionManager) afterMove(ctx context.Context, gs *GameSession, player domain.PlayerID, column, row int) {
	gs.queue(EventMoveMade, moveEvent{
		Column: column,
		Row:    row,
		Player: player,
		Board:  gs.Game.StateString(),
	})
	if gs.Game.IsFinished() {
		sm.finish(ctx, gs)
	}
}

// caller must hold gs.mu
func (sm *SessionManager) finish(ctx context.Context, gs *GameSession) {
	gs.FinishedAt = sm.now()
	gs.Reason = domain.ReasonDraw
	if gs.Game.Status == domain.StatusWon {
		gs.Reason = domain.ReasonConnectFour
	}

	rec := domain.GameRecord{
		GameID:          gs.GameID,
		PlayerName:      gs.PlayerName,
		AIPlayer:        gs.Game.AIPlayer,
		Difficulty:      gs.Difficulty,
		Winner:          gs.Game.Winner,
		Reason:          gs.Reason,
		TotalMoves:      gs.Game.MoveCount,
		DurationSeconds: int(gs.FinishedAt.Sub(gs.CreatedAt).Seconds()),
		CreatedAt:       gs.CreatedAt,
		FinishedAt:      gs.FinishedAt,
		BoardState:      gs.Game.StateString(),
	}

	log.Printf("[GAME] Game %s finished: %s (winner %d)", gs.GameID, gs.Reason, gs.Game.Winner)
	gs.queue(EventGameOver, rec)
	sm.saveGameAsync(rec)
}

// Saves game data to database in background so the move response is not delayed
func (sm *SessionManager) saveGameAsync(rec domain.GameRecord) {
	if sm.repo == nil {
		return
	}

	sm.pending.Add(1)
	go func() {
		defer sm.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sm.repo.SaveGame(ctx, rec); err != nil {
			log.Printf("[GAME] Error saving game %s: %v", rec.GameID, err)
		} else {
			log.Printf("[GAME] Game %s saved successfully", rec.GameID)
		}
	}()
}

// Wait blocks until every pending archive write has finished.
func (sm *SessionManager) Wait() {
	sm.pending.Wait()
}

// caller must hold gs.mu
func (gs *GameSession) queue(eventType string, data interface{}) {
	gs.outbox = append(gs.outbox, queuedEvent{eventType: eventType, data: data})
}

// unlockAndPublish releases gs.mu, then sends what was queued under it. A slow
// broker only delays this call, never readers of the game.
func (sm *SessionManager) unlockAndPublish(ctx context.Context, gs *GameSession) {
	events := gs.outbox
	gs.outbox = nil
	gs.pubMu.Lock()
	gs.mu.Unlock()
	defer gs.pubMu.Unlock()

	for _, ev := range events {
		sm.publish(ctx, ev.eventType, gs.GameID, ev.data)
	}
}

func (sm *SessionManager) publish(ctx context.Context, eventType, gameID string, data interface{}) {
	if sm.events == nil {
		return
	}
	if err := sm.events.Publish(ctx, eventType, gameID, data); err != nil {
		log.Printf("[KAFKA] Error publishing %s for game %s: %v", eventType, gameID, err)
	}
}

// caller must hold gs.mu
func (sm *SessionManager) saveSnapshot(ctx context.Context, gs *GameSession) {
	if sm.cache == nil {
		return
	}
	data, err := json.Marshal(snapshot{
		Board:      gs.Game.StateString(),
		PlayerName: gs.PlayerName,
		AIPlayer:   gs.Game.AIPlayer,
		Difficulty: gs.Difficulty,
		CreatedAt:  gs.CreatedAt,
	})
	if err != nil {
		log.Printf("[SESSION] Error encoding snapshot for %s: %v", gs.GameID, err)
		return
	}
	if err := sm.cache.Set(ctx, snapshotKeyPrefix+gs.GameID, string(data), snapshotTTL); err != nil {
		log.Printf("[REDIS] Error saving snapshot for %s: %v", gs.GameID, err)
	}
}

func (sm *SessionManager) restore(ctx context.Context, gameID string) (*GameSession, error) {
	if sm.cache == nil {
		return nil, domain.ErrGameNotFound
	}
	raw, err := sm.cache.Get(ctx, snapshotKeyPrefix+gameID)
	if errors.Is(err, redisrepo.ErrCacheMiss) {
		return nil, domain.ErrGameNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load snapshot for %s", gameID)
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}

	g := domain.NewGame(snap.AIPlayer)
	if err := g.SetStateString(snap.Board); err != nil {
		return nil, errors.Wrap(err, "restore board")
	}

	now := sm.now()
	gs := &GameSession{
		GameID:       gameID,
		PlayerName:   snap.PlayerName,
		Game:         g,
		Difficulty:   snap.Difficulty,
		LastAIMove:   domain.NoMove,
		CreatedAt:    snap.CreatedAt,
		LastActivity: now,
	}
	if g.IsFinished() {
		gs.FinishedAt = now
		gs.Reason = domain.ReasonDraw
		if g.Status == domain.StatusWon {
			gs.Reason = domain.ReasonConnectFour
		}
	}
	return gs, nil
}

// caller must hold gs.mu
func (gs *GameSession) view() GameView {
	return GameView{
		GameID:        gs.GameID,
		PlayerName:    gs.PlayerName,
		Board:         gs.Game.StateString(),
		Grid:          gs.Game.Board.Grid(),
		CurrentPlayer: gs.Game.CurrentPlayer,
		Status:        gs.Game.Status,
		Winner:        gs.Game.Winner,
		MoveCount:     gs.Game.MoveCount,
		AIPlayer:      gs.Game.AIPlayer,
		Difficulty:    gs.Difficulty,
		LastAIMove:    gs.LastAIMove,
		CreatedAt:     gs.CreatedAt,
	}
}

// LiveGame summarises an unfinished game for the lobby listing.
type LiveGame struct {
	GameID     string          `json:"gameId"`
	PlayerName string          `json:"playerName"`
	BotName    string          `json:"botName"`
	AIPlayer   domain.PlayerID `json:"aiPlayer"`
	MoveCount  int             `json:"moveCount"`
	StartedAt  time.Time       `json:"startedAt"`
}

// GetActiveGames returns every unfinished game held in memory, oldest first.
func (sm *SessionManager) GetActiveGames() []LiveGame {
	sessions := sm.sessions()

	games := make([]LiveGame, 0, len(sessions))
	for _, gs := range sessions {
		gs.mu.Lock()
		if !gs.Game.IsFinished() {
			games = append(games, LiveGame{
				GameID:     gs.GameID,
				PlayerName: gs.PlayerName,
				BotName:    domain.GetBotName(gs.Difficulty),
				AIPlayer:   gs.Game.AIPlayer,
				MoveCount:  gs.Game.MoveCount,
				StartedAt:  gs.CreatedAt,
			})
		}
		gs.mu.Unlock()
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].StartedAt.Before(games[j].StartedAt)
	})
	return games
}

// sessions copies the session list so callers can lock each game without
// holding sm.mu.
func (sm *SessionManager) sessions() []*GameSession {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	list := make([]*GameSession, 0, len(sm.Session))
	for _, gs := range sm.Session {
		list = append(list, gs)
	}
	return list
}

func (sm *SessionManager) RemoveSession(ctx context.Context, gameID string) error {
	sm.mu.Lock()
	if _, exists := sm.Session[gameID]; !exists {
		sm.mu.Unlock()
		return domain.ErrGameNotFound
	}
	log.Printf("[SESSION] Removing session %s", gameID)
	delete(sm.Session, gameID)
	sm.mu.Unlock()

	if sm.cache != nil {
		if err := sm.cache.Del(ctx, snapshotKeyPrefix+gameID); err != nil {
			log.Printf("[REDIS] Error deleting snapshot for %s: %v", gameID, err)
		}
	}
	return nil
}

// CleanupOldSessions drops finished games after finishedTTL and idle games
// after idleTTL. Snapshots of idle games stay in Redis until they expire.
func (sm *SessionManager) CleanupOldSessions(finishedTTL, idleTTL time.Duration) int {
	now := sm.now()

	var stale []*GameSession
	for _, session := range sm.sessions() {
		session.mu.Lock()
		expired := false
		if session.Game.IsFinished() {
			expired = now.Sub(session.FinishedAt) > finishedTTL
		} else {
			expired = now.Sub(session.LastActivity) > idleTTL
		}
		session.mu.Unlock()

		if expired {
			stale = append(stale, session)
		}
	}

	sm.mu.Lock()
	count := 0
	for _, session := range stale {
		// skip sessions replaced by a restore in the meantime
		if sm.Session[session.GameID] == session {
			delete(sm.Session, session.GameID)
			count++
		}
	}
	sm.mu.Unlock()

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}
