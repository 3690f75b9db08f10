package postgres

import (
	"context"
	"database/sql"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/pkg/errors"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

const gameColumns = `game_id, player_name, ai_player, difficulty, winner, reason,
	       total_moves, duration_seconds, created_at, finished_at, board_state`

// SaveGame archives a finished game. Saving the same game twice overwrites the
// result columns.
func (r *GameRepo) SaveGame(ctx context.Context, rec domain.GameRecord) error {
	query := `
	INSERT INTO games (` + gameColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (game_id) DO UPDATE SET
		winner = EXCLUDED.winner,
		reason = EXCLUDED.reason,
		total_moves = EXCLUDED.total_moves,
		duration_seconds = EXCLUDED.duration_seconds,
		finished_at = EXCLUDED.finished_at,
		board_state = EXCLUDED.board_state;
	`

	_, err := r.DB.ExecContext(ctx, query,
		rec.GameID, rec.PlayerName, int(rec.AIPlayer), rec.Difficulty, int(rec.Winner), rec.Reason,
		rec.TotalMoves, rec.DurationSeconds, rec.CreatedAt, rec.FinishedAt, rec.BoardState)
	if err != nil {
		return errors.Wrapf(err, "failed to upsert game %s", rec.GameID)
	}
	return nil
}

// GetGameByID returns nil, nil when the game is not archived.
func (r *GameRepo) GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_id = $1;`

	rec, err := scanGame(r.DB.QueryRowContext(ctx, query, gameID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get game by ID")
	}
	return rec, nil
}

// GetRecentGames lists archived games, most recently finished first.
func (r *GameRepo) GetRecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	query := `SELECT ` + gameColumns + ` FROM games ORDER BY finished_at DESC LIMIT $1;`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query recent games")
	}
	defer rows.Close()

	games := []domain.GameRecord{}
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan game row")
		}
		games = append(games, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate game rows")
	}
	return games, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGame(row rowScanner) (*domain.GameRecord, error) {
	var rec domain.GameRecord
	var aiPlayer, winner int
	err := row.Scan(
		&rec.GameID,
		&rec.PlayerName,
		&aiPlayer,
		&rec.Difficulty,
		&winner,
		&rec.Reason,
		&rec.TotalMoves,
		&rec.DurationSeconds,
		&rec.CreatedAt,
		&rec.FinishedAt,
		&rec.BoardState,
	)
	if err != nil {
		return nil, err
	}
	rec.AIPlayer = domain.PlayerID(aiPlayer)
	rec.Winner = domain.PlayerID(winner)
	return &rec, nil
}
