// Package sqlite provides a SQLite-backed game storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	sqlitemigrate "github.com/louisbranch/evermeadow/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/evermeadow/internal/storage"
	"github.com/louisbranch/evermeadow/internal/storage/sqlite/migrations"
)

// Store persists games in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

// Open opens a SQLite game store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateGame inserts one game record.
func (s *Store) CreateGame(ctx context.Context, game storage.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	gameID := strings.TrimSpace(game.GameID)
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	status := strings.TrimSpace(game.Status)
	if status == "" {
		status = storage.StatusActive
	}
	if game.PlayerCount <= 0 {
		return fmt.Errorf("player count must be greater than zero")
	}
	if len(game.State) == 0 {
		return fmt.Errorf("game state is required")
	}
	createdAt := game.CreatedAt.UTC()
	updatedAt := game.UpdatedAt.UTC()
	if createdAt.IsZero() && updatedAt.IsZero() {
		createdAt = time.Now().UTC()
		updatedAt = createdAt
	} else {
		if createdAt.IsZero() {
			createdAt = updatedAt
		}
		if updatedAt.IsZero() {
			updatedAt = createdAt
		}
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO games (
		   game_id,
		   status,
		   player_count,
		   pearlbrook,
		   game_state_id,
		   state,
		   created_at,
		   updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID,
		status,
		game.PlayerCount,
		boolToInt(game.Pearlbrook),
		game.GameStateID,
		game.State,
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		if isGameUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

// GetGame returns one game by id.
func (s *Store) GetGame(ctx context.Context, gameID string) (storage.Game, error) {
	if err := ctx.Err(); err != nil {
		return storage.Game{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Game{}, fmt.Errorf("storage is not configured")
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return storage.Game{}, fmt.Errorf("game id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT game_id, status, player_count, pearlbrook,
		        game_state_id, state, created_at, updated_at
		   FROM games
		  WHERE game_id = ?`,
		gameID,
	)

	game, err := scanGame(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Game{}, storage.ErrNotFound
		}
		return storage.Game{}, fmt.Errorf("get game: %w", err)
	}
	return game, nil
}

// UpdateGame replaces the snapshot and listing metadata of one game.
func (s *Store) UpdateGame(ctx context.Context, game storage.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	gameID := strings.TrimSpace(game.GameID)
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	status := strings.TrimSpace(game.Status)
	if status == "" {
		return fmt.Errorf("status is required")
	}
	if len(game.State) == 0 {
		return fmt.Errorf("game state is required")
	}
	updatedAt := game.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE games
		    SET status = ?,
		        game_state_id = ?,
		        state = ?,
		        updated_at = ?
		  WHERE game_id = ?`,
		status,
		game.GameStateID,
		game.State,
		toMillis(updatedAt),
		gameID,
	)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListGames returns one page of games matching the AIP-160 filter.
func (s *Store) ListGames(ctx context.Context, pageSize int, pageToken string, filter string) (storage.GamePage, error) {
	if err := ctx.Err(); err != nil {
		return storage.GamePage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.GamePage{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return storage.GamePage{}, fmt.Errorf("page size must be greater than zero")
	}
	pageToken = strings.TrimSpace(pageToken)

	cond, err := parseGameFilter(filter)
	if err != nil {
		return storage.GamePage{}, err
	}

	var clauses []string
	var params []any
	if cond.Clause != "" {
		clauses = append(clauses, cond.Clause)
		params = append(params, cond.Params...)
	}
	if pageToken != "" {
		clauses = append(clauses, "game_id > ?")
		params = append(params, pageToken)
	}
	query := `SELECT game_id, status, player_count, pearlbrook,
	                 game_state_id, state, created_at, updated_at
	            FROM games`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY game_id ASC LIMIT ?"
	params = append(params, pageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, query, params...)
	if err != nil {
		return storage.GamePage{}, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	page := storage.GamePage{
		Games: make([]storage.Game, 0, pageSize),
	}
	for rows.Next() {
		game, err := scanGame(rows.Scan)
		if err != nil {
			return storage.GamePage{}, fmt.Errorf("list games: %w", err)
		}
		page.Games = append(page.Games, game)
	}
	if err := rows.Err(); err != nil {
		return storage.GamePage{}, fmt.Errorf("list games: %w", err)
	}
	if len(page.Games) > pageSize {
		page.NextPageToken = page.Games[pageSize-1].GameID
		page.Games = page.Games[:pageSize]
	}

	return page, nil
}

func scanGame(scan func(dest ...any) error) (storage.Game, error) {
	var game storage.Game
	var pearlbrook int
	var createdAt int64
	var updatedAt int64
	if err := scan(
		&game.GameID,
		&game.Status,
		&game.PlayerCount,
		&pearlbrook,
		&game.GameStateID,
		&game.State,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.Game{}, err
	}
	game.Pearlbrook = pearlbrook != 0
	game.CreatedAt = fromMillis(createdAt)
	game.UpdatedAt = fromMillis(updatedAt)
	return game, nil
}

func isGameUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "games.game_id")
}

var _ storage.GameStore = (*Store)(nil)
