// Package storage defines persistence contracts for saved games.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested game record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a game with the same id already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// Game status values kept alongside the snapshot for listing.
const (
	StatusActive = "ACTIVE"
	StatusEnded  = "ENDED"
)

// Game stores one serialized game snapshot plus listing metadata.
type Game struct {
	GameID      string
	Status      string
	PlayerCount int
	Pearlbrook  bool
	// GameStateID mirrors the snapshot's id so staleness is visible
	// without deserializing State.
	GameStateID int
	// State holds the private JSON snapshot.
	State     []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GamePage stores one page of game records.
type GamePage struct {
	Games         []Game
	NextPageToken string
}

// GameStore persists game snapshots.
type GameStore interface {
	CreateGame(ctx context.Context, game Game) error
	GetGame(ctx context.Context, gameID string) (Game, error)
	UpdateGame(ctx context.Context, game Game) error
	ListGames(ctx context.Context, pageSize int, pageToken string, filter string) (GamePage, error)
}
