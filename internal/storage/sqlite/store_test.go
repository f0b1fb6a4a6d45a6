package sqlite

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/evermeadow/internal/errors"
	"github.com/louisbranch/evermeadow/internal/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestCreateGetGameRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	input := storage.Game{
		GameID:      "game-1",
		Status:      storage.StatusActive,
		PlayerCount: 2,
		Pearlbrook:  true,
		GameStateID: 1,
		State:       []byte(`{"gameStateId":1}`),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := store.CreateGame(context.Background(), input); err != nil {
		t.Fatalf("create game: %v", err)
	}

	got, err := store.GetGame(context.Background(), "game-1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.GameID != input.GameID {
		t.Fatalf("game_id = %q, want %q", got.GameID, input.GameID)
	}
	if got.Status != storage.StatusActive {
		t.Fatalf("status = %q, want %q", got.Status, storage.StatusActive)
	}
	if got.PlayerCount != 2 {
		t.Fatalf("player_count = %d, want 2", got.PlayerCount)
	}
	if !got.Pearlbrook {
		t.Fatal("expected pearlbrook flag to survive the round trip")
	}
	if string(got.State) != string(input.State) {
		t.Fatalf("state = %q, want %q", got.State, input.State)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps = %v/%v, want %v", got.CreatedAt, got.UpdatedAt, now)
	}
}

func TestCreateGameReturnsAlreadyExistsOnDuplicate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	game := testGame("game-1")
	if err := store.CreateGame(context.Background(), game); err != nil {
		t.Fatalf("create game: %v", err)
	}
	if err := store.CreateGame(context.Background(), game); !stderrors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate create err = %v, want ErrAlreadyExists", err)
	}
}

func TestGetGameReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.GetGame(context.Background(), "missing"); !stderrors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing err = %v, want ErrNotFound", err)
	}
}

func TestUpdateGameReplacesSnapshot(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	game := testGame("game-1")
	if err := store.CreateGame(context.Background(), game); err != nil {
		t.Fatalf("create game: %v", err)
	}

	game.Status = storage.StatusEnded
	game.GameStateID = 7
	game.State = []byte(`{"gameStateId":7}`)
	game.UpdatedAt = time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	if err := store.UpdateGame(context.Background(), game); err != nil {
		t.Fatalf("update game: %v", err)
	}

	got, err := store.GetGame(context.Background(), "game-1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.Status != storage.StatusEnded {
		t.Fatalf("status = %q, want %q", got.Status, storage.StatusEnded)
	}
	if got.GameStateID != 7 {
		t.Fatalf("game_state_id = %d, want 7", got.GameStateID)
	}
	if string(got.State) != `{"gameStateId":7}` {
		t.Fatalf("state = %q", got.State)
	}
	if !got.UpdatedAt.Equal(game.UpdatedAt) {
		t.Fatalf("updated_at = %v, want %v", got.UpdatedAt, game.UpdatedAt)
	}
}

func TestUpdateGameReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.UpdateGame(context.Background(), testGame("missing")); !stderrors.Is(err, storage.ErrNotFound) {
		t.Fatalf("update missing err = %v, want ErrNotFound", err)
	}
}

func TestListGamesFilters(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	for i := 1; i <= 3; i++ {
		game := testGame(fmt.Sprintf("game-%d", i))
		game.PlayerCount = 1 + i
		if i == 3 {
			game.Status = storage.StatusEnded
		}
		if err := store.CreateGame(context.Background(), game); err != nil {
			t.Fatalf("create game %d: %v", i, err)
		}
	}

	page, err := store.ListGames(context.Background(), 10, "", `status = "ACTIVE"`)
	if err != nil {
		t.Fatalf("list active games: %v", err)
	}
	if len(page.Games) != 2 {
		t.Fatalf("active games = %d, want 2", len(page.Games))
	}

	page, err = store.ListGames(context.Background(), 10, "", `status = "ACTIVE" AND player_count >= 3`)
	if err != nil {
		t.Fatalf("list filtered games: %v", err)
	}
	if len(page.Games) != 1 || page.Games[0].GameID != "game-2" {
		t.Fatalf("filtered games = %+v, want only game-2", page.Games)
	}

	page, err = store.ListGames(context.Background(), 10, "", "")
	if err != nil {
		t.Fatalf("list all games: %v", err)
	}
	if len(page.Games) != 3 {
		t.Fatalf("all games = %d, want 3", len(page.Games))
	}
}

func TestListGamesPaginates(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	for i := 1; i <= 3; i++ {
		if err := store.CreateGame(context.Background(), testGame(fmt.Sprintf("game-%d", i))); err != nil {
			t.Fatalf("create game %d: %v", i, err)
		}
	}

	first, err := store.ListGames(context.Background(), 2, "", "")
	if err != nil {
		t.Fatalf("list first page: %v", err)
	}
	if len(first.Games) != 2 {
		t.Fatalf("first page = %d games, want 2", len(first.Games))
	}
	if first.NextPageToken != "game-2" {
		t.Fatalf("next page token = %q, want %q", first.NextPageToken, "game-2")
	}

	second, err := store.ListGames(context.Background(), 2, first.NextPageToken, "")
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(second.Games) != 1 || second.Games[0].GameID != "game-3" {
		t.Fatalf("second page = %+v, want only game-3", second.Games)
	}
	if second.NextPageToken != "" {
		t.Fatalf("next page token = %q, want empty", second.NextPageToken)
	}
}

func TestListGamesRejectsBadFilter(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	cases := []string{
		`status = `,
		`season = "WINTER"`,
	}
	for _, filter := range cases {
		_, err := store.ListGames(context.Background(), 10, "", filter)
		if err == nil {
			t.Fatalf("filter %q: expected error", filter)
		}
		var domainErr *errors.Error
		if !stderrors.As(err, &domainErr) || domainErr.Code != errors.CodeInvalidFilter {
			t.Fatalf("filter %q: err = %v, want INVALID_FILTER", filter, err)
		}
	}
}

func testGame(gameID string) storage.Game {
	now := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	return storage.Game{
		GameID:      gameID,
		Status:      storage.StatusActive,
		PlayerCount: 2,
		GameStateID: 1,
		State:       []byte(`{"gameStateId":1}`),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
