package game

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	cfg, args, err := ParseConfig(fs, []string{"list"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.StoragePath != "evermeadow.db" {
		t.Fatalf("expected default storage path, got %q", cfg.StoragePath)
	}
	if cfg.Locale != "en-US" {
		t.Fatalf("expected default locale, got %q", cfg.Locale)
	}
	if len(args) != 1 || args[0] != "list" {
		t.Fatalf("expected subcommand args, got %v", args)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	cfg, args, err := ParseConfig(fs, []string{"-db", "custom.db", "-locale", "pt-BR", "show", "-game", "abc"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.StoragePath != "custom.db" {
		t.Fatalf("expected storage override, got %q", cfg.StoragePath)
	}
	if cfg.Locale != "pt-BR" {
		t.Fatalf("expected locale override, got %q", cfg.Locale)
	}
	if len(args) != 3 || args[0] != "show" {
		t.Fatalf("expected subcommand args, got %v", args)
	}
}

func TestDispatchRejectsUnknownSubcommand(t *testing.T) {
	cfg := testConfig(t)
	if err := dispatch(context.Background(), cfg, nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected missing subcommand error")
	}
	if err := dispatch(context.Background(), cfg, []string{"bogus"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected unknown subcommand error")
	}
}

func TestGameLifecycleThroughSubcommands(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	var out bytes.Buffer
	if err := dispatch(ctx, cfg, []string{"new", "-players", "alfred,bianca", "-seed", "42"}, &out); err != nil {
		t.Fatalf("new: %v", err)
	}
	gameID, view := splitNewOutput(t, out.String())

	if view.ActivePlayerID == "" {
		t.Fatal("expected an active player in the new game view")
	}
	if len(view.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(view.Players))
	}
	for _, p := range view.Players {
		if p.PlayerSecret != "" {
			t.Fatal("public view must not expose player secrets")
		}
	}

	out.Reset()
	if err := dispatch(ctx, cfg, []string{"show", "-game", gameID, "-private"}, &out); err != nil {
		t.Fatalf("show -private: %v", err)
	}
	if !strings.Contains(out.String(), "cardsInHand") {
		t.Fatal("private view should include hands")
	}

	out.Reset()
	if err := dispatch(ctx, cfg, []string{"moves", "-game", gameID}, &out); err != nil {
		t.Fatalf("moves: %v", err)
	}
	if !strings.Contains(out.String(), "PLACE_WORKER") {
		t.Fatal("expected worker placements among possible moves")
	}

	inputPath := filepath.Join(t.TempDir(), "input.json")
	move := fmt.Sprintf(`{"inputType":"PREPARE_FOR_SEASON","playerId":%q}`, view.ActivePlayerID)
	if err := os.WriteFile(inputPath, []byte(move), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	out.Reset()
	if err := dispatch(ctx, cfg, []string{"play", "-game", gameID, "-input", inputPath}, &out); err != nil {
		t.Fatalf("play: %v", err)
	}
	next := decodeView(t, out.String())
	if next.Players[0].CurrentSeason != "SPRING" {
		t.Fatalf("season = %q, want SPRING", next.Players[0].CurrentSeason)
	}
	if next.ActivePlayerID == view.ActivePlayerID {
		t.Fatal("expected the turn to pass after preparing for season")
	}

	out.Reset()
	if err := dispatch(ctx, cfg, []string{"list", "-filter", `status = "ACTIVE"`}, &out); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), gameID) {
		t.Fatalf("list output %q missing game id", out.String())
	}
}

func TestPlayLocalizesEngineErrors(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	var out bytes.Buffer
	if err := dispatch(ctx, cfg, []string{"new", "-players", "alfred,bianca", "-seed", "42"}, &out); err != nil {
		t.Fatalf("new: %v", err)
	}
	gameID, view := splitNewOutput(t, out.String())

	var waiting string
	for _, p := range view.Players {
		if p.PlayerID != view.ActivePlayerID {
			waiting = p.PlayerID
		}
	}
	inputPath := filepath.Join(t.TempDir(), "input.json")
	move := fmt.Sprintf(`{"inputType":"PREPARE_FOR_SEASON","playerId":%q}`, waiting)
	if err := os.WriteFile(inputPath, []byte(move), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	err := dispatch(ctx, cfg, []string{"play", "-game", gameID, "-input", inputPath}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected wrong player error")
	}
	if err.Error() != "It is not this player's turn" {
		t.Fatalf("err = %q, want localized wrong-turn message", err)
	}
}

func TestShowReportsMissingGame(t *testing.T) {
	cfg := testConfig(t)
	err := dispatch(context.Background(), cfg, []string{"show", "-game", "missing"}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected missing game error")
	}
	if err.Error() != "The requested resource was not found" {
		t.Fatalf("err = %q, want localized not-found message", err)
	}
}

type playerView struct {
	PlayerID      string `json:"playerId"`
	PlayerSecret  string `json:"playerSecret"`
	CurrentSeason string `json:"currentSeason"`
}

type gameView struct {
	GameStateID    int          `json:"gameStateId"`
	ActivePlayerID string       `json:"activePlayerId"`
	Players        []playerView `json:"players"`
}

func splitNewOutput(t *testing.T, output string) (string, gameView) {
	t.Helper()

	line, rest, ok := strings.Cut(output, "\n")
	if !ok {
		t.Fatalf("unexpected new output %q", output)
	}
	fields := strings.Fields(line)
	if len(fields) != 3 || fields[0] != "created" {
		t.Fatalf("unexpected new output line %q", line)
	}
	return fields[2], decodeView(t, rest)
}

func decodeView(t *testing.T, output string) gameView {
	t.Helper()

	var view gameView
	if err := json.Unmarshal([]byte(output), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	return view
}

func testConfig(t *testing.T) Config {
	t.Helper()

	return Config{
		StoragePath: filepath.Join(t.TempDir(), "games.db"),
		Locale:      "en-US",
	}
}
