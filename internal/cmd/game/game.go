// Package game parses game command flags and drives the tableau engine
// against a local snapshot store.
package game

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/evermeadow/internal/errors"
	engine "github.com/louisbranch/evermeadow/internal/game"
	"github.com/louisbranch/evermeadow/internal/id"
	entrypoint "github.com/louisbranch/evermeadow/internal/platform/cmd"
	"github.com/louisbranch/evermeadow/internal/storage"
	"github.com/louisbranch/evermeadow/internal/storage/sqlite"
)

// Config holds game command configuration.
type Config struct {
	StoragePath string `env:"EVERMEADOW_STORAGE_PATH" envDefault:"evermeadow.db"`
	Locale      string `env:"EVERMEADOW_LOCALE" envDefault:"en-US"`
}

// ParseConfig parses environment and global flags into a Config. The
// returned args are the remaining subcommand arguments.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, []string, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, nil, err
	}
	fs.StringVar(&cfg.StoragePath, "db", cfg.StoragePath, "path to the SQLite game database")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for user-facing error messages")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, nil, err
	}
	return cfg, fs.Args(), nil
}

// Run executes one game subcommand.
func Run(ctx context.Context, cfg Config, args []string, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, func(ctx context.Context) error {
		return dispatch(ctx, cfg, args, out)
	})
}

func dispatch(ctx context.Context, cfg Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: game [flags] <new|show|play|moves|list>")
	}
	switch args[0] {
	case "new":
		return runNew(ctx, cfg, args[1:], out)
	case "show":
		return runShow(ctx, cfg, args[1:], out)
	case "play":
		return runPlay(ctx, cfg, args[1:], out)
	case "moves":
		return runMoves(ctx, cfg, args[1:], out)
	case "list":
		return runList(ctx, cfg, args[1:], out)
	default:
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

func runNew(ctx context.Context, cfg Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	players := fs.String("players", "", "comma-separated player names")
	seed := fs.Int64("seed", 0, "deck shuffle seed (0 = random)")
	pearlbrook := fs.Bool("pearlbrook", false, "enable the river expansion content")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return err
	}

	var names []string
	for _, name := range strings.Split(*players, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	gs, err := engine.NewGame(engine.NewGameInput{
		PlayerNames: names,
		Seed:        *seed,
		Options:     engine.GameOptions{Pearlbrook: *pearlbrook},
	})
	if err != nil {
		return localize(cfg, err)
	}

	gameID, err := id.NewID()
	if err != nil {
		return fmt.Errorf("generate game id: %w", err)
	}
	state, err := gs.ToJSON(true)
	if err != nil {
		return fmt.Errorf("serialize game: %w", err)
	}

	store, err := sqlite.Open(cfg.StoragePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.CreateGame(ctx, storage.Game{
		GameID:      gameID,
		Status:      gameStatus(gs),
		PlayerCount: len(gs.Players),
		Pearlbrook:  gs.Options.Pearlbrook,
		GameStateID: gs.GameStateID,
		State:       state,
	}); err != nil {
		return err
	}

	fmt.Fprintf(out, "created game %s\n", gameID)
	return printView(out, gs, false)
}

func runShow(ctx context.Context, cfg Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	gameID := fs.String("game", "", "game id")
	private := fs.Bool("private", false, "include hands, secrets and deck contents")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.StoragePath)
	if err != nil {
		return err
	}
	defer store.Close()

	gs, _, err := loadGame(ctx, store, *gameID)
	if err != nil {
		return localize(cfg, err)
	}
	return printView(out, gs, *private)
}

func runPlay(ctx context.Context, cfg Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	gameID := fs.String("game", "", "game id")
	inputPath := fs.String("input", "-", "path to a JSON game input, - for stdin")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return err
	}

	data, err := readInput(*inputPath)
	if err != nil {
		return err
	}
	var input engine.GameInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("decode game input: %w", err)
	}

	store, err := sqlite.Open(cfg.StoragePath)
	if err != nil {
		return err
	}
	defer store.Close()

	gs, record, err := loadGame(ctx, store, *gameID)
	if err != nil {
		return localize(cfg, err)
	}

	next, err := gs.Next(&input)
	if err != nil {
		return localize(cfg, err)
	}

	state, err := next.ToJSON(true)
	if err != nil {
		return fmt.Errorf("serialize game: %w", err)
	}
	record.Status = gameStatus(next)
	record.GameStateID = next.GameStateID
	record.State = state
	record.UpdatedAt = time.Now().UTC()
	if err := store.UpdateGame(ctx, record); err != nil {
		return err
	}

	return printView(out, next, false)
}

func runMoves(ctx context.Context, cfg Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("moves", flag.ContinueOnError)
	gameID := fs.String("game", "", "game id")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.StoragePath)
	if err != nil {
		return err
	}
	defer store.Close()

	gs, _, err := loadGame(ctx, store, *gameID)
	if err != nil {
		return localize(cfg, err)
	}

	encoded, err := json.MarshalIndent(gs.PossibleGameInputs(), "", "  ")
	if err != nil {
		return fmt.Errorf("serialize moves: %w", err)
	}
	fmt.Fprintln(out, string(encoded))
	return nil
}

func runList(ctx context.Context, cfg Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	filter := fs.String("filter", "", `AIP-160 filter, e.g. status = "ACTIVE"`)
	pageSize := fs.Int("page-size", 50, "maximum games per page")
	pageToken := fs.String("page-token", "", "token from a previous page")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.StoragePath)
	if err != nil {
		return err
	}
	defer store.Close()

	page, err := store.ListGames(ctx, *pageSize, *pageToken, *filter)
	if err != nil {
		return localize(cfg, err)
	}
	for _, game := range page.Games {
		fmt.Fprintf(out, "%s\t%s\t%d players\tstate %d\t%s\n",
			game.GameID, game.Status, game.PlayerCount,
			game.GameStateID, game.UpdatedAt.Format(time.RFC3339))
	}
	if page.NextPageToken != "" {
		fmt.Fprintf(out, "next page token: %s\n", page.NextPageToken)
	}
	return nil
}

func loadGame(ctx context.Context, store *sqlite.Store, gameID string) (*engine.GameState, storage.Game, error) {
	if strings.TrimSpace(gameID) == "" {
		return nil, storage.Game{}, fmt.Errorf("-game is required")
	}
	record, err := store.GetGame(ctx, gameID)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return nil, storage.Game{}, errors.WithMetadata(errors.CodeNotFound,
				fmt.Sprintf("game %s not found", gameID),
				map[string]string{"game_id": gameID})
		}
		return nil, storage.Game{}, err
	}
	gs, err := engine.FromJSON(record.State)
	if err != nil {
		return nil, storage.Game{}, fmt.Errorf("decode stored game: %w", err)
	}
	return gs, record, nil
}

func printView(out io.Writer, gs *engine.GameState, private bool) error {
	view, err := gs.ToJSON(private)
	if err != nil {
		return fmt.Errorf("serialize game: %w", err)
	}
	var pretty map[string]any
	if err := json.Unmarshal(view, &pretty); err != nil {
		return fmt.Errorf("serialize game: %w", err)
	}
	encoded, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize game: %w", err)
	}
	fmt.Fprintln(out, string(encoded))
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func gameStatus(gs *engine.GameState) string {
	if gs.IsGameOver() {
		return storage.StatusEnded
	}
	return storage.StatusActive
}

// localize rewrites domain errors with the catalog message for the
// configured locale, going through the shared status mapping so the
// CLI surfaces the same user message a client would see. Other errors
// pass through unchanged.
func localize(cfg Config, err error) error {
	var domainErr *errors.Error
	if !stderrors.As(err, &domainErr) {
		return err
	}
	st := status.Convert(errors.HandleError(err, cfg.Locale))
	for _, detail := range st.Details() {
		if msg, ok := detail.(*errdetails.LocalizedMessage); ok {
			return stderrors.New(msg.Message)
		}
	}
	return stderrors.New(st.Message())
}
