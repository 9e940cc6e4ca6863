package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/JocelynWeiss/theCell/internal/core"
	"github.com/JocelynWeiss/theCell/internal/games/thecell"
	"github.com/JocelynWeiss/theCell/internal/platform/tui"
	"github.com/JocelynWeiss/theCell/internal/registry"
	"github.com/JocelynWeiss/theCell/internal/storage"
)

var (
	flagClassic bool
	flagJournal bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game variant",
	Long: `Start playing The Cell. The variant defaults to "thecell".

Controls:
  Arrows/WASD  - Step to the next room
  H/L          - Rotate your row west/east
  K/J          - Rotate your column north/south
  R            - Respawn after death, replay after the run ends
  N            - New board with a fresh seed
  P            - Pause
  ?            - Toggle full help
  Esc/B        - Leave the game
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Fewer deadly rooms, 5 lives, no fog
  normal - Default board, 3 lives
  hard   - More deadly rooms, a single life
  fixed  - Keep the configuration as loaded

Examples:
  thecell play
  thecell play --classic
  thecell play --seed 42 --difficulty hard
  thecell play --random --journal
  thecell play --config ./my-cell.yaml --log-file cell.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagClassic, "classic", false, "Play the classic 1966 board")
	playCmd.Flags().BoolVar(&flagJournal, "journal", false, "Show the run journal after quitting")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := thecell.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if flagClassic {
		gameID = thecell.ClassicGameID
	}

	if !registry.Exists(gameID) {
		fail("unknown game %q\nRun 'thecell list' to see available variants.", gameID)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	if _, err := loadConfig(logger); err != nil {
		fail("%v", err)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
	cfg.Seed, cfg.SeedSet = resolveSeed(cmd)

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	// The journal only lives for this process
	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open run journal", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting", "game", gameID, "seed", cfg.Seed)
	if _, err := tui.Run(game, store, logger, cfg); err != nil {
		fail("running game: %v", err)
	}

	if flagJournal && store != nil {
		if _, err := tui.RunJournal(store, width, height); err != nil {
			fail("%v", err)
		}
	}
}
