package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/JocelynWeiss/theCell/internal/core"
	"github.com/JocelynWeiss/theCell/internal/platform/tui"
	"github.com/JocelynWeiss/theCell/internal/registry"
	"github.com/JocelynWeiss/theCell/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick game variants interactively",
	Long: `Start The Cell in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a variant.
Leaving a game (Esc/B) returns to the menu. Tab opens the run journal,
which keeps every run of this session in memory.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play variant
  Tab          - Run journal
  Q            - Quit

Examples:
  thecell menu
  thecell menu --difficulty easy`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	if _, err := loadConfig(logger); err != nil {
		fail("%v", err)
	}

	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open run journal", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsJournal {
			goBack, err := tui.RunJournal(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		cfg.Seed, cfg.SeedSet = resolveSeed(cmd)
		goBack, err := tui.Run(game, store, logger, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !goBack {
			return
		}
	}
}
