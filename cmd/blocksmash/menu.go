package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocksmash/internal/core"
	"github.com/vovakirdan/tui-blocksmash/internal/entitlement"
	"github.com/vovakirdan/tui-blocksmash/internal/games/blocksmash"
	"github.com/vovakirdan/tui-blocksmash/internal/persist"
	"github.com/vovakirdan/tui-blocksmash/internal/platform/tui"
	"github.com/vovakirdan/tui-blocksmash/internal/registry"
	"github.com/vovakirdan/tui-blocksmash/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive picker menu",
	Long: `Start Block Smash in interactive menu mode.

Pick a mode, cycle the difficulty in place, or resume a saved game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Esc          - Back
  Q            - Quit

Examples:
  blocksmash menu
  blocksmash menu --fps 30
  blocksmash menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// One autosave writer for the whole menu session.
	var writer *persist.Writer
	if store != nil {
		writer = persist.NewWriter(persist.DefaultWriterConfig(), store, log.New(io.Discard))
		writer.Start()
	}

	// Menu loop
	for {
		selection, updatedCfg, selErr := tui.RunModeSelector(store, cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			break
		}
		cfg = updatedCfg

		// User backed out or quit
		if selection == nil {
			break
		}

		// Configure the game for this round
		blocksmash.SetDifficultyPreset(string(selection.Preset))
		blocksmash.SetUndoQuota(entitlement.Unlimited{})

		saveSlot := "auto"
		if selection.ResumeSlot != "" {
			saveSlot = selection.ResumeSlot
			progress, found, loadErr := store.LoadSlot(selection.ResumeSlot)
			if loadErr == nil && found {
				blocksmash.SetResume(&progress)
			}
		}

		// Create game instance
		game, err := registry.Create(selection.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Update seed for each game
		cfg.Seed = time.Now().UnixNano()

		// Run the game
		if err := tui.Run(game, store, writer, saveSlot, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if writer != nil {
		writer.Stop()
	}
	if store != nil {
		store.Close()
	}
}
