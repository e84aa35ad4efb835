package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocksmash/internal/config"
	"github.com/vovakirdan/tui-blocksmash/internal/core"
	"github.com/vovakirdan/tui-blocksmash/internal/entitlement"
	"github.com/vovakirdan/tui-blocksmash/internal/games/blocksmash"
	"github.com/vovakirdan/tui-blocksmash/internal/persist"
	"github.com/vovakirdan/tui-blocksmash/internal/platform/tui"
	"github.com/vovakirdan/tui-blocksmash/internal/registry"
	"github.com/vovakirdan/tui-blocksmash/internal/storage"
)

var (
	flagConfig      string
	flagDifficulty  string
	flagSlot        string
	flagResume      bool
	flagUndoCredits int
	flagVerbose     bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play Block Smash",
	Long: `Start playing. The mode is "classic" (default) or "timed".

Controls:
  WASD/Arrows  - Move the placement cursor
  1/2/3, Tab   - Select a tray piece
  Space/Enter  - Place the piece / confirm level completion
  U            - Undo the last placement
  P            - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Deeper undo history, more time, gentler clears
  normal - Default balance
  hard   - Shallow undo history, less time, bigger perfect bonus
  fixed  - Disable adaptive difficulty entirely

Progress is autosaved to the --slot save slot; quit any time and pick
the game back up with --resume.

Examples:
  blocksmash play
  blocksmash play timed
  blocksmash play --difficulty hard
  blocksmash play --config ./my-rules.yaml
  blocksmash play --resume
  blocksmash play --undo-credits 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagSlot, "slot", "auto", "Save slot for autosave")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume the game saved in the slot")
	playCmd.Flags().IntVar(&flagUndoCredits, "undo-credits", -1, "Undo credits for this game (-1 = unlimited)")
	playCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log autosave activity to stderr")
}

func runPlay(cmd *cobra.Command, args []string) {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	gameID, ok := resolveGameID(mode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'blocksmash list' to see available modes.")
		os.Exit(1)
	}

	if flagDifficulty != "" && !config.ValidPreset(config.DifficultyPreset(flagDifficulty)) {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (easy, normal, hard, fixed)\n", flagDifficulty)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Configure the game before creation
	blocksmash.SetConfigPath(flagConfig)
	blocksmash.SetDifficultyPreset(flagDifficulty)
	if flagUndoCredits >= 0 {
		blocksmash.SetUndoQuota(entitlement.NewConsumable(flagUndoCredits))
	} else {
		blocksmash.SetUndoQuota(entitlement.Unlimited{})
	}

	if flagResume {
		if store == nil {
			fmt.Fprintln(os.Stderr, "Error: cannot resume without a scores database")
			os.Exit(1)
		}
		progress, found, loadErr := store.LoadSlot(flagSlot)
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Error loading save slot %q: %v\n", flagSlot, loadErr)
			os.Exit(1)
		}
		if !found {
			fmt.Fprintf(os.Stderr, "No saved game in slot %q.\n", flagSlot)
			os.Exit(1)
		}
		// The saved mode wins over the mode argument.
		if progress.Mode == "timed" {
			gameID = "blocksmash_timed"
		} else {
			gameID = "blocksmash"
		}
		blocksmash.SetResume(&progress)
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Background autosave writer
	var writer *persist.Writer
	saveSlot := ""
	if store != nil {
		logger := log.New(io.Discard)
		if flagVerbose {
			logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "autosave"})
		}
		writer = persist.NewWriter(persist.DefaultWriterConfig(), store, logger)
		writer.Start()
		saveSlot = flagSlot
	}

	// Run the game
	runErr := tui.Run(game, store, writer, saveSlot, cfg)

	// Flush pending saves, then close the store
	if writer != nil {
		writer.Stop()
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
