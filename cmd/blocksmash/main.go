// blocksmash is a terminal block puzzle: place pieces on an 8x8 board,
// clear lines, chase score thresholds across levels.
//
// Usage:
//
//	blocksmash list              - List available game modes
//	blocksmash play [mode]       - Play (classic or timed)
//	blocksmash menu              - Start the interactive picker menu
//	blocksmash serve             - Start SSH server for remote play
//	blocksmash scores [mode]     - Show high scores
//	blocksmash slots             - Manage saved games
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.blocksmash/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/tui-blocksmash/internal/games/blocksmash"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocksmash",
	Short: "Block Smash - a block puzzle in your terminal",
	Long: `Block Smash is a terminal puzzle game: place pieces from a
three-slot tray on an 8x8 board, fill rows and columns to clear them,
and reach each level's score threshold before you run out of room.

Available commands:
  list     - Show available game modes
  play     - Play directly (classic or timed)
  menu     - Interactive picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  slots    - Manage saved games

Examples:
  blocksmash play
  blocksmash play timed --difficulty hard
  blocksmash menu
  blocksmash serve --ssh :2222
  blocksmash scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blocksmash/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(slotsCmd)
}

// resolveGameID maps the user-facing mode names to registry IDs.
func resolveGameID(mode string) (string, bool) {
	switch mode {
	case "", "classic", "blocksmash":
		return "blocksmash", true
	case "timed", "blocksmash_timed":
		return "blocksmash_timed", true
	default:
		return "", false
	}
}
