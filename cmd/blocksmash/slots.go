package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocksmash/internal/storage"
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Manage saved games",
	Long: `List and delete save slots.

Examples:
  blocksmash slots
  blocksmash slots delete auto`,
	Run: runSlotsList,
}

var slotsDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	Run:   runSlotsDelete,
}

func init() {
	slotsCmd.AddCommand(slotsDeleteCmd)
}

func runSlotsList(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	slots, err := store.ListSlots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing save slots: %v\n", err)
		os.Exit(1)
	}

	if len(slots) == 0 {
		fmt.Println("No saved games.")
		return
	}

	fmt.Printf("  %-10s  %-18s  %-10s  %-6s  %s\n", "Slot", "Mode", "Score", "Level", "Saved")
	fmt.Printf("  %-10s  %-18s  %-10s  %-6s  %s\n", "----", "----", "-----", "-----", "-----")
	for _, s := range slots {
		fmt.Printf("  %-10s  %-18s  %-10d  %-6d  %s\n",
			s.Slot, s.GameID, s.Score, s.Level, s.UpdatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Resume with 'blocksmash play --resume --slot <slot>'.")
}

func runSlotsDelete(_ *cobra.Command, args []string) {
	slot := args[0]

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.DeleteSlot(slot); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting slot %q: %v\n", slot, err)
		os.Exit(1)
	}
	fmt.Printf("Deleted save slot %q.\n", slot)
}
