package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ringside-tui/ringside/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available bouts",
	Long:  `Shows every bout that can be started with 'ringside play'.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No bouts available.")
		return
	}

	fmt.Println("Available bouts:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Players", "Title")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "-------", "-----")

	for _, g := range games {
		players := "1"
		if g.Multi {
			players = "2"
		}
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, g.ID, players, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'ringside play <id>' to fight.")
}
