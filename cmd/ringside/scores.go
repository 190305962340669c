package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ringside-tui/ringside/internal/registry"
	"github.com/ringside-tui/ringside/internal/storage"
)

var (
	flagBouts  bool
	flagRecord string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [bout]",
	Short: "Show high scores or recent bouts",
	Long: `Display the top 10 high scores for the specified bout, the most
recent bouts, or one player's record.

Examples:
  ringside scores boxing
  ringside scores boxing_duel
  ringside scores --bouts
  ringside scores --record ALI`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBouts, "bouts", false, "List the most recent bouts")
	scoresCmd.Flags().StringVar(&flagRecord, "record", "", "Show the win/loss record of a player")
}

func runScores(cmd *cobra.Command, args []string) {
	if len(args) == 0 && !flagBouts && flagRecord == "" {
		_ = cmd.Help()
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagRecord != "":
		err = printRecord(store, flagRecord)
	case flagBouts:
		err = printBouts(store)
	default:
		err = printTopScores(store, args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printTopScores(store *storage.Store, gameID string) error {
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown bout %q, run 'ringside list' to see available bouts", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'ringside play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-12s  %-8d  %s\n", i+1, entry.Player, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printBouts(store *storage.Store) error {
	bouts, err := store.RecentBouts(10)
	if err != nil {
		return err
	}

	fmt.Println("Recent bouts")
	fmt.Println()
	if len(bouts) == 0 {
		fmt.Println("No bouts recorded yet.")
		return nil
	}

	fmt.Printf("  %-12s  %-12s  %-6s  %-5s  %-6s  %s\n", "Player", "Opponent", "Result", "Score", "CPU", "Date")
	fmt.Printf("  %-12s  %-12s  %-6s  %-5s  %-6s  %s\n", "------", "--------", "------", "-----", "---", "----")
	for _, b := range bouts {
		result := "LOST"
		if b.Won {
			result = "WON"
		}
		cpu := b.Difficulty
		if cpu == "" {
			cpu = "-"
		}
		fmt.Printf("  %-12s  %-12s  %-6s  %-5s  %-6s  %s\n",
			b.Player, b.Opponent, result,
			fmt.Sprintf("%d-%d", b.RoundsWon, b.RoundsLost),
			cpu, b.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRecord(store *storage.Store, player string) error {
	rec, err := store.Record(player)
	if err != nil {
		return err
	}
	if rec.Bouts == 0 {
		fmt.Printf("%s has no bouts on record.\n", player)
		return nil
	}
	fmt.Printf("%s: %d bouts, %d won, %d lost, %d rounds by KO\n", rec.Player, rec.Bouts, rec.Wins, rec.Losses, rec.KOs)
	return nil
}
