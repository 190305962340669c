// ringside is a terminal boxing game: fight the CPU, a friend on the same
// keyboard, or anyone connected to the same SSH server.
//
// Usage:
//
//	ringside list              - List available bouts
//	ringside play <bout>       - Fight a bout
//	ringside menu              - Pick bouts interactively
//	ringside serve             - Start SSH server for remote and online play
//	ringside scores [bout]     - Show high scores or recent bouts
//	ringside config            - Print the default boxing config
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible bouts
//	--db <path>         - Set database path (default: ~/.ringside/ringside.db)
//	--log-level <lvl>   - debug, info, warn or error
//
// Defaults come from RINGSIDE_* environment variables when set.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ringside-tui/ringside/internal/config"

	// Import games to register them
	_ "github.com/ringside-tui/ringside/internal/games/boxing"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// env holds the RINGSIDE_* settings; flags default to it.
	env = loadEnv()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ringside",
	Short: "Ringside - boxing in your terminal",
	Long: `Ringside is a terminal boxing game. Fight the CPU at four difficulty
levels, share the keyboard with a friend, or host an SSH server where
players meet through join codes.

Available commands:
  list     - Show all available bouts
  play     - Fight a bout directly
  menu     - Interactive bout picker
  serve    - Start SSH server for remote and online play
  scores   - View high scores and recent bouts
  config   - Print the default boxing config

Examples:
  ringside list
  ringside play boxing --difficulty hard
  ringside play boxing_duel
  ringside menu
  ringside serve --ssh :2222
  ringside scores boxing`,
	SilenceUsage: true,
}

// loadEnv reads the environment, falling back to built-in defaults when a
// variable does not parse.
func loadEnv() config.Env {
	e, err := config.LoadEnv()
	if err == nil {
		return e
	}
	fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	return config.Env{
		DBPath:      "~/.ringside/ringside.db",
		FPS:         60,
		Difficulty:  string(config.DifficultyNormal),
		SSHAddr:     ":23234",
		IdleTimeout: 30 * time.Minute,
		LogLevel:    "info",
		LogFile:     "~/.ringside/ringside.log",
	}
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", env.FPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", env.DBPath, "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
