package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ringside-tui/ringside/internal/core"
	"github.com/ringside-tui/ringside/internal/games/boxing"
	"github.com/ringside-tui/ringside/internal/logging"
	"github.com/ringside-tui/ringside/internal/platform/tui"
	"github.com/ringside-tui/ringside/internal/registry"
	"github.com/ringside-tui/ringside/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play <bout>",
	Short: "Fight a bout",
	Long: `Start the specified bout.

Controls (vs CPU):
  W/A/S/D    - Move
  F          - Punch
  V          - Kick
  B          - Block
  P/Esc      - Pause
  R          - Restart (after the final bell)
  Q/Ctrl+C   - Quit

In a 2 player bout the second corner uses the arrow keys with K (punch),
L (kick) and J (block).

Difficulty options (CPU only):
  easy   - A slow, forgiving opponent that sharpens every round
  normal - A fair fight that sharpens every round
  hard   - Starts sharp and gets sharper
  fixed  - Stays at the config's skill level

Examples:
  ringside play boxing
  ringside play boxing --difficulty hard
  ringside play boxing_duel
  ringside play boxing --config ./my-boxing.yaml --name ALI`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom boxing config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", env.Difficulty, "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagName, "name", "", "Name shown in your corner and on the records")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown bout %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'ringside list' to see available bouts.")
		os.Exit(1)
	}

	// Settings apply to games created from here on
	boxing.SetConfigPath(flagConfig)
	boxing.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating bout: %v\n", err)
		os.Exit(1)
	}
	if bg, ok := game.(*boxing.Game); ok && flagName != "" {
		bg.SetNames([2]string{flagName, ""})
	}

	logger, closer := fileLogger()
	defer closer.Close()

	store := openStore(logger)

	_, runErr := tui.Run(game, store, runtimeConfig(), tui.WithLogger(logger))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running bout: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig sizes the bout to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// fileLogger logs local sessions to the log file, since the terminal
// belongs to the bout. Without a usable file logging is dropped.
func fileLogger() (*log.Logger, io.Closer) {
	logger, closer, err := logging.OpenFile(env.LogFile, "ringside", flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return logging.Discard(), io.NopCloser(nil)
	}
	return logger, closer
}

// openStore opens the records database. Bouts still run without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		logger.Warn("records disabled", "db", flagDBPath, "error", err)
		return nil
	}
	return store
}
