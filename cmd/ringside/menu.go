package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ringside-tui/ringside/internal/games/boxing"
	"github.com/ringside-tui/ringside/internal/platform/tui"
	"github.com/ringside-tui/ringside/internal/registry"
)

var flagMenuName string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start ringside with a bout picker",
	Long: `Start ringside in interactive menu mode.

Pick a bout and the CPU difficulty, then fight. After a bout ends, press
Esc to return to the menu and go again.

Controls:
  Up/Down/W/S   - Navigate menu
  Left/Right    - Change CPU difficulty
  Enter/Space   - Fight
  Tab           - Records
  Q             - Quit

Examples:
  ringside menu
  ringside menu --fps 30
  ringside menu --db ./ringside.db --name ALI`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagMenuName, "name", os.Getenv("USER"), "Name shown in your corner and on the records")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closer := fileLogger()
	defer closer.Close()

	store := openStore(logger)
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg, flagMenuName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Pick up any resize from the menu
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating bout: %v\n", err)
			continue
		}
		if bg, ok := game.(*boxing.Game); ok {
			bg.SetPreset(menuResult.Difficulty)
			bg.SetNames([2]string{flagMenuName, ""})
		}

		cfg.Seed = time.Now().UnixNano()

		backToMenu, err := tui.Run(game, store, cfg, tui.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running bout: %v\n", err)
		}
		if !backToMenu {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
