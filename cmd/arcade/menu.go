package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Score history
  L            - Leaderboard
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30 --difficulty easy
  arcade menu --backend mock`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	closeLog := setupLogging(true)
	defer closeLog()

	name := playerName()
	sess := openSession(context.Background(), leaderboardConfig(), name)
	defer sess.close()

	cfg := runtimeConfig()
	for {
		result, err := tui.RunMenu(cfg, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = result.Config
		if result.Quit {
			return
		}

		var goBack bool
		switch result.Next {
		case tui.ScreenScoreboard:
			goBack, err = tui.RunScoreboard(sess.source(), cfg.ScreenW, cfg.ScreenH)
		case tui.ScreenLeaderboard:
			goBack, err = tui.RunLeaderboard(sess.service, cfg.ScreenW, cfg.ScreenH)
		case tui.ScreenGame:
			goBack, err = playFromMenu(result.GameID, sess, cfg)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if !goBack {
			return
		}
	}
}

// playFromMenu runs one game. It reports false when the player quit the
// arcade from inside the game.
func playFromMenu(gameID string, sess session, cfg core.RuntimeConfig) (bool, error) {
	game, err := createGame(gameID)
	if err != nil {
		return true, err
	}
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return tui.Run(game, sess.service, cfg)
}
