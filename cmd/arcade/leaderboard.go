package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bomber-legend/internal/platform/tui"
	"github.com/vovakirdan/bomber-legend/internal/registry"
)

var flagInteractive bool

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard <game>",
	Short: "Show the ranked leaderboard for a game",
	Long: `Fetch the top entries for a game from the configured backend.

With --backend mock the table is seeded with sample entries.

Examples:
  arcade leaderboard bomber
  arcade leaderboard racing --backend postgres --dsn postgres://localhost/arcade
  arcade leaderboard bomber -i`,
	Args: cobra.ExactArgs(1),
	Run:  runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse all games in the terminal UI")
}

func runLeaderboard(_ *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	closeLog := setupLogging(flagInteractive)
	defer closeLog()

	ctx := context.Background()
	sess := openSession(ctx, leaderboardConfig(), playerName())
	defer sess.close()

	if flagInteractive {
		cfg := runtimeConfig()
		if _, err := tui.RunLeaderboard(sess.service, cfg.ScreenW, cfg.ScreenH); err != nil {
			fail("%v", err)
		}
		return
	}

	entries, err := sess.service.Leaderboard(ctx, gameID)
	if err != nil {
		fail("fetching leaderboard: %v", err)
	}

	info, _ := registry.Lookup(gameID)
	fmt.Printf("Leaderboard - %s", info.Title)
	if sess.service.Mock() {
		fmt.Print(" (offline)")
	}
	fmt.Println()
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores yet.")
		return
	}
	for _, e := range entries {
		fmt.Printf("  %-5s  %-18s  %10s\n", humanize.Ordinal(e.Rank), e.Name, humanize.Comma(int64(e.Score)))
	}
}
