package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bomber-legend/internal/registry"
	"github.com/vovakirdan/bomber-legend/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show stored score history for a game",
	Long: `Display the top scores recorded in the local sqlite database.

Examples:
  arcade scores bomber
  arcade scores racing --limit 25`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	info, _ := registry.Lookup(gameID)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	scores, err := store.TopScores(ctx, gameID, flagLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n\n", info.Title)
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-16s  %10s  %s\n", "Rank", "Player", "Score", "When")
	fmt.Printf("  %-4s  %-16s  %10s  %s\n", "----", "------", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-16s  %10s  %s\n", i+1, e.PlayerName, humanize.Comma(int64(e.Score)), humanize.Time(e.CreatedAt))
	}

	if stats, err := store.GetGameStats(ctx, gameID); err == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Best: %s over %s games\n", humanize.Comma(int64(stats.HighScore)), humanize.Comma(int64(stats.GamesCount)))
	}
}
