package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bomber-legend/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the games you can play",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		printGames(registry.List())
	},
}

func printGames(games []registry.GameInfo) {
	if len(games) == 0 {
		fmt.Println("No games registered.")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tTITLE\t")
	for _, g := range games {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", g.ID, g.Title, g.Blurb)
	}
	tw.Flush()

	fmt.Println()
	fmt.Println("Start one with 'arcade play <id>' or browse with 'arcade menu'.")
}
