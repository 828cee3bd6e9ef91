// arcade runs the bomb game and the racing game in the terminal, locally or
// over SSH, with a shared leaderboard.
//
// Usage:
//
//	arcade list                  - List available games
//	arcade play <game>           - Play a game
//	arcade menu                  - Pick games interactively
//	arcade scores <game>         - Show stored score history
//	arcade leaderboard <game>    - Show the ranked leaderboard
//	arcade login                 - Sign in and print the profile
//	arcade serve                 - Start the SSH server
//	arcade sim <game>            - Run a game headless on a fixed clock
//
// Global flags:
//
//	--fps <rate>          - Tick rate (default: 60)
//	--seed <value>        - RNG seed for reproducible runs
//	--db <path>           - sqlite path (default: ~/.arcade/scores.db)
//	--log-level <level>   - debug, info, warn or error
//	--backend <name>      - leaderboard backend: sqlite, postgres or mock
//	--dsn <dsn>           - Postgres connection string
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/bomber-legend/internal/games/bomber"
	_ "github.com/vovakirdan/bomber-legend/internal/games/racing"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagBackend  string
	flagDSN      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Bomber Legend - terminal bomb and racing games",
	Long: `Bomber Legend is a terminal arcade with a grid bomb game and a
pseudo-3D racer, playable locally or over SSH.

Examples:
  arcade list
  arcade play bomber --difficulty hard
  arcade play racing
  arcade menu
  arcade leaderboard bomber --backend mock
  arcade serve --config server.toml
  arcade sim racing --seconds 60 --seed 7`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to the sqlite scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "sqlite", "Leaderboard backend: sqlite, postgres, mock")
	rootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", "", "Postgres connection string for --backend postgres")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}
