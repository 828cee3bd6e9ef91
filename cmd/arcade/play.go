package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/platform/tui"
	"github.com/vovakirdan/bomber-legend/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move (bomber) / steer, accelerate, brake (racing)
  Space/X      - Drop a bomb / boost
  P/Esc        - Pause
  R            - Restart after game over
  B            - Back (when paused or over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play bomber
  arcade play bomber --difficulty hard
  arcade play racing --config ./my-racing.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// createGame builds a registered game and applies --config and --difficulty.
func createGame(id string) (registry.Game, error) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}
	game, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	if err := registry.Configure(game, flagConfig, preset); err != nil {
		return nil, fmt.Errorf("load %s config: %w", id, err)
	}
	return game, nil
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	game, err := createGame(gameID)
	if err != nil {
		fail("%v", err)
	}

	closeLog := setupLogging(true)
	defer closeLog()

	sess := openSession(context.Background(), leaderboardConfig(), playerName())
	_, runErr := tui.Run(game, sess.service, runtimeConfig())
	sess.close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
