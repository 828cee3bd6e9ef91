package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/games/bomber"
	"github.com/vovakirdan/bomber-legend/internal/games/racing"
	"github.com/vovakirdan/bomber-legend/internal/loop"
	"github.com/vovakirdan/bomber-legend/internal/registry"
)

var flagSeconds float64

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Run a game headless on a simulated clock",
	Long: `Run a game without a terminal UI for a number of simulated seconds
and print the outcome. Time comes from a fixed-step clock, so a run with
the same --seed and --fps is reproducible.

The racer is driven by an autopilot that holds the throttle, boosts when
ready and steers back to the road center. The bomb game runs without input.

Examples:
  arcade sim bomber --seconds 30 --seed 7
  arcade sim racing --seconds 90 --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSeconds, "seconds", 30, "Simulated seconds to run")
}

// clockSetter is implemented by games that read a frame clock.
type clockSetter interface {
	SetClock(c loop.Clock)
}

// autopilot picks the held actions for the next tick.
func autopilot(game registry.Game) core.InputFrame {
	g, ok := game.(*racing.Game)
	if !ok || g.Sim() == nil {
		return core.NewInputFrame()
	}
	s := g.Sim()
	frame := core.NewInputFrame(core.ActionUp)
	switch {
	case s.PlayerX > 0.1:
		frame.Set(core.ActionLeft)
	case s.PlayerX < -0.1:
		frame.Set(core.ActionRight)
	}
	if s.BoostReady() && s.Speed > 0.8*s.MaxSpeed() {
		frame.Set(core.ActionFire)
	}
	return frame
}

func runSim(_ *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	closeLog := setupLogging(false)
	defer closeLog()

	game, err := createGame(gameID)
	if err != nil {
		fail("%v", err)
	}
	if flagFPS <= 0 {
		fail("--fps must be positive")
	}

	interval := time.Second / time.Duration(flagFPS)
	start := time.Unix(0, 0)
	if cs, ok := game.(clockSetter); ok {
		cs.SetClock(loop.NewStepClock(start, interval))
	}

	rc := core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed}.Normalized()
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	game.Reset(rc)

	var state core.GameState
	ticks := 0
	acc := loop.NewAccumulator(rc.StepSeconds(), 0.1)
	l := loop.New(acc, func(float64) {
		if state.GameOver {
			return
		}
		state = game.Step(autopilot(game)).State
		ticks++
	}, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frames := int(flagSeconds*float64(flagFPS)) + 1
	began := time.Now()
	if err := l.Run(ctx, loop.Frames(start, interval, frames)); err != nil {
		log.Warn("simulation interrupted", "error", err)
	}

	fmt.Printf("%s: %d ticks (%.1fs simulated, seed %d) in %s\n",
		game.Title(), ticks, float64(ticks)*rc.StepSeconds(), rc.Seed, time.Since(began).Round(time.Millisecond))
	fmt.Printf("  score %s  over %v  won %v\n", humanize.Comma(int64(state.Score)), state.GameOver, state.Won)

	switch g := game.(type) {
	case *bomber.Game:
		printBomberStats(g)
	case *racing.Game:
		printRacingStats(g)
	}
}

func printBomberStats(g *bomber.Game) {
	fmt.Printf("  intensity %.0f%%  entities %d\n", g.Intensity()*100, g.World().Len())
	fmt.Println()
	fmt.Printf("  %-10s  %8s  %10s  %10s  %10s\n", "System", "Runs", "Avg", "Max", "Total")
	for _, s := range g.World().Stats() {
		fmt.Printf("  %-10s  %8d  %10s  %10s  %10s\n", s.Name, s.ExecutionCount, s.AvgDuration, s.MaxDuration, s.TotalDuration)
	}
}

func printRacingStats(g *racing.Game) {
	s := g.Sim()
	fmt.Printf("  lap %d  standing %s of %d  speed %d\n", s.Lap, humanize.Ordinal(s.Standing()), s.TotalCars(), int(s.Speed/100))
	if s.BestLap > 0 {
		fmt.Printf("  last lap %.2fs  best lap %.2fs\n", s.LastLap, s.BestLap)
	}
	if s.Finished() {
		fmt.Printf("  finished %s\n", humanize.Ordinal(s.FinishPlace()))
	}
}
