package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-engine/model"
	"github.com/sheikhrachel/gol-engine/runner"
	"github.com/sheikhrachel/gol-engine/tui"
	"github.com/sheikhrachel/gol-engine/utils"
)

// initializeGame builds the grid described by config: the pattern if one is
// given, a random fill otherwise.
func initializeGame(config utils.Config) *model.Grid {
	topology := model.Bounded
	if config.Toroidal {
		topology = model.Toroidal
	}
	grid := model.NewGrid(model.WithTopology(topology), model.WithWorkers(config.Workers))

	if config.Pattern == "" {
		grid.Resize(config.Width, config.Height)
		grid.Randomize(rand.New(rand.NewSource(time.Now().UnixNano())), config.RandomDensity)
		return grid
	}

	lines := model.SplitPopulation(config.Pattern)
	w, h := model.PatternSize(lines)
	grid.Resize(max(w, config.Width), max(h, config.Height))
	grid.Populate(lines)
	return grid
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, grid *model.Grid) {
	fmt.Printf("Topology: %s | Speed: %d gen/sec | Workers: %d\n",
		grid.Topology(), config.Speed, config.Workers)
	fmt.Printf("Grid: %dx%d | Initial living cells: %d\n",
		grid.GetWidth(), grid.GetHeight(), grid.Population())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
}

// displayGameStatus shows the current game status
func displayGameStatus(stats *utils.Stats, snap runner.Snapshot) {
	status := "Active"
	if snap.Stagnant {
		status = "Stagnant"
	}
	if snap.Population() == 0 {
		status = "Extinct"
	}
	fmt.Printf("%s | Status: %s\n", stats, status)
	fmt.Printf("Runtime: %.1fs\n\n", time.Since(stats.StartTime).Seconds())
}

// runConsole steps the grid on a timer and dumps every generation to stdout.
func runConsole(ctx context.Context, config utils.Config) error {
	var (
		grid     = initializeGame(config)
		renderer = &model.TerminalRenderer{}
		stats    = utils.NewStats()
		last     = time.Now()
		r        *runner.Runner
	)
	displayGameInfo(config, grid)

	onStep := func(snap runner.Snapshot) {
		now := time.Now()
		stats.Update(snap.Generation, snap.Population(), snap.Width*snap.Height, now.Sub(last))
		last = now
		if config.Quiet {
			return
		}
		r.View(func(g *model.Grid) {
			renderer.Clear(os.Stdout)
			if err := renderer.Display(os.Stdout, g); err != nil {
				fmt.Println("Error rendering grid:", err)
			}
		})
		displayGameStatus(stats, snap)
	}

	r = runner.New(grid,
		runner.WithInterval(config.Interval()),
		runner.WithStopOnStagnation(config.StopOnStagnation),
		runner.WithOnStep(onStep),
	)

	err := r.Run(ctx, config.MaxGenerations)
	switch {
	case err == nil:
		fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
	case errors.Cause(err) == runner.ErrStagnant:
		fmt.Printf("\n🔁 Stopped: %v\n", err)
	case errors.Is(err, context.Canceled):
		fmt.Println("\n🛑 Shutting down gracefully...")
	default:
		return errors.Wrap(err, "[runConsole] run failed")
	}

	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		stats.Generation, time.Since(stats.StartTime).Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)
	return nil
}

// runInteractive opens the terminal viewer until the user quits.
func runInteractive(ctx context.Context, config utils.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runInteractive] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[runInteractive] failed to initialize screen")
	}
	defer screen.Fini()
	screen.EnableMouse()

	r := runner.New(initializeGame(config),
		runner.WithInterval(config.Interval()),
		runner.WithOnStep(tui.Notifier(screen)),
	)
	return tui.New(screen, r, config).Run(ctx)
}
