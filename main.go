package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/gol-engine/utils"
)

const defaultConfigFile = "config.json"

// parseConfig loads the config file and applies command-line overrides.
func parseConfig(args []string) (utils.Config, error) {
	fs := flag.NewFlagSet("gol", flag.ContinueOnError)
	var (
		configFile  = fs.String("config", defaultConfigFile, "path to a JSON config file")
		width       = fs.Int("width", 0, "grid width in cells")
		height      = fs.Int("height", 0, "grid height in cells")
		toroidal    = fs.Bool("toroidal", false, "wrap cells across the grid edges")
		speed       = fs.Int("speed", 0, "generations per second")
		generations = fs.Int("generations", 0, "stop after this many generations (0 = no limit)")
		pattern     = fs.String("pattern", "", "population text, e.g. ...n.0.n.0.")
		workers     = fs.Int("workers", 0, "goroutines per step (0 = one per CPU)")
		interactive = fs.Bool("interactive", false, "open the terminal viewer")
		quiet       = fs.Bool("quiet", false, "print only the final summary")
		logFile     = fs.String("log", "", "write diagnostics to this file")
	)
	if err := fs.Parse(args); err != nil {
		return utils.Config{}, err
	}

	config, err := utils.LoadConfig(*configFile)
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			return config, err
		}
		fmt.Printf("Using default configuration (%s not found)\n", *configFile)
		config = utils.DefaultConfig()
	}

	// Only flags given on the command line override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			config.Width = *width
		case "height":
			config.Height = *height
		case "toroidal":
			config.Toroidal = *toroidal
		case "speed":
			config.Speed = *speed
		case "generations":
			config.MaxGenerations = *generations
		case "pattern":
			config.Pattern = *pattern
		case "workers":
			config.Workers = *workers
		case "interactive":
			config.Interactive = *interactive
		case "quiet":
			config.Quiet = *quiet
		case "log":
			config.LogFile = *logFile
		}
	})
	return config, config.Validate()
}

// setupLogging routes diagnostics to path. With no path, interactive runs
// discard them so they don't tear the screen.
func setupLogging(config utils.Config) (*os.File, error) {
	if config.LogFile == "" {
		if config.Interactive {
			log.SetOutput(io.Discard)
		}
		return nil, nil
	}
	f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "[setupLogging] failed to open log file: %+v", config.LogFile)
	}
	log.SetOutput(f)
	return f, nil
}

func main() {
	config, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	logFile, err := setupLogging(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	eg, ctx := errgroup.WithContext(context.Background())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	eg.Go(func() error {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	eg.Go(func() error {
		defer cancel()
		if config.Interactive {
			return runInteractive(ctx, config)
		}
		return runConsole(ctx, config)
	})

	if err := eg.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
