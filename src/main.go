package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"monovator/src/config"
	"monovator/src/console"
	"monovator/src/dispatch"
	"monovator/src/logging"

	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	envFile := flag.String("env", ".env", "Path to .env file with MONOVATOR_* settings")
	carID := flag.String("id", "", "Identifier of the car")
	numFloors := flag.Int("floors", config.NumFloors, "Number of floors")
	startFloor := flag.Int("start", config.StartFloor, "Floor the car starts at")
	travel := flag.Duration("travel", config.TravelDuration, "Travel time per trip")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Also write logs to this file")
	demo := flag.Bool("demo", true, "Run the scripted request simulation")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// Flags given on the command line take precedence over files and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "id":
			cfg.CarID = *carID
		case "floors":
			cfg.NumFloors = *numFloors
		case "start":
			cfg.StartFloor = *startFloor
		case "travel":
			cfg.TravelDuration = *travel
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-file":
			cfg.LogFile = *logFile
		case "demo":
			cfg.Demo = *demo
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	closeLog, err := logging.Init(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg); err != nil {
		slog.Error("Exiting", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	printer := console.NewPrinter(os.Stdout)
	engine, err := dispatch.New(cfg, dispatch.WithEventHandler(printer.Event))
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return engine.Run(ctx)
	})
	if cfg.Demo {
		g.Go(func() error {
			return console.RunDemo(ctx, engine, cfg.DemoSteps, printer)
		})
	}
	g.Go(func() error {
		return console.NewMenu(engine, cfg.NumFloors, os.Stdin, printer).Run(ctx)
	})

	slog.Info("Elevator ready", "car", cfg.CarID, "floors", cfg.NumFloors)
	return g.Wait()
}
