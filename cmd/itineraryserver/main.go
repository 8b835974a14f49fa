package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"itinerary-planner/internal/app"
)

func main() {
	opts, envFile, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "itineraryserver: %v\n", err)
		os.Exit(2)
	}
	if err := loadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "itineraryserver: %v\n", err)
		os.Exit(1)
	}

	// Graceful shutdown on Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "itineraryserver: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (app.Options, string, error) {
	var (
		opts    app.Options
		envFile string
	)
	set := flag.NewFlagSet("itineraryserver", flag.ContinueOnError)
	set.StringVar(&opts.ConfigPath, "config", "config.json", "path to the JSON or YAML config file")
	set.StringVar(&opts.LogDir, "log-dir", "data", "directory for the server log and its archives")
	set.StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the config")
	set.DurationVar(&opts.ReadTimeout, "read-timeout", 10*time.Second, "HTTP read timeout")
	set.DurationVar(&opts.ShutdownTimeout, "shutdown-timeout", 5*time.Second, "grace period for in-flight requests on shutdown")
	if err := set.Parse(args); err != nil {
		return app.Options{}, "", err
	}
	if set.NArg() > 0 {
		return app.Options{}, "", fmt.Errorf("unexpected arguments: %v", set.Args())
	}
	return opts, envFile, nil
}

// loadEnvFile exports the variables in path without overriding ones already
// set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
