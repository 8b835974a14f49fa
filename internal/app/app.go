package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"itinerary-planner/config"
	"itinerary-planner/internal/activities"
	apiv1 "itinerary-planner/internal/api/v1"
	"itinerary-planner/internal/catalog"
	"itinerary-planner/internal/httpserver"
	"itinerary-planner/internal/logging"
	"itinerary-planner/internal/ui"
)

const (
	defaultConfigPath      = "config.json"
	defaultLogDir          = "data"
	defaultLogFileName     = "itineraryserver.log"
	defaultReadTimeout     = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

// Options controls how the application boots and where it loads configuration from.
type Options struct {
	ConfigPath      string
	LogDir          string
	LogFile         string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Run wires dependencies together and blocks until the provided context is cancelled
// or the HTTP server exits with an error.
func Run(ctx context.Context, opts Options) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	opts = opts.withDefaults()

	logFilePath := filepath.Join(opts.LogDir, opts.LogFile)
	logFile, err := configureLogging(logFilePath)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer logFile.Close()

	logger := logging.New()
	appCfg, err := loadConfig(opts.ConfigPath, logger)
	if err != nil {
		return err
	}

	store := activities.NewStore(appCfg.Form.DataPath)
	router := apiv1.NewRouter(apiv1.Options{
		Logger:         logger,
		Store:          store,
		Catalog:        catalog.Default(),
		AllowedOrigins: appCfg.Form.AllowedOrigins,
		Page: ui.PageOptions{
			BaseURL:    appCfg.Form.BaseURL,
			MapsAPIKey: appCfg.Form.MapsAPIKey,
		},
		RuntimeInfo: apiv1.RuntimeInfo{
			Name:        "itinerary-planner",
			Addr:        appCfg.Server.Addr,
			Port:        appCfg.Server.Port,
			ReadTimeout: opts.ReadTimeout.String(),
			DataPath:    store.Path(),
			BaseURL:     appCfg.Form.BaseURL,
		},
	})

	srv, err := httpserver.New(httpserver.Config{
		Addr:        appCfg.Server.Addr,
		Port:        appCfg.Server.Port,
		ReadTimeout: opts.ReadTimeout,
		Logger:      logger,
		Handler:     router,
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Printf("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// loadConfig reads the config file when present and always applies the
// environment on top.
func loadConfig(path string, logger logging.Logger) (config.Config, error) {
	cfg, err := config.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		logger.Printf("config %s not found, using defaults", path)
		cfg = config.Default()
	default:
		return config.Config{}, err
	}
	return cfg.ApplyEnv()
}

func (o Options) withDefaults() Options {
	if o.ConfigPath == "" {
		o.ConfigPath = defaultConfigPath
	}
	if o.LogDir == "" {
		o.LogDir = defaultLogDir
	}
	if o.LogFile == "" {
		o.LogFile = defaultLogFileName
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = defaultReadTimeout
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = defaultShutdownTimeout
	}
	return o
}
