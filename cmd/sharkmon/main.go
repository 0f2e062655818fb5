// cmd/sharkmon/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tamzrod/sharkmon/internal/collector"
	"github.com/tamzrod/sharkmon/internal/config"
	"github.com/tamzrod/sharkmon/internal/poller"
	"github.com/tamzrod/sharkmon/internal/reading"
	"github.com/tamzrod/sharkmon/internal/status"
	"github.com/tamzrod/sharkmon/internal/web"
)

var (
	cfgPath  = flag.String("config", "", "Optional YAML config file")
	listen   = flag.String("listen", "", "Address for the built-in web server (default "+config.DefaultListen+")")
	index    = flag.String("index", "", "Static page served on / (default "+config.DefaultIndexFile+")")
	logLevel = flag.String("log-level", "info", "Log level (debug, info, warn, error)")

	verbose bool
	noWeb   bool
)

func init() {
	flag.BoolVar(&verbose, "v", false, "Print every smoothed reading to stdout")
	flag.BoolVar(&verbose, "verbose", false, "Print every smoothed reading to stdout")
	flag.BoolVar(&noWeb, "n", false, "Disable built in web server (implies verbose)")
	flag.BoolVar(&noWeb, "no-web", false, "Disable built in web server (implies verbose)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: sharkmon [flags] <meter host:port>, e.g. 192.168.1.100:502\n\n")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	// Setup structured logging
	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("Configuration error", "error", err)
		flag.Usage()
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("sharkmon stopped", "error", err)
		os.Exit(1)
	}
}

// loadConfig merges the optional config file with command line flags.
// Flags win over file values.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if *cfgPath != "" {
		c, err := config.Load(*cfgPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	if flag.NArg() > 1 {
		return nil, errors.New("exactly one meter endpoint expected")
	}
	if flag.NArg() == 1 {
		cfg.Meter.Endpoint = flag.Arg(0)
	}
	if verbose {
		cfg.Verbose = true
	}
	if noWeb {
		cfg.HTTP.Disabled = true
	}
	if *listen != "" {
		cfg.HTTP.Listen = *listen
	}
	if *index != "" {
		cfg.HTTP.IndexFile = *index
	}

	config.Normalize(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw := reading.NewGateway()
	tracker := status.NewTracker()

	opts := []poller.Option{
		poller.WithLogger(logger),
		poller.WithTracker(tracker),
	}
	if cfg.Verbose {
		opts = append(opts, poller.WithOnSample(printReading(os.Stdout, logger)))
	}

	runner, err := poller.Build(cfg, gw, opts...)
	if err != nil {
		return err
	}

	logger.Info("Starting sharkmon",
		"meter", cfg.Meter.Endpoint,
		"unit_id", cfg.Meter.UnitID,
		"interval", cfg.Poll.Interval(),
		"web", !cfg.HTTP.Disabled)

	if cfg.HTTP.Disabled {
		return runner.Run(ctx)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collector.NewMeterCollector(gw, tracker, cfg.Meter.Endpoint, logger),
	)

	server := web.NewServer(cfg.HTTP.Listen, web.NewRouter(web.Deps{
		Readings:  gw,
		Status:    tracker,
		Gatherer:  reg,
		IndexFile: cfg.HTTP.IndexFile,
		Logger:    logger,
	}))

	errCh := make(chan error, 2)

	go func() {
		errCh <- runner.Run(ctx)
	}()

	go func() {
		logger.Info("Starting web server", "address", cfg.HTTP.Listen)
		if err := server.ListenAndServe(); err != nil {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received, stopping gracefully...")
	case runErr = <-errCh:
	}
	stop()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("sharkmon stopped")
	return runErr
}

// printReading writes each snapshot as one JSON document per line.
func printReading(w io.Writer, logger *slog.Logger) func(reading.Reading) {
	enc := json.NewEncoder(w)
	return func(r reading.Reading) {
		if err := enc.Encode(r); err != nil {
			logger.Warn("stdout write failed", "error", err)
		}
	}
}
