// Command prodinfo is an MCP server exposing product, currency, and weather
// tools over stdio. Logs go to stderr; stdout belongs to the protocol.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/helioslabs/prodinfo/pkg/config"
	"github.com/helioslabs/prodinfo/pkg/echo"
	"github.com/helioslabs/prodinfo/pkg/exchange"
	"github.com/helioslabs/prodinfo/pkg/products"
	"github.com/helioslabs/prodinfo/pkg/store/supabase"
	"github.com/helioslabs/prodinfo/pkg/tools/mcpserver"
	"github.com/helioslabs/prodinfo/pkg/tools/toolbox"
	"github.com/helioslabs/prodinfo/pkg/weather"
	"github.com/joho/godotenv"
)

const (
	serverName    = "prodinfo"
	serverVersion = "0.1.0"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config file (default: environment variables only)")
	envPath := flag.String("env", ".env", "path to .env file (ignored when absent)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if err := run(*cfgPath, *envPath, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, envPath string, debug bool) error {
	// Load .env before reading any configuration. A missing file is fine;
	// hosted deployments inject real environment variables instead.
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := config.FromEnv()
	if cfgPath != "" {
		var err error

		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	store, err := supabase.New(cfg.Supabase.URL, cfg.Supabase.Key)
	if err != nil {
		return err
	}

	aggregator := products.New(store, store,
		products.WithLogger(logger),
		products.WithMediaConcurrency(cfg.MediaConcurrency),
	)

	tb := toolbox.New()
	tb.Use(
		toolbox.Recovery(),
		toolbox.Timeout(timeout),
		toolbox.Logger(logger),
	)

	if err := tb.Register(
		echo.Tool(),
		exchange.New(exchange.WithBaseURL(cfg.Exchange.BaseURL)).Tool(),
		weather.New(weather.WithBaseURL(cfg.Weather.BaseURL)).Tool(),
		aggregator.Tool(),
	); err != nil {
		return err
	}

	srv := mcpserver.New(serverName, serverVersion)
	if err := srv.Register(tb); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving", "name", serverName, "version", serverVersion, "tools", len(tb.Tools()))

	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}
