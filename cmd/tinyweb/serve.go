package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/tinyweb"
	"github.com/dmitrymomot/tinyweb/cmd/tinyweb/internal/site"
	"github.com/dmitrymomot/tinyweb/middlewares"
	"github.com/dmitrymomot/tinyweb/pkg/config"
	"github.com/dmitrymomot/tinyweb/pkg/logger"
)

func newServeCommand() *cobra.Command {
	var (
		configPath string
		address    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo site",
		Long: `Serve loads the configuration, builds the demo application and blocks
until SIGINT or SIGTERM.

Example:
  tinyweb serve --config tinyweb.yaml
  TINYWEB_LOG_LEVEL=debug tinyweb serve --addr :3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&address, "addr", "", "listen address (overrides config)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	app, err := site.New(cfg, log)
	if err != nil {
		return err
	}

	opts := []tinyweb.RunOption{
		tinyweb.Logger(log),
		tinyweb.ShutdownTimeout(cfg.ShutdownTimeout),
	}
	if ctx != nil {
		opts = append(opts, tinyweb.WithContext(ctx))
	}
	if cfg.Sentry.DSN != "" {
		opts = append(opts, tinyweb.ShutdownHook(func(context.Context) error {
			sentry.Flush(2 * time.Second)
			return nil
		}))
	}

	if err := app.Run(cfg.Address, opts...); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		return err
	}
	return nil
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return logger.NewWithSentry(
		logger.SentryConfig{
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			Release:     version,
			MinLevel:    slog.LevelWarn,
		},
		logger.WithLevel(level),
		logger.WithFormat(cfg.Log.Format),
		logger.WithOutput(os.Stderr),
		logger.WithExtractors(middlewares.RequestIDExtractor()),
	), nil
}
