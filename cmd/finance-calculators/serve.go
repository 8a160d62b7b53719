package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iwvelando/finance-calculators/internal/history"
	"github.com/iwvelando/finance-calculators/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var address, engine string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.conf.Server
			if address != "" {
				cfg.Address = address
			}
			if engine != "" {
				cfg.Engine = engine
			}
			cfg.Version = version
			if err := cfg.Normalize(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	cmd.Flags().StringVar(&engine, "engine", "", "HTTP engine override: net or fasthttp")
	return cmd
}

func (a *app) serve(ctx context.Context, cfg server.Config) error {
	calc, err := a.newCalculator()
	if err != nil {
		return err
	}

	store, err := history.Open(ctx, a.conf.History, a.recorder, a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			a.logger.Warn("failed to close history store", zap.String("op", "main.serve"), zap.Error(closeErr))
		}
	}()

	handler, err := server.NewHandler(a.logger, server.Options{
		Calculator:  calc,
		History:     store,
		Metrics:     a.recorder,
		Sliders:     a.conf.Sliders,
		MaxBodySize: cfg.BodySizeBytes(),
		Version:     cfg.Version,
	})
	if err != nil {
		return err
	}
	return server.Run(ctx, cfg, handler, a.logger)
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.conf.WriteYAML(a.stdout)
		},
	}
}
