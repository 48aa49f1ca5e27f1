package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emlai/zenith-sub000/internal/engine"
	"github.com/emlai/zenith-sub000/internal/infrastructure/storage"
	"github.com/emlai/zenith-sub000/internal/server"
	"github.com/emlai/zenith-sub000/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type serveConfig struct {
	port     string
	load     string
	index    bool
	autosave bool
}

func newServeCmd(root *rootOptions) *cobra.Command {
	cfg := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the world and stream frames over WebSocket",
		Long: `Runs the game loop and an HTTP server with /ws (frames and commands),
/health, /version, /metrics and /debug endpoints.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), root, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.port, "port", envOr("ZN_PORT", "8080"), "HTTP port (env ZN_PORT)")
	cmd.Flags().StringVar(&cfg.load, "load", "", "load a save file instead of generating a new world")
	cmd.Flags().BoolVar(&cfg.index, "index", true, "record saves in the save index")
	cmd.Flags().BoolVar(&cfg.autosave, "autosave", true, "save the world on shutdown")

	return cmd
}

func runServe(parent context.Context, root *rootOptions, cfg *serveConfig) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	game, err := root.newGame(cfg.load)
	if err != nil {
		return err
	}

	if cfg.index {
		idx, err := storage.OpenIndex(root.indexPath())
		if err != nil {
			return err
		}
		defer idx.Close()
		game.SetSaveIndex(idx)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	engine.RegisterMetrics(registry)

	srv := server.New(game.Hub, game, registry, ":"+cfg.port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := game.Run(gctx); err != nil {
			return err
		}
		// Run вернулся: мир больше не меняется, можно сохранять.
		if !cfg.autosave {
			return nil
		}
		info, err := game.Save(context.Background(), game.SavePath(time.Now()))
		if err != nil {
			return err
		}
		logger.Log.WithFields(logrus.Fields{"path": info.Path, "bytes": info.Bytes}).Info("Autosaved")
		return nil
	})
	g.Go(func() error {
		return srv.Run(gctx)
	})

	return g.Wait()
}
