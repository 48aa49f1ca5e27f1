package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/emlai/zenith-sub000/internal/config"
	"github.com/emlai/zenith-sub000/internal/engine"
	"github.com/emlai/zenith-sub000/internal/version"
	"github.com/emlai/zenith-sub000/pkg/dungeon"
	"github.com/emlai/zenith-sub000/pkg/logger"
	"github.com/emlai/zenith-sub000/pkg/utils"
	"github.com/spf13/cobra"
)

// rootOptions - флаги, общие для всех подкоманд.
type rootOptions struct {
	dataPath string
	seed     string
	seedMode string
	level    int
	saveDir  string
}

// NewRootCmd creates the root command for the zenith CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "zenith",
		Short:         "Zenith - lazily generated tile world",
		Long:          `Zenith generates an unbounded tile world area by area, simulates and lights it, and persists it in a compact binary format.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Сервер пишет логи в stdout, утилиты - в stderr, чтобы не портить вывод.
			if cmd.Name() != "serve" {
				logger.SetOutput(cmd.ErrOrStderr())
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dataPath, "data", "", "game data YAML (default: embedded)")
	cmd.PersistentFlags().StringVar(&opts.seed, "seed", "", "world seed: number or any string (default: random)")
	cmd.PersistentFlags().StringVar(&opts.seedMode, "seed-mode", "per_area", "area seeding: per_area | shared")
	cmd.PersistentFlags().IntVar(&opts.level, "level", 0, "starting level (0 surface, negative underground)")
	cmd.PersistentFlags().StringVar(&opts.saveDir, "save-dir", "saves", "directory for save files and the save index")

	// Add subcommands
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newViewCmd(opts))
	cmd.AddCommand(newRenderCmd(opts))
	cmd.AddCommand(newSaveCmd(opts))
	cmd.AddCommand(newInspectCmd(opts))
	cmd.AddCommand(newSavesCmd(opts))

	return cmd
}

// loadData читает игровые данные (встроенные, если путь пуст).
func (o *rootOptions) loadData() (*config.Config, error) {
	if o.dataPath == "" {
		return config.Default(), nil
	}
	return config.Load(o.dataPath)
}

// engineConfig собирает engine.Config из флагов.
func (o *rootOptions) engineConfig() (engine.Config, error) {
	cfg := engine.NewConfig()
	if o.seed != "" {
		cfg.Seed = parseSeed(o.seed)
	}
	mode, err := dungeon.ParseSeedMode(o.seedMode)
	if err != nil {
		return cfg, err
	}
	cfg.SeedMode = mode
	cfg.Level = o.level
	cfg.SaveDir = o.saveDir
	return cfg, nil
}

// indexPath - база индекса сохранений внутри save-dir.
func (o *rootOptions) indexPath() string {
	return filepath.Join(o.saveDir, "index.db")
}

// newGame создаёт новую игру или загружает сохранение, если load не пуст.
func (o *rootOptions) newGame(load string) (*engine.Game, error) {
	data, err := o.loadData()
	if err != nil {
		return nil, err
	}
	cfg, err := o.engineConfig()
	if err != nil {
		return nil, err
	}
	if load != "" {
		return engine.Load(load, cfg, data)
	}
	return engine.NewGame(cfg, data)
}

// parseSeed: число берётся как есть, любая другая строка хешируется.
func parseSeed(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return utils.StringToSeed(s)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
