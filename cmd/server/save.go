package main

import (
	"context"
	"fmt"
	"time"

	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/emlai/zenith-sub000/internal/infrastructure/storage"
	"github.com/spf13/cobra"
)

type saveConfig struct {
	out     string
	load    string
	turns   int
	explore int
	index   bool
}

func newSaveCmd(root *rootOptions) *cobra.Command {
	cfg := &saveConfig{}

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Generate a world and write it to a save file",
		Long: `Generates a world (or loads one), materializes the areas within --explore
areas of the player, simulates --turns turns and writes a save file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSave(cmd, root, cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.out, "out", "o", "", "output file (default: timestamped file in --save-dir)")
	cmd.Flags().StringVar(&cfg.load, "load", "", "start from a save file")
	cmd.Flags().IntVar(&cfg.turns, "turns", 0, "turns to simulate before saving")
	cmd.Flags().IntVar(&cfg.explore, "explore", 1, "radius in areas to materialize around the player")
	cmd.Flags().BoolVar(&cfg.index, "index", true, "record the save in the save index")

	return cmd
}

func runSave(cmd *cobra.Command, root *rootOptions, cfg *saveConfig) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

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

	pos, level := game.PlayerPos()
	center := domain.GlobalToArea(pos)
	for dy := -cfg.explore; dy <= cfg.explore; dy++ {
		for dx := -cfg.explore; dx <= cfg.explore; dx++ {
			game.World.GetOrCreateArea(center.Shift(dx, dy), level)
		}
	}
	for i := 0; i < cfg.turns; i++ {
		if err := game.Tick(ctx); err != nil {
			return err
		}
	}

	path := cfg.out
	if path == "" {
		path = game.SavePath(time.Now())
	}
	info, err := game.Save(ctx, path)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "saved %s: %d bytes, %d areas, %d creatures\n",
		info.Path, info.Bytes, info.Areas, info.Creatures)
	return nil
}
