package main

import (
	"context"
	"fmt"

	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/emlai/zenith-sub000/internal/render"
	"github.com/spf13/cobra"
)

type renderConfig struct {
	load          string
	turns         int
	x, y          int
	width, height int
	around        bool
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	cfg := &renderConfig{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a region of the world as text",
		Long: `Generates (or loads) the world, optionally advances it, and prints a text
frame. Without --x/--y the frame is centered on the player.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.around = !cmd.Flags().Changed("x") && !cmd.Flags().Changed("y")
			return runRender(cmd, root, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.load, "load", "", "load a save file instead of generating a new world")
	cmd.Flags().IntVar(&cfg.turns, "turns", 0, "turns to simulate before rendering")
	cmd.Flags().IntVar(&cfg.x, "x", 0, "left edge of the region")
	cmd.Flags().IntVar(&cfg.y, "y", 0, "top edge of the region")
	cmd.Flags().IntVar(&cfg.width, "width", 79, "region width")
	cmd.Flags().IntVar(&cfg.height, "height", 23, "region height")

	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, cfg *renderConfig) error {
	if cfg.width <= 0 || cfg.height <= 0 {
		return fmt.Errorf("region size must be positive, got %dx%d", cfg.width, cfg.height)
	}
	game, err := root.newGame(cfg.load)
	if err != nil {
		return err
	}
	for i := 0; i < cfg.turns; i++ {
		if err := game.Tick(context.Background()); err != nil {
			return err
		}
	}

	pos, level := game.PlayerPos()
	region := domain.Rect{X: cfg.x, Y: cfg.y, W: cfg.width, H: cfg.height}
	if cfg.around {
		region.X, region.Y = pos.X-cfg.width/2, pos.Y-cfg.height/2
	}

	canvas := render.NewTextCanvas(region.W, region.H)
	game.Render(region, level, canvas)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, canvas.String())
	fmt.Fprintf(out, "turn %d  level %d  player (%d,%d)  areas %d  creatures %d\n",
		game.Turn(), level, pos.X, pos.Y, game.World.AreaCount(), game.World.CreatureCount())
	return nil
}
