package main

import (
	"fmt"
	"sort"

	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/emlai/zenith-sub000/internal/infrastructure/storage"
	"github.com/emlai/zenith-sub000/pkg/dungeon"
	"github.com/spf13/cobra"
)

type inspectConfig struct {
	full bool
}

func newInspectCmd(_ *rootOptions) *cobra.Command {
	cfg := &inspectConfig{}

	cmd := &cobra.Command{
		Use:   "inspect <save-file>",
		Short: "Show what a save file contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.full, "full", false, "decode the whole world, not just the header")
	return cmd
}

func runInspect(cmd *cobra.Command, path string, cfg *inspectConfig) error {
	h, err := storage.ReadHeader(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "file:       %s\n", path)
	fmt.Fprintf(out, "version:    %d\n", h.Version)
	fmt.Fprintf(out, "seed:       %d\n", h.Meta.Seed)
	fmt.Fprintf(out, "seed mode:  %s\n", dungeon.SeedMode(h.Meta.SeedMode))
	fmt.Fprintf(out, "saved at:   %s\n", h.Meta.Timestamp.UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "next index: %d\n", h.NextIndex)
	fmt.Fprintf(out, "areas:      %d\n", h.AreaCount)

	if !cfg.full {
		return nil
	}

	world, _, err := storage.LoadFile(path, domain.DefaultComponents())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "creatures:  %d\n", world.CreatureCount())

	perLevel := map[int]int{}
	for _, a := range world.Areas() {
		perLevel[a.Level]++
	}
	levels := make([]int, 0, len(perLevel))
	for l := range perLevel {
		levels = append(levels, l)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(levels)))
	for _, l := range levels {
		fmt.Fprintf(out, "  level %3d: %d areas\n", l, perLevel[l])
	}
	return nil
}
