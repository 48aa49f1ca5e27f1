package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/emlai/zenith-sub000/internal/infrastructure/storage"
	"github.com/spf13/cobra"
)

type savesConfig struct {
	limit int
}

func newSavesCmd(root *rootOptions) *cobra.Command {
	cfg := &savesConfig{}

	cmd := &cobra.Command{
		Use:   "saves",
		Short: "List recorded saves, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSaves(cmd, root, cfg)
		},
	}

	cmd.Flags().IntVarP(&cfg.limit, "limit", "n", 20, "maximum number of saves to list (0 for all)")
	return cmd
}

func runSaves(cmd *cobra.Command, root *rootOptions, cfg *savesConfig) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	idx, err := storage.OpenIndex(root.indexPath())
	if err != nil {
		return err
	}
	defer idx.Close()

	records, err := idx.List(ctx, cfg.limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "no saves recorded")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSEED\tAREAS\tCREATURES\tBYTES\tPATH")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Seed, r.Areas, r.Creatures, r.Bytes, r.Path)
	}
	return tw.Flush()
}
