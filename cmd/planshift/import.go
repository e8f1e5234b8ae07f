package main

import (
	"errors"
	"fmt"

	"github.com/smallbiznis/planshift/internal/config"
	"github.com/smallbiznis/planshift/internal/snapshot"
	"github.com/spf13/cobra"
)

var importSnapshotDir string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a snapshot directory into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.SnapshotDir
		if cmd.Flags().Changed("snapshot-dir") {
			dir = importSnapshotDir
		}
		if dir == "" {
			return errors.New("--snapshot-dir is required")
		}

		snap, err := snapshot.Load(dir)
		if err != nil {
			return err
		}

		var (
			store  *snapshot.Store
			holder *config.CatalogHolder
		)
		return withApp(cmd.Context(), cfg, true, func() error {
			if err := snapshot.Validate(snap, holder.Get().Capabilities); err != nil {
				return fmt.Errorf("validate snapshot: %w", err)
			}
			id, err := store.Import(cmd.Context(), snap)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported snapshot %s: %d customers, %d usage records, %d line items\n",
				id, len(snap.Customers), len(snap.Usage), len(snap.LineItems))
			return nil
		}, &store, &holder)
	},
}

func init() {
	importCmd.Flags().StringVar(&importSnapshotDir, "snapshot-dir", "", "directory with customers.json, usage_records.json and line_items.json")
	rootCmd.AddCommand(importCmd)
}
