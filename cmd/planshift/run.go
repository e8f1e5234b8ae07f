package main

import (
	"fmt"

	"github.com/smallbiznis/planshift/internal/run"
	"github.com/spf13/cobra"
)

var runFlags struct {
	snapshotDir string
	snapshotID  string
	out         string
	csv         string
	pdf         string
	label       string
	runID       string
	fromDB      bool
	persist     bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate every customer of a snapshot against the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := run.OptionsFromConfig(cfg)
		flags := cmd.Flags()
		if flags.Changed("snapshot-dir") {
			opts.SnapshotDir = runFlags.snapshotDir
		}
		if flags.Changed("snapshot-id") {
			opts.SnapshotID = runFlags.snapshotID
			opts.FromDB = true
		}
		if flags.Changed("out") {
			opts.OutputPath = runFlags.out
		}
		if flags.Changed("csv") {
			opts.CSVPath = runFlags.csv
		}
		if flags.Changed("pdf") {
			opts.ReportPath = runFlags.pdf
		}
		if flags.Changed("label") {
			opts.Label = runFlags.label
		}
		if flags.Changed("from-db") {
			opts.FromDB = runFlags.fromDB
		}
		if flags.Changed("persist") {
			opts.Persist = runFlags.persist
		}
		opts.RunID = runFlags.runID

		cfg.FromDB = opts.FromDB
		cfg.PersistResults = opts.Persist

		var runner *run.Runner
		return withApp(cmd.Context(), cfg, cfg.DatabaseEnabled(), func() error {
			outcome, err := runner.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d customers\n", outcome.RunID, len(outcome.Results))
			for _, file := range outcome.Files {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", file)
			}
			return nil
		}, &runner)
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.snapshotDir, "snapshot-dir", "", "directory with customers.json, usage_records.json and line_items.json")
	f.StringVar(&runFlags.snapshotID, "snapshot-id", "", "imported snapshot to read from the database (implies --from-db)")
	f.StringVar(&runFlags.out, "out", "", "JSON output file or directory")
	f.StringVar(&runFlags.csv, "csv", "", "CSV output file or directory")
	f.StringVar(&runFlags.pdf, "pdf", "", "PDF portfolio report file or directory")
	f.StringVar(&runFlags.label, "label", "", "run label, also used to name output files in a directory")
	f.StringVar(&runFlags.runID, "run-id", "", "replace the persisted results of an earlier run")
	f.BoolVar(&runFlags.fromDB, "from-db", false, "read the latest imported snapshot from the database")
	f.BoolVar(&runFlags.persist, "persist", false, "store results in the database")

	rootCmd.AddCommand(runCmd)
}
