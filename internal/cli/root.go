// Package cli implements the cepip-copy command line.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"cepip-app-go/internal/config"
	"cepip-app-go/internal/copier"
	"cepip-app-go/pkg/logger"
	"github.com/spf13/cobra"
)

// ErrNotReconciled is returned when any table ends in a state other than ok.
var ErrNotReconciled = errors.New("tables not reconciled")

// Opener builds a copier for the given settings and returns a cleanup func.
type Opener func(ctx context.Context, cfg config.CopyConfig, log logger.Logger) (*copier.Copier, func(), error)

type options struct {
	sourceDSN string
	targetDSN string
	tables    []string
	json      bool
}

// NewRootCommand wires the copy and verify subcommands around open.
func NewRootCommand(cfg config.CopyConfig, open Opener, log logger.Logger) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "cepip-copy",
		Short: "Copy CEPIP tables between two Postgres databases",
		Long: `cepip-copy copies rows from a source database into a target database
with INSERT ... ON CONFLICT DO NOTHING, so re-running it is safe, and then
compares row counts table by table.

Examples:
  cepip-copy copy
  cepip-copy copy --tables persona,parcela
  cepip-copy verify --json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.sourceDSN, "source", cfg.SourceDSN, "Source database DSN (COPY_SOURCE_DSN)")
	root.PersistentFlags().StringVar(&opts.targetDSN, "target", cfg.TargetDSN, "Target database DSN (COPY_TARGET_DSN)")
	root.PersistentFlags().StringSliceVar(&opts.tables, "tables", cfg.Tables, "Comma separated tables; defaults to every public base table")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Print the report as JSON")

	run := func(verifyOnly bool) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			effective := cfg
			effective.SourceDSN = opts.sourceDSN
			effective.TargetDSN = opts.targetDSN
			effective.Tables = opts.tables
			if effective.SourceDSN == "" || effective.TargetDSN == "" {
				return fmt.Errorf("both --source and --target are required")
			}

			c, cleanup, err := open(cmd.Context(), effective, log)
			if err != nil {
				return err
			}
			defer cleanup()

			var report copier.Report
			if verifyOnly {
				report, err = c.Verify(cmd.Context(), effective.Tables)
			} else {
				report, err = c.Copy(cmd.Context(), effective.Tables)
			}
			if err != nil {
				return err
			}

			if err := writeReport(cmd.OutOrStdout(), report, opts.json); err != nil {
				return err
			}
			if !report.OK() {
				return ErrNotReconciled
			}
			return nil
		}
	}

	root.AddCommand(&cobra.Command{
		Use:   "copy",
		Short: "Copy rows and reconcile counts",
		Args:  cobra.NoArgs,
		RunE:  run(false),
	})
	root.AddCommand(&cobra.Command{
		Use:   "verify",
		Short: "Reconcile counts without copying",
		Args:  cobra.NoArgs,
		RunE:  run(true),
	})

	return root
}

func writeReport(w io.Writer, report copier.Report, asJSON bool) error {
	if !asJSON {
		return report.WriteText(w)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// Execute runs the CLI against real databases configured from the environment.
func Execute(ctx context.Context, log logger.Logger) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	root := NewRootCommand(cfg.Copy, OpenPostgres, log)
	root.SetErr(os.Stderr)
	return root.ExecuteContext(ctx)
}

// OpenPostgres connects both pools with the configured retry count.
func OpenPostgres(ctx context.Context, cfg config.CopyConfig, log logger.Logger) (*copier.Copier, func(), error) {
	source, err := copier.Connect(ctx, cfg.SourceDSN, cfg.ConnectRetries, log.With("side", "source"))
	if err != nil {
		return nil, nil, fmt.Errorf("source: %w", err)
	}
	target, err := copier.Connect(ctx, cfg.TargetDSN, cfg.ConnectRetries, log.With("side", "target"))
	if err != nil {
		source.Close()
		return nil, nil, fmt.Errorf("target: %w", err)
	}

	c := copier.New(copier.NewPostgresSource(source), copier.NewPostgresTarget(target), cfg.ExcludedTables, log)
	return c, func() {
		target.Close()
		source.Close()
	}, nil
}
