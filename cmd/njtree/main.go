// Command njtree builds Neighbor-Joining trees from distance-matrix files.
//
//	njtree build primates.yaml --format newick
//	njtree batch data/*.json --workers 4 --timeout 30s
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/njtree/nj"
)

// app carries the global flags and the logger built from them.
type app struct {
	verbose   bool
	format    string
	timeout   time.Duration
	tolerance float64
	strict    bool

	logger *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "njtree",
		Short: "Reconstruct phylogenetic trees with Neighbor-Joining",
		Long: `njtree reads a distance matrix and taxon labels (JSON or YAML,
{"distance_matrix": [[...]], "labels": [...]}) and reconstructs an unrooted
binary tree with the Neighbor-Joining method.

Output is the tree record with Newick text and run statistics, as JSON or
YAML, or the bare Newick string.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseFormat(a.format); err != nil {
				return err
			}
			if a.tolerance < 0 {
				return fmt.Errorf("--tolerance must be ≥ 0, got %g", a.tolerance)
			}
			if a.timeout < 0 {
				return fmt.Errorf("--timeout must be ≥ 0, got %s", a.timeout)
			}
			if a.logger != nil {
				return nil
			}

			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging (one entry per join)")
	flags.StringVarP(&a.format, "format", "f", string(formatJSON), "Output format: json, yaml or newick")
	flags.DurationVar(&a.timeout, "timeout", 0, "Per-tree time limit (0 = none)")
	flags.Float64Var(&a.tolerance, "tolerance", nj.DefaultSymmetryTolerance, "Asymmetry tolerated without a warning")
	flags.BoolVar(&a.strict, "strict", false, "Reject asymmetric matrices instead of averaging them")

	root.AddCommand(newBuildCmd(a), newBatchCmd(a))

	return root
}

// treeOptions maps the global flags onto nj options. The logger is left to
// the caller so it can carry per-tree fields.
func (a *app) treeOptions() []nj.Option {
	opts := []nj.Option{nj.WithSymmetryTolerance(a.tolerance)}
	if a.strict {
		opts = append(opts, nj.WithStrictSymmetry())
	}

	return opts
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}
