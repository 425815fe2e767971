package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/njtree/internal/batch"
	"github.com/katalvlaran/njtree/internal/request"
)

func newBatchCmd(a *app) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Build one tree per request file, in parallel",
		Long: `Every file is an independent request; trees are built concurrently on
independent builders. A failing tree does not stop the others: its outcome
carries the error and the command exits non-zero once all are done.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers < 1 {
				return fmt.Errorf("--workers must be ≥ 1, got %d", workers)
			}

			jobs := make([]batch.Job, 0, len(args))
			for _, path := range args {
				req, err := request.Load(path)
				if err != nil {
					return err
				}
				jobs = append(jobs, batch.Job{
					Name:      req.Name,
					Distances: req.DistanceMatrix,
					Labels:    req.Labels,
				})
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			runner := batch.NewRunner(
				batch.WithWorkers(workers),
				batch.WithTimeout(a.timeout),
				batch.WithLogger(a.logger),
				batch.WithTreeOptions(a.treeOptions()...),
			)
			out, err := runner.Run(ctx, jobs)
			if err != nil && out == nil {
				return err
			}

			if werr := writeOutcomes(cmd, a, out); werr != nil {
				return werr
			}
			if err != nil {
				return err
			}

			failed := 0
			for _, o := range out {
				if o.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d trees failed", failed, len(out))
			}

			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "j", 4, "Number of trees built concurrently")

	return cmd
}

// writeOutcomes prints one "name<TAB>newick" (or error) line per job in
// newick mode, and the outcome list otherwise.
func writeOutcomes(cmd *cobra.Command, a *app, out []batch.Outcome) error {
	f, _ := parseFormat(a.format)
	if f != formatNewick {
		return encode(cmd.OutOrStdout(), f, out)
	}

	for _, o := range out {
		line := o.Error
		if o.Result != nil {
			line = o.Result.Newick
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", o.Name, line); err != nil {
			return err
		}
	}

	return nil
}
