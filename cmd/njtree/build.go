package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/njtree/internal/request"
	"github.com/katalvlaran/njtree/nj"
)

func newBuildCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "build <file>",
		Short: "Build one tree from a JSON or YAML request file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := request.Load(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if a.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, a.timeout)
				defer cancel()
			}

			log := a.logger.With(zap.String("job", req.Name))
			res, err := req.Build(ctx, append(a.treeOptions(), nj.WithLogger(log))...)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			f, _ := parseFormat(a.format) // checked in PersistentPreRunE
			if f == formatNewick {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Newick)
				return err
			}

			return encode(cmd.OutOrStdout(), f, res)
		},
	}
}
