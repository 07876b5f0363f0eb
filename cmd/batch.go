// File: cmd/batch.go
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/scientist-cli/internal/config"
	"github.com/xkilldash9x/scientist-cli/internal/dispatch"
	"github.com/xkilldash9x/scientist-cli/internal/observability"
)

func newBatchCmd() *cobra.Command {
	var (
		file        string
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Answers every question in a YAML batch file",
		Long: `Reads a file of the form

  cases:
    - question: "..."
      tree: {word: ..., coarse: ..., fine: ..., children: [...]}

and prints one line per case, in file order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			if concurrency <= 0 {
				concurrency = cfg.Batch().Concurrency
			}
			return runBatch(ctx, cfg, cmd.OutOrStdout(), file, concurrency)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Batch file (required)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Worker count (default from config)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// runBatch contains the core logic for the batch command.
func runBatch(ctx context.Context, cfg config.Interface, out io.Writer, file string, concurrency int) error {
	cases, err := dispatch.LoadCases(file)
	if err != nil {
		return err
	}
	d, err := buildDispatcher(cfg, observability.GetLogger())
	if err != nil {
		return err
	}

	if timeout := cfg.Batch().Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	results, err := d.Batch(ctx, cases, concurrency)
	if err != nil {
		return err
	}
	for i, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(out, "%d\t-\t%v\n", i+1, r.Err)
		default:
			fmt.Fprintf(out, "%d\t%s\t%s\n", i+1, r.Model, r.Answer)
		}
	}
	return nil
}
