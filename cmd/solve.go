// File: cmd/solve.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scientist-cli/internal/config"
	"github.com/xkilldash9x/scientist-cli/internal/dispatch"
	"github.com/xkilldash9x/scientist-cli/internal/observability"
	"github.com/xkilldash9x/scientist-cli/internal/sentence"
	"github.com/xkilldash9x/scientist-cli/internal/store"
)

type solveOptions struct {
	question string
	treePath string
	record   bool
}

func newSolveCmd(provider storeProvider) *cobra.Command {
	var opts solveOptions
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Answers a single question",
		Long: `Offers the question to every configured model in order and prints the first answer.
The parse tree is a JSON file of nested {"word","coarse","fine","children"} nodes.`,
		Example: `  scientist-cli solve -q "A vector has A(x) = 3 and A(y) = 4. What is its magnitude?" -t tree.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runSolve(ctx, cfg, provider, cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.question, "question", "q", "", "Question text (required)")
	cmd.Flags().StringVarP(&opts.treePath, "tree", "t", "", "Path to the question's parse tree (JSON)")
	cmd.Flags().BoolVar(&opts.record, "record", false, "Record the answer in the database")
	_ = cmd.MarkFlagRequired("question")
	return cmd
}

// runSolve contains the core logic for the solve command.
func runSolve(ctx context.Context, cfg config.Interface, provider storeProvider, out io.Writer, opts solveOptions) error {
	logger := observability.GetLogger()

	var root sentence.Element
	if opts.treePath != "" {
		tree, err := sentence.ParseFile(opts.treePath)
		if err != nil {
			return err
		}
		root = tree
	}

	d, err := buildDispatcher(cfg, logger)
	if err != nil {
		return err
	}

	res, err := d.Answer(opts.question, root)
	if errors.Is(err, dispatch.ErrUnanswered) {
		fmt.Fprintln(out, "no model could answer")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, res.Answer)

	if !opts.record {
		return nil
	}
	s, cleanup, err := provider.Create(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer cleanup()

	rec, err := s.RecordAnswer(ctx, store.Record{Question: res.Question, Answer: res.Answer, Model: res.Model})
	if err != nil {
		return err
	}
	logger.Info("Answer recorded.", zap.String("id", rec.ID), zap.String("model", rec.Model))
	return nil
}
