// File: cmd/history.go
package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scientist-cli/internal/config"
	"github.com/xkilldash9x/scientist-cli/internal/observability"
	"github.com/xkilldash9x/scientist-cli/internal/store"
)

// answerStore is the slice of the store the commands use.
type answerStore interface {
	EnsureSchema(ctx context.Context) error
	RecordAnswer(ctx context.Context, r store.Record) (store.Record, error)
	RecentAnswers(ctx context.Context, limit int) ([]store.Record, error)
}

// storeProvider defines an interface for creating a store instance.
// This allows for dependency injection, especially for testing.
type storeProvider interface {
	Create(ctx context.Context, cfg config.Interface) (answerStore, func(), error)
}

// defaultStoreProvider is the production implementation that connects to PostgreSQL.
type defaultStoreProvider struct{}

// NewStoreProvider returns the PostgreSQL backed provider.
func NewStoreProvider() storeProvider {
	return &defaultStoreProvider{}
}

// Create establishes a real database connection pool and returns a store.
func (p *defaultStoreProvider) Create(ctx context.Context, cfg config.Interface) (answerStore, func(), error) {
	url := cfg.Database().URL
	if url == "" {
		return nil, nil, fmt.Errorf("database URL is not configured (set database.url or SCIENTIST_DATABASE_URL)")
	}
	logger := observability.GetLogger()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := store.New(pool, logger)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	cleanup := func() {
		logger.Debug("Closing database connection pool.")
		pool.Close()
	}
	return s, cleanup, nil
}

func newHistoryCmd(provider storeProvider) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Lists recently recorded answers",
		Long:  `Reads the answer log from PostgreSQL, newest first. Answers are recorded by 'solve --record'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runHistory(ctx, cfg, provider, cmd.OutOrStdout(), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of answers to show")
	return cmd
}

// runHistory contains the core logic for the history command.
func runHistory(ctx context.Context, cfg config.Interface, provider storeProvider, out io.Writer, limit int) error {
	s, cleanup, err := provider.Create(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer cleanup()

	records, err := s.RecentAnswers(ctx, limit)
	if err != nil {
		return err
	}
	observability.GetLogger().Debug("Fetched history.", zap.Int("records", len(records)))

	if len(records) == 0 {
		fmt.Fprintln(out, "No answers recorded.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANSWERED AT\tMODEL\tANSWER\tQUESTION")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.AnsweredAt.Format("2006-01-02 15:04:05"), r.Model, r.Answer, r.Question)
	}
	return w.Flush()
}
