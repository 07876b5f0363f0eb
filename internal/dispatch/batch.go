// File: internal/dispatch/batch.go
package dispatch

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/scientist-cli/internal/sentence"
)

// Case is one question of a batch together with its parse tree.
type Case struct {
	Question string         `yaml:"question"`
	Tree     *sentence.Node `yaml:"tree"`
}

// caseFile is the on-disk batch layout.
type caseFile struct {
	Cases []Case `yaml:"cases"`
}

// LoadCases reads a YAML batch file.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch %s: %w", path, err)
	}
	var f caseFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", path, err)
	}
	for i, c := range f.Cases {
		if c.Question == "" {
			return nil, fmt.Errorf("batch %s: case %d has no question", path, i)
		}
	}
	return f.Cases, nil
}

// Batch answers every case with at most concurrency workers. Results keep the
// order of cases; per-case failures land in Result.Err. The returned error is
// only set when ctx ends before all cases are done.
func (d *Dispatcher) Batch(ctx context.Context, cases []Case, concurrency int) ([]Result, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	results := make([]Result, len(cases))
	logger := d.logger.With(zap.String("run_id", uuid.NewString()))
	logger.Debug("Batch started.", zap.Int("cases", len(cases)), zap.Int("concurrency", concurrency))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var root sentence.Element
			if c.Tree != nil {
				root = c.Tree
			}
			res, err := d.Answer(c.Question, root)
			res.Err = err
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("batch interrupted: %w", err)
	}

	answered := 0
	for _, r := range results {
		if r.Err == nil {
			answered++
		}
	}
	logger.Info("Batch finished.", zap.Int("cases", len(cases)), zap.Int("answered", answered))
	return results, nil
}
