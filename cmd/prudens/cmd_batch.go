package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"prudens/internal/config"
	"prudens/internal/logging"
)

var batchContextPaths []string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "run inference over one policy against many context files concurrently",
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringArrayVar(&batchContextPaths, "context", nil, "path to a context document (repeatable)")
	batchCmd.MarkFlagRequired("context")
}

type batchResult struct {
	ContextPath string
	Inferences  int
	Dilemmas    int
	Err         error
}

// runBatch runs one Engine per context file, since Engine is not safe for
// concurrent use: parallelism here is across distinct (policy, context)
// pairs, each with its own Engine, not a shared Engine across goroutines.
func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(filepath.Join(absWorkspace(), "prudens.yaml"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	pPath := resolvePolicyPath(policyPath, cfg.DefaultPolicyPath)
	depth := maxDepth
	if depth == 0 {
		depth = cfg.MaxDepth
	}

	log := logging.Get(logging.CategoryCLI)
	results := make([]batchResult, len(batchContextPaths))

	base := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		base, cancel = context.WithTimeout(base, timeout)
		defer cancel()
	}
	g, ctx := errgroup.WithContext(base)
	var mu sync.Mutex
	for i, cPath := range batchContextPaths {
		i, cPath := i, cPath
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			engine, err := inferFromFiles(pPath, cPath, depth)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				results[i] = batchResult{ContextPath: cPath, Err: err}
				log.Warn("batch: %s failed: %v", cPath, err)
				return nil // one bad context doesn't abort the others
			}
			results[i] = batchResult{
				ContextPath: cPath,
				Inferences:  engine.Inferences.Len(),
				Dilemmas:    len(engine.Dilemmas),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%s: ERROR %v\n", r.ContextPath, r.Err)
			continue
		}
		fmt.Printf("%s: %d inference(s), %d dilemma(s)\n", r.ContextPath, r.Inferences, r.Dilemmas)
	}
	return nil
}
