// Command prudens is a CLI front end for the defeasible reasoning engine:
// it parses a policy and a context, runs saturation, and reports the
// resulting inferences and any unresolved dilemmas.
//
// Subcommands are split across sibling files:
//   - cmd_infer.go — one-shot inference over a policy/context pair
//   - cmd_check.go — parses a policy and reports syntax errors without inferring
//   - cmd_watch.go — re-runs inference whenever the policy or context file changes
//   - cmd_batch.go — runs inference over many context files concurrently
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"prudens/internal/logging"
)

var (
	verbose    bool
	workspace  string
	policyPath string
	maxDepth   int
	jsonOutput bool
	timeout    time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "prudens",
	Short: "prudens - a defeasible reasoning engine for prioritized rule policies",
	Long: `prudens evaluates a policy of prioritized defeasible rules against a
context of ground facts, computing sceptically-derivable literals under
priority-based conflict resolution and surfacing any dilemmas the
priority relation leaves unresolved.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		config.Encoding = "console"
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}

		ws := workspace
		if ws == "" {
			ws, _ = os.Getwd()
		}
		settings := logging.Settings{DebugMode: verbose, Level: "info"}
		if verbose {
			settings.Level = "debug"
		}
		if err := logging.Initialize(ws, settings); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to initialize file logging: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVarP(&policyPath, "policy", "p", "", "path to a policy document")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "maximum saturation rounds (0 = use config default)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON output")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "overall command timeout (0 = no limit)")

	rootCmd.AddCommand(inferCmd, checkCmd, watchCmd, batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolvePolicyPath(explicit, defaultPath string) string {
	if explicit != "" {
		return explicit
	}
	return defaultPath
}

// withTimeout runs fn to completion, or returns early with an error once
// --timeout elapses. A zero timeout (the default) means no limit.
func withTimeout(fn func() error) error {
	if timeout <= 0 {
		return fn()
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("timed out after %s", timeout)
	}
}

func absWorkspace() string {
	ws := workspace
	if ws == "" {
		ws, _ = os.Getwd()
		return ws
	}
	abs, err := filepath.Abs(ws)
	if err != nil {
		return ws
	}
	return abs
}
