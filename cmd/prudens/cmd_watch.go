package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"prudens/internal/config"
	"prudens/internal/logging"
)

const watchDebounce = 300 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "re-run inference whenever the policy or context file changes",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&contextPath, "context", "c", "", "path to a context document")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(filepath.Join(absWorkspace(), "prudens.yaml"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	pPath := resolvePolicyPath(policyPath, cfg.DefaultPolicyPath)
	cPath := resolvePolicyPath(contextPath, cfg.DefaultContextPath)
	depth := maxDepth
	if depth == 0 {
		depth = cfg.MaxDepth
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range []string{pPath, cPath} {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}

	log := logging.Get(logging.CategoryCLI)
	runOnce := func() {
		engine, err := inferFromFiles(pPath, cPath, depth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		if jsonOutput {
			_ = printInferenceJSON(engine)
		} else {
			_ = printInferenceText(engine)
		}
	}

	runOnce()

	debounce := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if last, seen := debounce[event.Name]; seen && time.Since(last) < watchDebounce {
				continue
			}
			debounce[event.Name] = time.Now()
			log.Info("change detected in %s, re-running inference", event.Name)
			runOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watch error: %v", err)
		}
	}
}
