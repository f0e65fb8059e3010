package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"prudens/internal/config"
	"prudens/internal/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "parse a policy and report syntax errors without running inference",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(filepath.Join(absWorkspace(), "prudens.yaml"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	pPath := resolvePolicyPath(policyPath, cfg.DefaultPolicyPath)

	src, err := os.ReadFile(pPath)
	if err != nil {
		return fmt.Errorf("reading policy %s: %w", pPath, err)
	}

	p, err := parser.ParsePolicy(string(src))
	if err != nil {
		fmt.Printf("FAIL: %v\n", err)
		return err
	}

	fmt.Printf("OK: %d rule(s) parsed\n", len(p.Rules))
	return nil
}
