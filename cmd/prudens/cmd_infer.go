package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"prudens/internal/config"
	"prudens/internal/dictcodec"
	"prudens/internal/logging"
	"prudens/internal/parser"
	"prudens/internal/reasoner"
)

var contextPath string

var inferCmd = &cobra.Command{
	Use:   "infer",
	Short: "parse a policy and context, run saturation, and report inferences",
	RunE:  runInfer,
}

func init() {
	inferCmd.Flags().StringVarP(&contextPath, "context", "c", "", "path to a context document")
}

func runInfer(cmd *cobra.Command, args []string) error {
	requestID := uuid.NewString()
	cliLog := logging.Get(logging.CategoryCLI)
	cliLog.StructuredLog("INFO", "infer starting", requestID, nil)

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

	var engine *reasoner.Engine
	if err := withTimeout(func() error {
		var err error
		engine, err = inferFromFiles(pPath, cPath, depth)
		return err
	}); err != nil {
		return err
	}

	cliLog.StructuredLog("INFO", "infer finished", requestID, map[string]interface{}{
		"inferences": engine.Inferences.Len(),
		"dilemmas":   len(engine.Dilemmas),
	})

	if jsonOutput {
		return printInferenceJSON(engine)
	}
	return printInferenceText(engine)
}

// inferFromFiles parses a policy and a context from disk and runs
// saturation over them, returning the resulting engine.
func inferFromFiles(policyFile, contextFile string, depth int) (*reasoner.Engine, error) {
	policySrc, err := os.ReadFile(policyFile)
	if err != nil {
		return nil, fmt.Errorf("reading policy %s: %w", policyFile, err)
	}
	contextSrc, err := os.ReadFile(contextFile)
	if err != nil {
		return nil, fmt.Errorf("reading context %s: %w", contextFile, err)
	}

	policy, err := parser.ParsePolicy(string(policySrc))
	if err != nil {
		return nil, fmt.Errorf("parsing policy: %w", err)
	}
	ctx, err := parser.ParseContext(string(contextSrc))
	if err != nil {
		return nil, fmt.Errorf("parsing context: %w", err)
	}

	engine := policy.NewEngine()
	engine.Infer(ctx, depth)
	return engine, nil
}

func printInferenceText(engine *reasoner.Engine) error {
	fmt.Println("Inferences:")
	for _, lit := range engine.Inferences.All() {
		fmt.Printf("  %s\n", lit.String())
	}
	if len(engine.Dilemmas) > 0 {
		fmt.Println("Dilemmas:")
		for _, d := range engine.Dilemmas {
			fmt.Printf("  %s\n", d.String())
		}
	}
	return nil
}

func printInferenceJSON(engine *reasoner.Engine) error {
	dilemmas := make([]dictcodec.DilemmaDict, 0, len(engine.Dilemmas))
	for _, d := range engine.Dilemmas {
		dilemmas = append(dilemmas, dictcodec.EncodeDilemma(d))
	}
	out := struct {
		Inferences dictcodec.ContextDict    `json:"inferences"`
		Dilemmas   []dictcodec.DilemmaDict `json:"dilemmas"`
	}{
		Inferences: dictcodec.EncodeContext(engine.Inferences),
		Dilemmas:   dilemmas,
	}
	data, err := dictcodec.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
