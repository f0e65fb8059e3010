package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitializeDisabledIsNoOp(t *testing.T) {
	tempDir := t.TempDir()
	if err := Initialize(tempDir, Settings{DebugMode: false}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	logsDir = ""
	loggers = make(map[Category]*Logger)

	l := Get(CategoryKernel)
	l.Info("should not be written")

	if _, err := os.Stat(filepath.Join(tempDir, "logs")); !os.IsNotExist(err) {
		t.Fatalf("expected no logs directory when debug mode disabled, got err=%v", err)
	}
}

func TestAllCategoriesLog(t *testing.T) {
	tempDir := t.TempDir()

	settings := Settings{
		Level:      "debug",
		DebugMode:  true,
		Categories: map[string]bool{},
	}
	for _, cat := range []Category{CategoryParse, CategoryKernel, CategoryHasse, CategoryPriority, CategorySaturation, CategoryCLI} {
		settings.Categories[string(cat)] = true
	}

	if err := Initialize(tempDir, settings); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer CloseAll()

	for _, cat := range []Category{CategoryParse, CategoryKernel, CategoryHasse, CategoryPriority, CategorySaturation, CategoryCLI} {
		l := Get(cat)
		l.Info("hello from %s", cat)
	}

	entries, err := os.ReadDir(filepath.Join(tempDir, "logs"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) < 6 {
		t.Fatalf("expected at least 6 log files, got %d", len(entries))
	}
}

func TestCategoryDisabledSuppressesOutput(t *testing.T) {
	tempDir := t.TempDir()
	settings := Settings{
		Level:      "debug",
		DebugMode:  true,
		Categories: map[string]bool{string(CategoryKernel): false},
	}
	if err := Initialize(tempDir, settings); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer CloseAll()

	if IsCategoryEnabled(CategoryKernel) {
		t.Fatalf("expected kernel category to be disabled")
	}
	if !IsCategoryEnabled(CategoryHasse) {
		t.Fatalf("expected unmentioned category to default enabled")
	}
}

func TestJSONFormatProducesParsableLines(t *testing.T) {
	tempDir := t.TempDir()
	settings := Settings{
		Level:      "debug",
		DebugMode:  true,
		JSONFormat: true,
	}
	if err := Initialize(tempDir, settings); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer CloseAll()

	l := Get(CategorySaturation)
	l.StructuredLog("info", "round complete", "req-123", map[string]interface{}{"depth": 3})

	data, err := os.ReadFile(filepath.Join(tempDir, "logs", logFileNameFor(CategorySaturation)))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "req-123") {
		t.Fatalf("expected request id in structured log output, got: %s", data)
	}
}

func logFileNameFor(cat Category) string {
	entries, err := os.ReadDir(logsDir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), string(cat)) {
			return e.Name()
		}
	}
	return ""
}
