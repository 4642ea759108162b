package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisabledIsNoOp(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir, Settings{DebugMode: false}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(CloseAll)

	Get(CategoryAPI).Info("should not be written")

	if _, err := os.Stat(filepath.Join(dir, "logs")); !os.IsNotExist(err) {
		t.Errorf("logs directory should not exist in production mode")
	}
}

func TestCategoryFileWritten(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir, Settings{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() {
		CloseAll()
		Apply(Settings{})
	})

	API("request %s", "GET /categories")
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var found bool
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_api.log") {
			found = true
			data, _ := os.ReadFile(filepath.Join(dir, "logs", e.Name()))
			if !strings.Contains(string(data), "GET /categories") {
				t.Errorf("log line missing message: %s", data)
			}
		}
	}
	if !found {
		t.Errorf("expected an api category log file, got %v", entries)
	}
}

func TestCategoryFilter(t *testing.T) {
	dir := t.TempDir()
	err := Initialize(dir, Settings{
		DebugMode:  true,
		Level:      "info",
		Categories: map[string]bool{"query": false},
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() {
		CloseAll()
		Apply(Settings{})
	})

	if IsCategoryEnabled(CategoryQuery) {
		t.Errorf("query category should be disabled")
	}
	if !IsCategoryEnabled(CategoryAPI) {
		t.Errorf("api category should default to enabled")
	}
}
