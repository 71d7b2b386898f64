package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func resetState(t *testing.T) {
	t.Helper()
	CloseAll()
	optionsMu.Lock()
	options = Options{}
	optionsMu.Unlock()
	t.Cleanup(CloseAll)
}

func readLogs(t *testing.T, dir string, category Category) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "logs", "*_"+string(category)+".log"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one %s log file, got %v", category, matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return string(data)
}

// TestAllCategoriesLog tests that all categories create log files when debug mode is on
func TestAllCategoriesLog(t *testing.T) {
	resetState(t)
	dir := t.TempDir()

	if err := Initialize(dir, Options{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	categories := []Category{CategoryBoot, CategoryAPI, CategoryWorkflow, CategoryStore, CategoryUI, CategoryPublish}
	for _, cat := range categories {
		Get(cat).Info("hello from %s", cat)
	}
	CloseAll()

	for _, cat := range categories {
		content := readLogs(t, dir, cat)
		if !strings.Contains(content, "hello from "+string(cat)) {
			t.Errorf("category %s missing message, got %q", cat, content)
		}
	}
}

func TestDisabledModeWritesNothing(t *testing.T) {
	resetState(t)
	dir := t.TempDir()

	if err := Initialize(dir, Options{DebugMode: false}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	API("should not be written")

	if _, err := os.Stat(filepath.Join(dir, "logs")); !os.IsNotExist(err) {
		t.Errorf("expected no logs directory, stat err=%v", err)
	}
	if IsDebugMode() {
		t.Error("expected debug mode off")
	}
}

func TestCategoryFilter(t *testing.T) {
	resetState(t)
	dir := t.TempDir()

	err := Initialize(dir, Options{
		DebugMode:  true,
		Categories: map[string]bool{"api": false},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if IsCategoryEnabled(CategoryAPI) {
		t.Error("api should be disabled")
	}
	if !IsCategoryEnabled(CategoryStore) {
		t.Error("unlisted categories default to enabled")
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	resetState(t)
	dir := t.TempDir()

	if err := Initialize(dir, Options{DebugMode: true, Level: "warn", JSONFormat: true}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	StoreDebug("quiet")
	Get(CategoryStore).Warn("loud %d", 1)
	CloseAll()

	content := readLogs(t, dir, CategoryStore)
	if strings.Contains(content, "quiet") {
		t.Error("debug entry should be filtered at warn level")
	}
	if !strings.Contains(content, `"msg":"loud 1"`) {
		t.Errorf("expected JSON warn entry, got %q", content)
	}
}

func TestNoopLoggerIsSafe(t *testing.T) {
	resetState(t)
	var l Logger
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	if l.With("k", "v") != &l {
		t.Error("With on a no-op logger should return the same logger")
	}
}

func TestConcurrentGet(t *testing.T) {
	resetState(t)
	dir := t.TempDir()
	if err := Initialize(dir, Options{DebugMode: true}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			Workflow("worker %d", i)
		}(i)
	}
	wg.Wait()

	if Get(CategoryWorkflow) != Get(CategoryWorkflow) {
		t.Error("expected cached logger per category")
	}
}

func TestTimer(t *testing.T) {
	resetState(t)
	timer := StartTimer(CategoryAPI, "op")
	time.Sleep(time.Millisecond)
	if timer.StopWithInfo() <= 0 {
		t.Error("expected positive duration")
	}
	if timer.StopWithThreshold(time.Nanosecond) <= 0 {
		t.Error("expected positive duration")
	}
}
