package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subburn/internal/config"
	"subburn/internal/queue"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	cfgPath := filepath.Join(base, "subburn.toml")
	content := fmt.Sprintf(`[paths]
work_dir = %q
output_dir = %q
log_dir = %q
`,
		filepath.Join(base, "work"),
		filepath.Join(base, "out"),
		filepath.Join(base, "logs"),
	)
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func openTestStore(t *testing.T, configPath string) *queue.Store {
	t.Helper()
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func writeVideoFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("not really a video"), 0o644); err != nil {
		t.Fatalf("write video stub: %v", err)
	}
	return path
}

func TestAddQueuesItem(t *testing.T) {
	cfgPath := writeTestConfig(t)
	video := writeVideoFile(t, "lecture.mp4")

	out, err := runCLI(t, cfgPath, "add", video, "--to", "French")
	if err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}
	requireContains(t, out, "Queued lecture.mp4 as item #1")

	store := openTestStore(t, cfgPath)
	item, err := store.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if item == nil || item.TargetLanguage != "French" {
		t.Fatalf("unexpected item: %#v", item)
	}
}

func TestAddRejectsUnknownLanguage(t *testing.T) {
	cfgPath := writeTestConfig(t)
	video := writeVideoFile(t, "lecture.mp4")

	_, err := runCLI(t, cfgPath, "add", video, "--to", "Klingon")
	if err == nil {
		t.Fatal("expected error for unknown language")
	}
	if !strings.Contains(err.Error(), "Klingon") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAddRejectsUnsupportedExtension(t *testing.T) {
	cfgPath := writeTestConfig(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("text"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := runCLI(t, cfgPath, "add", path, "--to", "French")
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestQueueStatusAndList(t *testing.T) {
	cfgPath := writeTestConfig(t)
	store := openTestStore(t, cfgPath)
	ctx := context.Background()

	if _, err := store.Add(ctx, "/videos/alpha.mp4", "French", ""); err != nil {
		t.Fatalf("add alpha: %v", err)
	}
	beta, err := store.Add(ctx, "/videos/beta.mp4", "Spanish", "")
	if err != nil {
		t.Fatalf("add beta: %v", err)
	}
	beta.SetFailed("burn failed")
	if err := store.Update(ctx, beta); err != nil {
		t.Fatalf("fail beta: %v", err)
	}

	out, err := runCLI(t, cfgPath, "queue", "status")
	if err != nil {
		t.Fatalf("queue status: %v", err)
	}
	requireContains(t, out, "pending")
	requireContains(t, out, "failed")

	out, err = runCLI(t, cfgPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "alpha")
	requireContains(t, out, "beta")
	requireContains(t, out, "burn failed")
}

func TestQueueRetryAndClear(t *testing.T) {
	cfgPath := writeTestConfig(t)
	store := openTestStore(t, cfgPath)
	ctx := context.Background()

	alpha, err := store.Add(ctx, "/videos/alpha.mp4", "French", "")
	if err != nil {
		t.Fatalf("add alpha: %v", err)
	}
	alpha.SetFailed("boom")
	if err := store.Update(ctx, alpha); err != nil {
		t.Fatalf("fail alpha: %v", err)
	}

	out, err := runCLI(t, cfgPath, "queue", "retry")
	if err != nil {
		t.Fatalf("queue retry: %v", err)
	}
	requireContains(t, out, "Marked 1 items for retry")

	updated, err := store.GetByID(ctx, alpha.ID)
	if err != nil {
		t.Fatalf("lookup alpha: %v", err)
	}
	if updated.Status != queue.StatusPending {
		t.Fatalf("expected pending, got %s", updated.Status)
	}

	out, err = runCLI(t, cfgPath, "queue", "clear")
	if err != nil {
		t.Fatalf("queue clear: %v", err)
	}
	requireContains(t, out, "Cleared 1 queue items")
}

func TestQueueListRejectsUnknownStatus(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runCLI(t, cfgPath, "queue", "list", "--status", "ripping")
	if err == nil {
		t.Fatal("expected error for unknown status filter")
	}
}

func TestLanguagesListsCatalog(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runCLI(t, cfgPath, "languages")
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	requireContains(t, out, "French")
	requireContains(t, out, "fr")
	requireContains(t, out, "auto-detect")
}

func TestConfigInitWritesSample(t *testing.T) {
	cfgPath := writeTestConfig(t)
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, cfgPath, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, target)

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config: %v", err)
	}

	_, err = runCLI(t, cfgPath, "config", "init", "--path", target)
	if err == nil {
		t.Fatal("expected error when config exists without --overwrite")
	}
}

func TestConfigShowPrintsEffectiveConfig(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runCLI(t, cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "work_dir")
	requireContains(t, out, "backend")
}

func TestStatusPrinterPlainOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	p := newStatusPrinter(buf)
	p.section("Queue")
	p.line("Items", statusWarn, "1 failed")
	out := buf.String()
	requireContains(t, out, "== Queue ==")
	requireContains(t, out, "[WARN] 1 failed")
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes for non-tty writer: %q", out)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"Status", "Count"}, [][]string{{"pending"}}, 1)
	requireContains(t, out, "Status")
	requireContains(t, out, "pending")
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 40); got != "short" {
		t.Fatalf("truncate short = %q", got)
	}
	long := strings.Repeat("a", 50)
	got := truncate(long, 10)
	if got != strings.Repeat("a", 7)+"..." {
		t.Fatalf("truncate long = %q", got)
	}
}
