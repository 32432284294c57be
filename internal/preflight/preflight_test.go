package preflight_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"subburn/internal/preflight"
	"subburn/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := preflight.CheckDirectoryAccess("Work directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass for writable dir, got %q", result.Detail)
	}

	result = preflight.CheckDirectoryAccess("Work directory", filepath.Join(dir, "missing"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result = preflight.CheckDirectoryAccess("Work directory", file)
	if result.Passed {
		t.Fatal("expected failure for non-directory path")
	}
}

func TestCheckDiskSpace(t *testing.T) {
	dir := t.TempDir()
	result := preflight.CheckDiskSpace("Work directory space", dir, 1)
	if !result.Passed {
		t.Fatalf("expected pass for tiny requirement, got %q", result.Detail)
	}

	result = preflight.CheckDiskSpace("Work directory space", dir, 1<<60)
	if result.Passed {
		t.Fatal("expected failure for exabyte requirement")
	}
	if result.Detail == "" {
		t.Fatal("expected detail on disk space failure")
	}
}

func TestCheckTranslateEndpoint(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()

	result := preflight.CheckTranslateEndpoint(context.Background(), ok.URL)
	if !result.Passed {
		t.Fatalf("expected reachable endpoint to pass, got %q", result.Detail)
	}

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()

	result = preflight.CheckTranslateEndpoint(context.Background(), broken.URL)
	if result.Passed {
		t.Fatal("expected 5xx endpoint to fail")
	}

	result = preflight.CheckTranslateEndpoint(context.Background(), "")
	if result.Passed {
		t.Fatal("expected empty endpoint to fail")
	}
}

func TestCheckSystemDeps(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	results := preflight.CheckSystemDeps(cfg)
	byName := make(map[string]bool, len(results))
	for _, status := range results {
		byName[status.Name] = status.Available
	}
	if !byName["FFmpeg"] {
		t.Fatalf("expected ffmpeg stub to be available: %#v", results)
	}
	if !byName["Whisper"] {
		t.Fatalf("expected whisper stub to be available: %#v", results)
	}
	if _, ok := byName["Subtitle fonts"]; !ok {
		t.Fatalf("expected font check in results: %#v", results)
	}
}

func TestRunAllChecksDirectories(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Translate.Endpoint = ""

	results := preflight.RunAll(context.Background(), cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d: %#v", len(results), results)
	}
	for _, result := range results[:3] {
		if !result.Passed {
			t.Fatalf("directory check failed: %#v", result)
		}
	}
}
