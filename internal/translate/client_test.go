package translate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"subburn/internal/media"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Config{Endpoint: server.URL, RetryAttempts: 3},
		WithSleeper(func(d time.Duration) {}))
	return client, server
}

func TestTranslateDecodesChunkedResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("tl"); got != "fr" {
			t.Errorf("target code = %q, want fr", got)
		}
		if got := r.URL.Query().Get("sl"); got != "auto" {
			t.Errorf("source code = %q, want auto", got)
		}
		w.Write([]byte(`[[["Bonjour ","Hello ",null,null,10],["le monde","world",null,null,10]],null,"en"]`))
	})

	got, err := client.Translate(context.Background(), "Hello world", "fr")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Bonjour le monde" {
		t.Fatalf("Translate = %q, want %q", got, "Bonjour le monde")
	}
}

func TestTranslateRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[[["Hola","Hello",null,null,10]],null,"en"]`))
	})

	got, err := client.Translate(context.Background(), "Hello", "es")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Hola" {
		t.Fatalf("Translate = %q, want Hola", got)
	}
	if calls.Load() != 3 {
		t.Fatalf("calls = %d, want 3", calls.Load())
	}
}

func TestTranslateDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	if _, err := client.Translate(context.Background(), "Hello", "fr"); err == nil {
		t.Fatal("expected error for http 400")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestTranslateEmptyTextShortCircuits(t *testing.T) {
	client := NewClient(Config{Endpoint: "http://127.0.0.1:1"})
	got, err := client.Translate(context.Background(), "   ", "fr")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "" {
		t.Fatalf("Translate = %q, want empty", got)
	}
}

func TestTranslateSegmentsIsolatesFailures(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "boom" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`[[["ok","ok",null,null,10]],null,"en"]`))
	})

	segments := []media.Segment{
		{Start: 0, End: 1.5, Text: "first"},
		{Start: 1.5, End: 3, Text: "boom"},
		{Start: 3, End: 4, Text: "third"},
	}
	got := client.TranslateSegments(context.Background(), segments, "fr")
	if len(got) != len(segments) {
		t.Fatalf("len = %d, want %d", len(got), len(segments))
	}
	if got[0].Text != "ok" || got[2].Text != "ok" {
		t.Fatalf("surviving segments = %q, %q, want ok", got[0].Text, got[2].Text)
	}
	if got[1].Text != media.TranslationFailedSentinel {
		t.Fatalf("failed segment text = %q, want sentinel", got[1].Text)
	}
	if got[1].Start != 1.5 || got[1].End != 3 {
		t.Fatalf("failed segment timing changed: %+v", got[1])
	}
}

func TestMapIsolatedPreservesOrder(t *testing.T) {
	items := []int{1, 2, 3, 4}
	got := MapIsolated(context.Background(), items,
		func(_ context.Context, n int) (string, error) {
			if n%2 == 0 {
				return "", errors.New("even")
			}
			return "odd", nil
		},
		func(int) string { return "fallback" },
	)
	want := []string{"odd", "fallback", "odd", "fallback"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
