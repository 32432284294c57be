package subtitles

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"subburn/internal/media"
)

func TestWriteSRTIndicesAndOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")
	segments := []media.TranslatedSegment{
		{Start: 0, End: 3, Text: "Bonjour"},
		{Start: 3.25, End: 5.5, Text: "Salut"},
		{Start: 5.5, End: 9.125, Text: "Au revoir"},
	}
	if err := WriteSRT(path, segments); err != nil {
		t.Fatalf("WriteSRT: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	blocks := strings.Split(strings.TrimSpace(string(data)), "\n\n")
	if len(blocks) != len(segments) {
		t.Fatalf("cue count = %d, want %d", len(blocks), len(segments))
	}
	for i, block := range blocks {
		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			t.Fatalf("cue %d malformed: %q", i+1, block)
		}
		idx, err := strconv.Atoi(lines[0])
		if err != nil || idx != i+1 {
			t.Fatalf("cue index = %q, want %d", lines[0], i+1)
		}
		if !strings.Contains(lines[1], " --> ") {
			t.Fatalf("cue %d missing timing line: %q", i+1, lines[1])
		}
		if lines[2] != segments[i].Text {
			t.Fatalf("cue %d text = %q, want %q", i+1, lines[2], segments[i].Text)
		}
	}
}

func TestWriteSRTPassesThroughUnorderedTimings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unordered.srt")
	segments := []media.TranslatedSegment{
		{Start: 10, End: 12.5, Text: "dernier"},
		{Start: 2, End: 6, Text: "chevauchement"},
		{Start: 4, End: 5, Text: "imbriqué"},
	}
	if err := WriteSRT(path, segments); err != nil {
		t.Fatalf("WriteSRT: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	blocks := strings.Split(strings.TrimSpace(string(data)), "\n\n")
	if len(blocks) != len(segments) {
		t.Fatalf("cue count = %d, want %d", len(blocks), len(segments))
	}
	for i, block := range blocks {
		lines := strings.Split(block, "\n")
		if lines[0] != strconv.Itoa(i+1) {
			t.Fatalf("cue index = %q, want %d", lines[0], i+1)
		}
		wantTiming := FormatTimestamp(segments[i].Start) + " --> " + FormatTimestamp(segments[i].End)
		if lines[1] != wantTiming {
			t.Fatalf("cue %d timing = %q, want %q", i+1, lines[1], wantTiming)
		}
		if lines[2] != segments[i].Text {
			t.Fatalf("cue %d text = %q, want %q", i+1, lines[2], segments[i].Text)
		}
	}
}

func TestWriteSRTSingleCueFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.srt")
	err := WriteSRT(path, []media.TranslatedSegment{{Start: 0, End: 3, Text: "Bonjour"}})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "1\n00:00:00,000 --> 00:00:03,000\nBonjour\n"
	if string(data) != want {
		t.Fatalf("srt content = %q, want %q", data, want)
	}
}

func TestWriteSRTNonLatinUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ar.srt")
	text := "مرحبا بالعالم"
	err := WriteSRT(path, []media.TranslatedSegment{{Start: 1, End: 2, Text: text}})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), text) {
		t.Fatalf("UTF-8 text not preserved in %q", data)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	for _, seconds := range []float64{0, 0.001, 1.5, 59.999, 61.25, 3599.5, 3661.042, 86399.987} {
		formatted := FormatTimestamp(seconds)
		parsed, err := ParseTimestamp(formatted)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q): %v", formatted, err)
		}
		if math.Abs(parsed-seconds) > 0.001 {
			t.Fatalf("round trip drift: %v -> %q -> %v", seconds, formatted, parsed)
		}
	}
}

func TestFormatTimestampExamples(t *testing.T) {
	cases := map[float64]string{
		0:        "00:00:00,000",
		3:        "00:00:03,000",
		3661.042: "01:01:01,042",
		-5:       "00:00:00,000",
	}
	for seconds, want := range cases {
		if got := FormatTimestamp(seconds); got != want {
			t.Fatalf("FormatTimestamp(%v) = %q, want %q", seconds, got, want)
		}
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "12:34", "aa:bb:cc,ddd", "00:00:00"} {
		if _, err := ParseTimestamp(value); err == nil {
			t.Fatalf("ParseTimestamp(%q) accepted invalid input", value)
		}
	}
}

func TestCountCues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cues.srt")
	segments := []media.TranslatedSegment{
		{Start: 0, End: 1, Text: "a"},
		{Start: 1, End: 2, Text: "b"},
	}
	if err := WriteSRT(path, segments); err != nil {
		t.Fatal(err)
	}
	count, err := CountCues(path)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("cue count = %d, want 2", count)
	}

	empty := filepath.Join(dir, "empty.srt")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	count, err = CountCues(empty)
	if err != nil || count != 0 {
		t.Fatalf("empty count = (%d, %v), want (0, nil)", count, err)
	}
}
