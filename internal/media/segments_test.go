package media

import "testing"

func TestJoinSegmentText(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 1.5, Text: " Hello there. "},
		{Start: 1.5, End: 2.0, Text: ""},
		{Start: 2.0, End: 4.0, Text: "General Kenobi."},
	}
	got := JoinSegmentText(segments)
	want := "Hello there. General Kenobi."
	if got != want {
		t.Fatalf("joined text = %q, want %q", got, want)
	}
}

func TestJoinSegmentTextEmpty(t *testing.T) {
	if got := JoinSegmentText(nil); got != "" {
		t.Fatalf("expected empty join, got %q", got)
	}
}

func TestSegmentDuration(t *testing.T) {
	if d := (Segment{Start: 1, End: 3.5}).Duration(); d != 2.5 {
		t.Fatalf("duration = %v, want 2.5", d)
	}
	if d := (Segment{Start: 3, End: 1}).Duration(); d != 0 {
		t.Fatalf("inverted span duration = %v, want 0", d)
	}
}

func TestTranslatedSegmentFailed(t *testing.T) {
	ok := TranslatedSegment{Text: "Bonjour"}
	if ok.Failed() {
		t.Fatal("unexpected failure flag for translated text")
	}
	failed := TranslatedSegment{Text: TranslationFailedSentinel}
	if !failed.Failed() {
		t.Fatal("expected failure flag for sentinel text")
	}
}

func TestTranscriptionResultEmpty(t *testing.T) {
	if !(TranscriptionResult{}).Empty() {
		t.Fatal("zero result should be empty")
	}
	r := TranscriptionResult{Segments: []Segment{{End: 1, Text: "hi"}}}
	if r.Empty() {
		t.Fatal("populated result should not be empty")
	}
}
