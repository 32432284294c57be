package media

import "strings"

// TranslationFailedSentinel replaces a segment's text when its translation
// call failed. It is a normal, non-fatal outcome and flows through to the
// subtitle file unchanged.
const TranslationFailedSentinel = "[Translation Failed]"

// Segment is a timestamped span of recognized or translated speech.
// Start and End are seconds from the beginning of the media. Segments are
// produced in chronological order by the recognizer; the pipeline does not
// re-validate ordering and passes unusual timings through untouched.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Duration returns the segment length in seconds. Negative spans clamp to zero.
func (s Segment) Duration() float64 {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

// TranslatedSegment carries a segment's timing with its text replaced by the
// target-language translation, or by TranslationFailedSentinel on failure.
type TranslatedSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Failed reports whether this segment holds the failure sentinel instead of
// a translation.
func (s TranslatedSegment) Failed() bool {
	return s.Text == TranslationFailedSentinel
}

// TranscriptionResult is the immutable output of one transcription run.
type TranscriptionResult struct {
	Segments         []Segment
	FullText         string
	DetectedLanguage string
}

// Empty reports whether the recognizer produced no usable segments.
func (r TranscriptionResult) Empty() bool {
	return len(r.Segments) == 0
}

// JoinSegmentText concatenates trimmed segment texts with single spaces,
// skipping empty segments. Used when the recognizer does not report a
// combined transcript of its own.
func JoinSegmentText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
