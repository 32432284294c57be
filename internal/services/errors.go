package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidLanguage = errors.New("invalid language selection")
	ErrExtraction      = errors.New("audio extraction failed")
	ErrTranscription   = errors.New("transcription failed")
	ErrEmptyTranscript = errors.New("empty transcription")
	ErrBurn            = errors.New("subtitle burn failed")
	ErrIO              = errors.New("io failure")
	ErrTimeout         = errors.New("timeout")
	ErrTransient       = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short machine-readable name for the marker an error carries,
// or "unknown" when the error matches no marker.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidLanguage):
		return "invalid_language"
	case errors.Is(err, ErrExtraction):
		return "extraction_failed"
	case errors.Is(err, ErrEmptyTranscript):
		return "empty_transcription"
	case errors.Is(err, ErrTranscription):
		return "transcription_failed"
	case errors.Is(err, ErrBurn):
		return "burn_failed"
	case errors.Is(err, ErrIO):
		return "io_failure"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrTransient):
		return "transient"
	default:
		return "unknown"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
