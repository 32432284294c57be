// Package media defines the timed-text value types shared across the pipeline:
// transcription segments, transcription results, and translated segments.
package media
