// Package pipeline sequences one video through audio extraction, timed
// transcription, per-segment translation, subtitle serialization, and
// burn-in, reporting coarse progress along the way.
package pipeline
