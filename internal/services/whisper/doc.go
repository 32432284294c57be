// Package whisper runs the Whisper CLI over an extracted audio file and
// parses its JSON output into timed transcription segments.
package whisper
