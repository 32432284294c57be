// Package subtitles serializes translated segments into SRT subtitle files
// and provides timestamp parsing helpers used for validation and tests.
package subtitles
