// Package ffmpeg wraps the external transcoder for the two pipeline
// operations that need it: demuxing a video's audio track into a
// recognizer-friendly WAV, and burning a subtitle file into the video stream.
package ffmpeg
