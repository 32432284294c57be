// Package awstranscribe provides a cloud transcription backend: the extracted
// audio is uploaded to S3, an Amazon Transcribe job is started and polled, and
// the resulting JSON document is mapped into timed segments.
package awstranscribe
