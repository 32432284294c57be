// Package workflow drives queued subtitling runs. A manager polls the
// queue for pending items, executes the pipeline for each, and persists
// progress and results back to the store.
package workflow
