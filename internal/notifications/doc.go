// Package notifications sends workflow updates through ntfy when a topic
// is configured, falling back to a noop implementation otherwise.
package notifications
