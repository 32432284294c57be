// Package language holds the immutable catalog of supported languages: the
// mapping from human-readable names to translation-service codes. The catalog
// is the sole validation contract for target and source language selection.
package language
