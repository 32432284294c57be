// Package translate performs per-segment machine translation with
// fail-soft semantics: a segment that cannot be translated keeps its
// timing and carries a fixed placeholder instead of failing the run.
package translate
