// Package services holds cross-cutting service plumbing: the error marker
// taxonomy used to classify stage failures, context annotations carried through
// pipeline runs, and the narrow command-runner seam that wraps external
// process invocation so stages can be tested against fakes.
package services
