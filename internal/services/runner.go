package services

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner abstracts external process invocation so stages can run
// against a fake transcoder in tests. Run returns the combined stdout/stderr
// output; a non-zero exit surfaces as a non-nil error with the output
// preserved in the return value.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// RunnerFunc adapts a function to the CommandRunner interface.
type RunnerFunc func(ctx context.Context, name string, args ...string) (string, error)

func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) (string, error) {
	return f(ctx, name, args...)
}

// ExecRunner returns the production runner backed by os/exec.
func ExecRunner() CommandRunner {
	return RunnerFunc(func(ctx context.Context, name string, args ...string) (string, error) {
		cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
		output, err := cmd.CombinedOutput()
		combined := strings.TrimSpace(string(output))
		if err != nil {
			return combined, fmt.Errorf("%s: %w", name, err)
		}
		return combined, nil
	})
}
