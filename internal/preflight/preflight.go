package preflight

import (
	"context"

	"subburn/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// minimum free space in the work directory; extracted audio plus the
// burned video for a long feature comfortably fit within this.
const minWorkDirBytes = 2 << 30

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir))
	results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckDiskSpace("Work directory space", cfg.Paths.WorkDir, minWorkDirBytes))

	if cfg.Translate.Endpoint != "" {
		results = append(results, CheckTranslateEndpoint(ctx, cfg.Translate.Endpoint))
	}

	return results
}
