package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subburn/internal/preflight"
	"subburn/internal/queue"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, dependency, and queue health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			p := newStatusPrinter(cmd.OutOrStdout())

			p.section("Configuration")
			p.line("Work directory", statusInfo, cfg.Paths.WorkDir)
			p.line("Output directory", statusInfo, cfg.Paths.OutputDir)
			p.line("Transcriber", statusInfo, cfg.Transcriber.Backend)
			p.line("Notifications", statusInfo, yesNo(strings.TrimSpace(cfg.Notifications.NtfyTopic) != ""))
			p.blank()

			p.section("Preflight")
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				p.line(result.Name, kind, result.Detail)
			}
			p.blank()

			p.section("Dependencies")
			for _, status := range preflight.CheckSystemDeps(cfg) {
				kind := statusOK
				detail := status.Command
				if !status.Available {
					detail = status.Detail
					if status.Optional {
						kind = statusWarn
					} else {
						kind = statusError
					}
				}
				p.line(status.Name, kind, detail)
			}
			p.blank()

			p.section("Queue")
			err = ctx.withStore(func(store *queue.Store) error {
				health, err := store.Health(cmd.Context())
				if err != nil {
					return err
				}
				detail := fmt.Sprintf("%d total (%d pending, %d processing, %d completed, %d failed)",
					health.Total, health.Pending, health.Processing, health.Completed, health.Failed)
				kind := statusOK
				if health.Failed > 0 {
					kind = statusWarn
				}
				p.line("Items", kind, detail)
				return nil
			})
			if err != nil {
				p.line("Items", statusError, err.Error())
			}
			return nil
		},
	}
}
