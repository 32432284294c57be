package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"subburn/internal/pipeline"
	"subburn/internal/workflow"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var targetLanguage string
	var sourceLanguage string

	cmd := &cobra.Command{
		Use:   "process <video>",
		Short: "Subtitle a single video without queueing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcePath, err := resolveVideoPath(args[0])
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runner, err := workflow.NewRunner(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Processing %s (target: %s)\n", sourcePath, targetLanguage)

			start := time.Now()
			result, err := runner.Run(cmd.Context(), pipeline.Request{
				SourcePath:     sourcePath,
				TargetLanguage: targetLanguage,
				SourceLanguage: sourceLanguage,
				Observer: pipeline.ObserverFunc(func(percent int) {
					fmt.Fprintf(out, "  %3d%%\n", percent)
				}),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Done in %s\n", time.Since(start).Round(time.Second))
			fmt.Fprintf(out, "  Video:      %s\n", result.OutputVideoPath)
			fmt.Fprintf(out, "  Subtitles:  %s\n", result.SubtitleFilePath)
			fmt.Fprintf(out, "  Transcript: %s\n", result.TranscriptFilePath)
			if result.DetectedLanguage != "" {
				fmt.Fprintf(out, "  Detected:   %s\n", result.DetectedLanguage)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetLanguage, "to", "t", "", "Target subtitle language (required)")
	cmd.Flags().StringVarP(&sourceLanguage, "from", "f", "", "Source audio language (default: auto-detect)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
