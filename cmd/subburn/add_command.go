package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subburn/internal/language"
	"subburn/internal/queue"
)

var videoFileExtensions = map[string]struct{}{
	".mkv":  {},
	".mp4":  {},
	".avi":  {},
	".mov":  {},
	".webm": {},
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var targetLanguage string
	var sourceLanguage string

	cmd := &cobra.Command{
		Use:   "add <video>",
		Short: "Add a video file to the processing queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcePath, err := resolveVideoPath(args[0])
			if err != nil {
				return err
			}
			if _, ok := language.Resolve(targetLanguage); !ok {
				return fmt.Errorf("unknown target language %q (see `subburn languages`)", targetLanguage)
			}
			if _, ok := language.ResolveHint(sourceLanguage); !ok {
				return fmt.Errorf("unknown source language %q (see `subburn languages`)", sourceLanguage)
			}

			return ctx.withStore(func(store *queue.Store) error {
				item, err := store.Add(cmd.Context(), sourcePath, targetLanguage, sourceLanguage)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued %s as item #%d (target: %s)\n", filepath.Base(sourcePath), item.ID, targetLanguage)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&targetLanguage, "to", "t", "", "Target subtitle language (required)")
	cmd.Flags().StringVarP(&sourceLanguage, "from", "f", "", "Source audio language (default: auto-detect)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func resolveVideoPath(arg string) (string, error) {
	absPath, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("file does not exist: %s", absPath)
		}
		return "", fmt.Errorf("inspect file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", absPath)
	}

	ext := strings.ToLower(filepath.Ext(info.Name()))
	if _, ok := videoFileExtensions[ext]; !ok {
		return "", fmt.Errorf("unsupported file extension %q", ext)
	}
	return absPath, nil
}
