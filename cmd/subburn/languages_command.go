package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subburn/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "languages",
		Short:       "List supported subtitle languages",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			names := language.Names()
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				code, _ := language.Resolve(name)
				rows = append(rows, []string{name, code})
			}
			table := renderTable([]string{"Language", "Code"}, rows)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			fmt.Fprintf(cmd.OutOrStdout(), "Use %q as the source language to auto-detect.\n", language.Auto)
			return nil
		},
	}
}
