package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/block-breaker/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game variants",
	Long:  `Shows every registered Block Breaker variant.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	games := registry.List()
	out := cmd.OutOrStdout()

	if len(games) == 0 {
		fmt.Fprintln(out, "No games available.")
		return nil
	}

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Fprintln(out, "Available variants:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'blockbreaker play <id>' to play a variant.")
	return nil
}
