package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCommand(version, commit, date string) *cobra.Command {
	root := &cobra.Command{
		Use:   "tinyweb",
		Short: "tinyweb demo server",
		Long: `tinyweb serves a small demo site built from handler types, filters and
embedded views. Use it as a starting point or to try the framework.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newRoutesCommand())
	return root
}
