package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/tinyweb/cmd/tinyweb/internal/site"
)

func newRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the demo routes and the handler types serving them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printRoutes(cmd.OutOrStdout())
		},
	}
}

func printRoutes(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tHANDLER\tFILTERS")
	for _, r := range site.Routes() {
		fmt.Fprintf(w, "%s\t%s\t%v\n", r.Pattern, r.Handler, r.Filters)
	}
	return w.Flush()
}
