package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/liveview/internal/listapp"
	"github.com/vango-dev/liveview/pkg/middleware"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the route table in match order",
		Long: `List the application's routes in the order they are tried.
The first route whose predicate accepts a request handles it. A table
without a trailing catch-all sends the remaining requests to the 404
fallback.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			table := listapp.Routes()
			names := table.Routes()
			for i, name := range names {
				if i == len(names)-1 && table.HasCatchAll() {
					fmt.Fprintf(tw, "%d\t%s\t(catch-all)\n", i+1, name)
					continue
				}
				fmt.Fprintf(tw, "%d\t%s\n", i+1, name)
			}
			if !table.HasCatchAll() {
				fmt.Fprintf(tw, "-\t%s\t(404)\n", middleware.UnmatchedRoute)
			}
			return tw.Flush()
		},
	}
}
