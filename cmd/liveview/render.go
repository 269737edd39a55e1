package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/liveview/internal/errors"
	"github.com/vango-dev/liveview/internal/listapp"
	"github.com/vango-dev/liveview/pkg/server"
)

func renderCmd() *cobra.Command {
	var (
		html  bool
		items []string
	)

	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Render a page without starting a server",
		Long: `Dispatch a GET for path through the route table and print the
materialized element tree as JSON, or the HTML page with --html.

Examples:
  liveview render /submit
  liveview render /read/10 --item hello --item world
  liveview render /read/10 --html`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("E301").WithDetail("render takes exactly one path")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd.OutOrStdout(), args[0], items, html)
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "Print the HTML page instead of the element tree")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Add an item to the list before rendering (repeatable)")
	return cmd
}

func runRender(ctx context.Context, w io.Writer, path string, items []string, html bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := server.DefaultConfig().
		WithLive(false).
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv, store := listapp.NewServer(ctx, cfg)
	defer store.Stop()

	for _, item := range items {
		if err := store.Add(ctx, item); err != nil {
			return errors.New("E302").Wrap(err)
		}
	}

	c, err := srv.Capture(ctx, path, nil)
	if err != nil {
		return errors.New("E301").WithDetail(fmt.Sprintf("invalid path %q", path)).Wrap(err)
	}
	if c.Tree == nil {
		return errors.New("E302").WithDetail(fmt.Sprintf("%s answered %d (route %s)", path, c.Response.Status, c.Route))
	}

	if html {
		_, err := w.Write(c.Response.Body)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c.Tree)
}
