package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/stockroom/internal/server"
	"github.com/shashiranjanraj/stockroom/pkg/cache"
	"github.com/shashiranjanraj/stockroom/pkg/database"
	"github.com/shashiranjanraj/stockroom/pkg/event"
	"github.com/shashiranjanraj/stockroom/pkg/ws"
)

// stockroom serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Migrate, then start the HTTP (and gRPC) server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Run(cmd.Context())
	},
}

// stockroom route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List every HTTP route",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Routes are mounted without touching the database.
		app, err := server.NewHTTP(&database.Store{}, cache.NewMemory(), event.NewBus(), ws.NewHub())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		for _, ri := range app.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
