// Command stockroom serves the inventory API and runs its maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/shashiranjanraj/stockroom/database/migrations"
	_ "github.com/shashiranjanraj/stockroom/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "stockroom",
	Short:         "Product and supplier inventory API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.AddCommand(exportCmd)
}
