package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/stockroom/app/services"
	"github.com/shashiranjanraj/stockroom/pkg/database"
	"github.com/shashiranjanraj/stockroom/pkg/storage"
)

var (
	exportDisk string
	exportDir  string
)

// stockroom export
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON snapshot of products and suppliers to a storage disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withStore(ctx, func(s *database.Store) error {
			disks, err := storage.FromConfig(ctx)
			if err != nil {
				return err
			}
			disk, err := disks.Disk(exportDisk)
			if err != nil {
				return err
			}

			path, err := services.NewExportService(s).Export(ctx, disk, exportDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", disk.URL(path))
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDisk, "disk", "", "storage disk: local or s3 (default STORAGE_DISK)")
	exportCmd.Flags().StringVar(&exportDir, "dir", "exports", "directory on the disk")
}
