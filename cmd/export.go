package cmd

import (
	"fmt"

	"github.com/abhisek/voltscope/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a region's charts to PNG files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		region, err := regionFlag(cmd)
		if err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("out")
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		files, err := export.WriteRegion(dir, newService(cfg), region)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, files.Transition)
		fmt.Fprintln(out, files.Technology)
		return nil
	},
}

func init() {
	addRegionFlag(exportCmd)
	exportCmd.Flags().StringP("out", "o", ".", "Directory to write the PNG files to")
}
