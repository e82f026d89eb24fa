package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Write a short markdown story about a region's transition",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		region, err := regionFlag(cmd)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		stats, err := newService(cfg).LatestStats(region)
		if err != nil {
			return err
		}

		n, err := openNarration(cfg)
		if err != nil {
			return err
		}
		defer n.Close()

		res := n.client.ComposeStory(cmd.Context(), region, stats)
		fmt.Fprintln(cmd.OutOrStdout(), res.Display())
		return nil
	},
}

func init() {
	addRegionFlag(storyCmd)
}
