package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show headline statistics for a region's latest year",
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

		return render(cmd, stats, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "Region\t%s\n", region)
			fmt.Fprintf(tw, "Year\t%d\n", stats.Year)
			fmt.Fprintf(tw, "Renewable share\t%.1f%%\n", stats.RenewablesShare)
			fmt.Fprintf(tw, "Clean energy\t%s TWh\n", humanize.Comma(int64(stats.TotalRenewables)))
			fmt.Fprintf(tw, "Fossil fuels\t%s TWh\n", humanize.Comma(int64(stats.TotalFossil)))
			fmt.Fprintf(tw, "CO2 emissions\t%s Mt\n", humanize.Comma(int64(stats.CO2)))
		})
	},
}

func init() {
	addRegionFlag(statsCmd)
	addFormatFlag(statsCmd)
}
