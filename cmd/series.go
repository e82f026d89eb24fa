package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

const (
	kindTransition = "transition"
	kindTechnology = "technology"
	kindRecords    = "records"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Print a region's yearly series",
	Long: `Print one of a region's yearly projections:

  transition   fossil vs clean totals
  technology   solar, wind, coal and gas
  records      every source plus CO2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		region, err := regionFlag(cmd)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		svc := newService(cfg)
		kind, _ := cmd.Flags().GetString("kind")

		switch kind {
		case kindTransition:
			points, err := svc.TransitionSeries(region)
			if err != nil {
				return err
			}
			return render(cmd, points, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "YEAR\tFOSSIL\tCLEAN")
				for _, p := range points {
					fmt.Fprintf(tw, "%d\t%d\t%d\n", p.Year, p.FossilTotal, p.CleanTotal)
				}
			})

		case kindTechnology:
			points, err := svc.TechnologySeries(region)
			if err != nil {
				return err
			}
			return render(cmd, points, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "YEAR\tSOLAR\tWIND\tCOAL\tGAS")
				for _, p := range points {
					fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\n", p.Year, p.Solar, p.Wind, p.Coal, p.Gas)
				}
			})

		case kindRecords:
			records, err := svc.RecordsForRegion(region)
			if err != nil {
				return err
			}
			return render(cmd, records, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "YEAR\tSOLAR\tWIND\tHYDRO\tCOAL\tGAS\tOIL\tCO2")
				for _, r := range records {
					fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
						r.Year, r.Solar, r.Wind, r.Hydro, r.Coal, r.Gas, r.Oil, r.CO2)
				}
			})
		}
		return fmt.Errorf("unknown series kind %q (want transition, technology or records)", kind)
	},
}

func init() {
	addRegionFlag(seriesCmd)
	addFormatFlag(seriesCmd)
	seriesCmd.Flags().StringP("kind", "k", kindTransition, "Series to print: transition, technology or records")
}
