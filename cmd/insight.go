package cmd

import (
	"fmt"

	"github.com/abhisek/voltscope/internal/narrative"
	"github.com/spf13/cobra"
)

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Ask the configured provider to analyze one chart",
	Long: `Summarize a chart of the selected region in a few sentences.

Without a configured key, or when the provider fails, the fallback
sentence is printed and the command still exits 0.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		region, err := regionFlag(cmd)
		if err != nil {
			return err
		}
		chart, _ := cmd.Flags().GetString("chart")
		structured, _ := cmd.Flags().GetBool("structured")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		svc := newService(cfg)

		n, err := openNarration(cfg)
		if err != nil {
			return err
		}
		defer n.Close()

		ctx := cmd.Context()
		var res narrative.Result
		switch chart {
		case kindTransition:
			points, err := svc.TransitionSeries(region)
			if err != nil {
				return err
			}
			if structured {
				res = narrative.ChartInsight(ctx, n.client, narrative.TransitionSubject, points, region)
			} else {
				res = narrative.SummarizeSeries(ctx, n.client, narrative.TransitionSubject, points, region)
			}
		case kindTechnology:
			points, err := svc.TechnologySeries(region)
			if err != nil {
				return err
			}
			if structured {
				res = narrative.ChartInsight(ctx, n.client, narrative.TechnologySubject, points, region)
			} else {
				res = narrative.SummarizeSeries(ctx, n.client, narrative.TechnologySubject, points, region)
			}
		default:
			return fmt.Errorf("unknown chart %q (want transition or technology)", chart)
		}

		out := cmd.OutOrStdout()
		if res.Insight != nil {
			fmt.Fprintf(out, "Trend: %s\n\n", res.Insight.Trend)
		}
		fmt.Fprintln(out, res.Display())
		return nil
	},
}

func init() {
	addRegionFlag(insightCmd)
	insightCmd.Flags().StringP("chart", "c", kindTransition, "Chart to analyze: transition or technology")
	insightCmd.Flags().Bool("structured", false, "Request a structured insight with a trend label")
}
