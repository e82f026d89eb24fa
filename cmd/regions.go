package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/abhisek/voltscope/internal/energy"
	"github.com/spf13/cobra"
)

type regionRow struct {
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug" yaml:"slug"`
}

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the regions covered by the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows []regionRow
		for _, r := range energy.Regions() {
			rows = append(rows, regionRow{Name: r.String(), Slug: r.Slug()})
		}
		return render(cmd, rows, func(tw *tabwriter.Writer) {
			fmt.Fprintln(tw, "NAME\tSLUG")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Slug)
			}
		})
	},
}

func init() {
	addFormatFlag(regionsCmd)
}
