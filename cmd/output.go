package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/abhisek/voltscope/internal/aggregate"
	"github.com/abhisek/voltscope/internal/energy"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func addFormatFlag(c *cobra.Command) {
	c.Flags().StringP("format", "f", formatTable, "Output format: table, json or yaml")
}

func addRegionFlag(c *cobra.Command) {
	c.Flags().StringP("region", "r", energy.World.String(), "Region name or slug")
}

// regionFlag resolves --region. Unknown values wrap
// aggregate.ErrInvalidRegion so they read the same as service errors.
func regionFlag(cmd *cobra.Command) (energy.Region, error) {
	s, _ := cmd.Flags().GetString("region")
	return parseRegion(s)
}

func parseRegion(s string) (energy.Region, error) {
	r, ok := energy.ParseRegion(s)
	if !ok {
		slugs := make([]string, 0, len(energy.Regions()))
		for _, known := range energy.Regions() {
			slugs = append(slugs, known.Slug())
		}
		return "", fmt.Errorf("region %q (want one of %s): %w", s, strings.Join(slugs, ", "), aggregate.ErrInvalidRegion)
	}
	return r, nil
}

// render writes v as JSON or YAML, or calls table with a tabwriter for
// the default format.
func render(cmd *cobra.Command, v any, table func(tw *tabwriter.Writer)) error {
	format, _ := cmd.Flags().GetString("format")
	return renderTo(cmd.OutOrStdout(), format, v, table)
}

func renderTo(w io.Writer, format string, v any, table func(tw *tabwriter.Writer)) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatTable, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
	return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
}
