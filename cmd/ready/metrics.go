package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/garrettladley/ready/internal/metric"
)

func metricsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Describe the metrics ready computes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogue := metric.Catalogue()
			if asJSON {
				return printJSON(catalogue)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "METRIC\tUNIT\tDESCRIPTION")
			for _, info := range catalogue {
				unit := info.Unit
				if unit == "" {
					unit = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Title, unit, info.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalogue as JSON")
	return cmd
}
