package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/anacostia-study/ejscreen-cli/internal/tabular"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter the statewide tract dataset down to the study state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")
		if input == "" {
			input = cfg.Paths.TractCSV
		}
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = cfg.Paths.FilteredCSV
		}
		column, _ := cmd.Flags().GetString("column")
		if column == "" {
			column = cfg.Study.StateColumn
		}
		value, _ := cmd.Flags().GetString("value")
		if value == "" {
			value = cfg.Study.StateValue
		}

		table, err := tabular.Load(input)
		if err != nil {
			return eris.Wrap(err, "filter: load")
		}

		filtered, err := tabular.FilterEqual(table, column, value)
		if err != nil {
			return eris.Wrap(err, "filter")
		}

		if err := tabular.Save(filtered, output); err != nil {
			return eris.Wrap(err, "filter: save")
		}

		fmt.Printf("Filtered %d rows out of %d total rows -> %s\n",
			len(filtered.Rows), len(table.Rows), output)
		return nil
	},
}

func init() {
	filterCmd.Flags().String("input", "", "input CSV path (default: from config)")
	filterCmd.Flags().String("output", "", "output CSV path (default: from config)")
	filterCmd.Flags().String("column", "", "column to filter on (default: from config)")
	filterCmd.Flags().String("value", "", "value to keep (default: from config)")
	rootCmd.AddCommand(filterCmd)
}
