package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/anacostia-study/ejscreen-cli/internal/spatial"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Join the filtered tract dataset onto the boundary shapefile",
	Long: `Left-joins the boundary shapefile with the filtered tract CSV on their
normalized geographic identifiers and writes the merged dataset as GeoJSON.
The matched/total count is the primary signal that the two sources agree on
identifier format.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		shpPath, _ := cmd.Flags().GetString("shapefile")
		if shpPath == "" {
			shpPath = cfg.Paths.Shapefile
		}
		csvPath, _ := cmd.Flags().GetString("data")
		if csvPath == "" {
			csvPath = cfg.Paths.FilteredCSV
		}
		outPath, _ := cmd.Flags().GetString("output")
		if outPath == "" {
			outPath = cfg.Paths.MergedGeoJSON
		}
		boundaryKey, _ := cmd.Flags().GetString("geoid-column")
		tableKey, _ := cmd.Flags().GetString("id-column")

		res, err := spatial.MergeFiles(shpPath, csvPath, outPath, boundaryKey, tableKey)
		if err != nil {
			return eris.Wrap(err, "merge")
		}

		fmt.Printf("Matched %d out of %d features -> %s\n", res.Matched, res.Total, outPath)
		return nil
	},
}

func init() {
	mergeCmd.Flags().String("shapefile", "", "boundary shapefile path (default: from config)")
	mergeCmd.Flags().String("data", "", "tabular CSV path (default: from config)")
	mergeCmd.Flags().String("output", "", "merged GeoJSON output path (default: from config)")
	mergeCmd.Flags().String("geoid-column", "GEOID", "identifier attribute in the shapefile")
	mergeCmd.Flags().String("id-column", "ID", "identifier column in the CSV")
	rootCmd.AddCommand(mergeCmd)
}
