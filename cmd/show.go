package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/anacostia-study/ejscreen-cli/internal/ejscreen"
)

var showCmd = &cobra.Command{
	Use:   "show <area-id>",
	Short: "Fetch and print the indicator summary for one area",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		areaType, _ := cmd.Flags().GetString("areatype")
		name, _ := cmd.Flags().GetString("name")

		client := ejscreen.NewClient(ejscreen.ClientConfig{
			BaseURL: cfg.API.BaseURL,
			Unit:    cfg.API.Unit,
			Timeout: cfg.API.Timeout(),
		})

		rec, err := client.Fetch(cmd.Context(), args[0], ejscreen.AreaType(areaType), name)
		if err != nil {
			return eris.Wrap(err, "show")
		}

		fmt.Print(rec.Summary())
		return nil
	},
}

func init() {
	showCmd.Flags().String("areatype", string(ejscreen.AreaBlockGroup), "area type (blockgroup or city)")
	showCmd.Flags().String("name", "", "display name for city-type queries")
	rootCmd.AddCommand(showCmd)
}
