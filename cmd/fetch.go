package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anacostia-study/ejscreen-cli/internal/batch"
	"github.com/anacostia-study/ejscreen-cli/internal/ejscreen"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch EJScreen records for the study block groups and city",
	Long: `Fetches one EJScreen record per configured block group with a fixed
inter-request delay, skipping failed areas, and saves the batch as CSV.
Then fetches the city-level record and saves it alongside.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := zap.L().With(zap.String("command", "fetch"))

		client := ejscreen.NewClient(ejscreen.ClientConfig{
			BaseURL: cfg.API.BaseURL,
			Unit:    cfg.API.Unit,
			Timeout: cfg.API.Timeout(),
		})
		collector := batch.NewCollector(client, cfg.API.RequestDelay())

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = cfg.Paths.BlockGroupCSV
		}
		cityOutput, _ := cmd.Flags().GetString("city-output")
		if cityOutput == "" {
			cityOutput = cfg.Paths.CityCSV
		}
		skipCity, _ := cmd.Flags().GetBool("skip-city")

		res, err := collector.FetchAll(ctx, cfg.Study.BlockGroups)
		if err != nil {
			return eris.Wrap(err, "fetch: block groups")
		}

		if err := batch.WriteCSV(res.Records, output); err != nil {
			return eris.Wrap(err, "fetch: save block group dataset")
		}
		fmt.Printf("Fetched %d of %d block groups -> %s\n",
			len(res.Records), len(cfg.Study.BlockGroups), output)
		if len(res.Failed) > 0 {
			log.Warn("some block groups failed", zap.Strings("area_ids", res.Failed))
		}

		if skipCity {
			return nil
		}

		cityRec, err := collector.FetchOne(ctx, cfg.Study.CityAreaID, ejscreen.AreaCity, cfg.Study.CityName)
		if err != nil {
			return eris.Wrapf(err, "fetch: city %s", cfg.Study.CityName)
		}
		if err := batch.WriteCSV([]*ejscreen.Record{cityRec}, cityOutput); err != nil {
			return eris.Wrap(err, "fetch: save city dataset")
		}
		fmt.Printf("Fetched %s -> %s\n", cfg.Study.CityName, cityOutput)

		return nil
	},
}

func init() {
	fetchCmd.Flags().String("output", "", "block group CSV output path (default: from config)")
	fetchCmd.Flags().String("city-output", "", "city CSV output path (default: from config)")
	fetchCmd.Flags().Bool("skip-city", false, "skip the city-level fetch")
	rootCmd.AddCommand(fetchCmd)
}
