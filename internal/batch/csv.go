package batch

import (
	"go.uber.org/zap"

	"github.com/anacostia-study/ejscreen-cli/internal/ejscreen"
	"github.com/anacostia-study/ejscreen-cli/internal/tabular"
)

// csvHeader is the column order of the persisted batch dataset. area_id
// comes first so downstream joins key on the leading column.
var csvHeader = []string{
	"area_id",
	"total_population",
	"percent_minority",
	"per_capita_income",
	"unemployment_rate",
	"pm25_air_quality",
	"traffic_exposure",
	"diesel_particulate_matter",
	"life_expectancy",
}

// ToTable flattens records into a tabular dataset, one row per area in
// record order. Missing indicators stay empty cells.
func ToTable(records []*ejscreen.Record) *tabular.Table {
	t := &tabular.Table{Header: csvHeader}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.AreaID,
			r.TotalPopulation,
			r.PercentMinority,
			r.PerCapitaIncome,
			r.UnemploymentRate,
			r.PM25AirQuality,
			r.TrafficExposure,
			r.DieselParticulateMatter,
			r.LifeExpectancy,
		})
	}
	return t
}

// WriteCSV persists records to path, creating parent directories.
func WriteCSV(records []*ejscreen.Record, path string) error {
	if err := tabular.Save(ToTable(records), path); err != nil {
		return err
	}
	zap.L().Info("saved batch dataset",
		zap.String("path", path),
		zap.Int("rows", len(records)),
	)
	return nil
}
