package spatial

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/anacostia-study/ejscreen-cli/internal/geoid"
	"github.com/anacostia-study/ejscreen-cli/internal/tabular"
)

// MergedFeature is a boundary feature extended with the columns of a
// matched table row. Data is nil for unmatched boundaries; the table
// columns render as nulls on output.
type MergedFeature struct {
	Geom    geom.T
	Attrs   map[string]string
	Data    map[string]string
	Matched bool
}

// MergeResult is the joined dataset plus its match diagnostics. Matched
// versus Total is the primary success signal: a silently low match rate
// means the two sources disagree on identifier format.
type MergeResult struct {
	Features     []MergedFeature
	TableColumns []string
	Matched      int
	Total        int
}

// Merge left-joins boundary features with table rows on their normalized
// identifiers. Every boundary appears in the output: once per matching
// table row, or once with nil Data when unmatched. Callers must keep the
// table key unique to avoid fan-out.
func Merge(boundaries []Feature, table *tabular.Table, boundaryKey, tableKey string) (*MergeResult, error) {
	keyIdx := table.ColumnIndex(tableKey)
	if keyIdx < 0 {
		return nil, &tabular.SchemaError{Column: tableKey}
	}
	if len(boundaries) > 0 {
		if _, ok := boundaries[0].Attrs[boundaryKey]; !ok {
			return nil, &tabular.SchemaError{Column: boundaryKey}
		}
	}

	// Index table rows by normalized key, preserving duplicates.
	byKey := make(map[string][]int, len(table.Rows))
	for i, row := range table.Rows {
		if keyIdx >= len(row) {
			continue
		}
		k := geoid.Normalize(row[keyIdx])
		byKey[k] = append(byKey[k], i)
	}

	res := &MergeResult{TableColumns: table.Header}

	for _, b := range boundaries {
		k := geoid.Normalize(b.Attrs[boundaryKey])
		rows := byKey[k]

		if len(rows) == 0 {
			res.Features = append(res.Features, MergedFeature{Geom: b.Geom, Attrs: b.Attrs})
			res.Total++
			continue
		}

		for _, ri := range rows {
			data := make(map[string]string, len(table.Header))
			row := table.Rows[ri]
			for ci, col := range table.Header {
				if ci < len(row) {
					data[col] = row[ci]
				}
			}
			res.Features = append(res.Features, MergedFeature{
				Geom:    b.Geom,
				Attrs:   b.Attrs,
				Data:    data,
				Matched: data[tableKey] != "",
			})
			res.Total++
		}
	}

	for _, f := range res.Features {
		if f.Matched {
			res.Matched++
		}
	}

	zap.L().Info("merge complete",
		zap.Int("matched", res.Matched),
		zap.Int("total", res.Total),
	)

	return res, nil
}

// MergeFiles checks both input paths exist, loads them, joins on the given
// keys, and persists the merged dataset as GeoJSON. The existence check
// runs before any load so a missing input fails fast with no partial
// state.
func MergeFiles(shpPath, csvPath, outPath, boundaryKey, tableKey string) (*MergeResult, error) {
	for _, p := range []string{shpPath, csvPath} {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				return nil, &tabular.MissingInputError{Path: p}
			}
			return nil, eris.Wrapf(err, "spatial: stat %s", p)
		}
	}

	log := zap.L().With(zap.String("component", "spatial.merge"))

	log.Info("loading boundaries", zap.String("path", shpPath))
	boundaries, err := LoadShapefile(shpPath)
	if err != nil {
		return nil, err
	}

	log.Info("loading table", zap.String("path", csvPath))
	table, err := tabular.Load(csvPath)
	if err != nil {
		return nil, err
	}

	res, err := Merge(boundaries, table, boundaryKey, tableKey)
	if err != nil {
		return nil, err
	}

	if err := WriteGeoJSON(outPath, res); err != nil {
		return nil, err
	}

	log.Info("saved merged dataset",
		zap.String("path", outPath),
		zap.Int("matched", res.Matched),
		zap.Int("total", res.Total),
	)

	return res, nil
}
