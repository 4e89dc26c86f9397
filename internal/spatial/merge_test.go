package spatial

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/anacostia-study/ejscreen-cli/internal/tabular"
)

func boundary(geoid string) Feature {
	return Feature{
		Geom:  geom.NewPointFlat(geom.XY, []float64{-77.0, 38.9}).SetSRID(4326),
		Attrs: map[string]string{"GEOID": geoid},
	}
}

func indicatorTable(rows ...[]string) *tabular.Table {
	return &tabular.Table{
		Header: []string{"ID", "LOWINCPCT"},
		Rows:   rows,
	}
}

func TestMerge_LeftJoin(t *testing.T) {
	boundaries := []Feature{boundary("001"), boundary("002"), boundary("003")}
	table := indicatorTable(
		[]string{"001.0", "A"},
		[]string{"003.0", "C"},
	)

	res, err := Merge(boundaries, table, "GEOID", "ID")
	require.NoError(t, err)

	// Every boundary survives the left join; the float-suffixed table IDs
	// still match the zero-padded boundary side.
	require.Len(t, res.Features, 3)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Matched)

	assert.True(t, res.Features[0].Matched)
	assert.Equal(t, "A", res.Features[0].Data["LOWINCPCT"])
	assert.False(t, res.Features[1].Matched)
	assert.Nil(t, res.Features[1].Data)
	assert.True(t, res.Features[2].Matched)
	assert.Equal(t, "C", res.Features[2].Data["LOWINCPCT"])
}

func TestMerge_EmptyTable(t *testing.T) {
	boundaries := []Feature{boundary("001"), boundary("002")}

	res, err := Merge(boundaries, indicatorTable(), "GEOID", "ID")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 0, res.Matched)
	assert.Len(t, res.Features, 2)
}

func TestMerge_DuplicateKeyFanOut(t *testing.T) {
	boundaries := []Feature{boundary("001"), boundary("002")}
	table := indicatorTable(
		[]string{"001.0", "A"},
		[]string{"001", "B"},
	)

	res, err := Merge(boundaries, table, "GEOID", "ID")
	require.NoError(t, err)

	// A duplicate table key multiplies its boundary row. Callers keep the
	// key unique; the diagnostics make the fan-out visible.
	assert.Equal(t, 3, res.Total)
	assert.Len(t, res.Features, 3)
	assert.Equal(t, "A", res.Features[0].Data["LOWINCPCT"])
	assert.Equal(t, "B", res.Features[1].Data["LOWINCPCT"])
	assert.False(t, res.Features[2].Matched)
}

func TestMerge_StrippedLeadingZerosDoNotMatch(t *testing.T) {
	boundaries := []Feature{boundary("001")}
	table := indicatorTable([]string{"1.0", "A"})

	res, err := Merge(boundaries, table, "GEOID", "ID")
	require.NoError(t, err)

	// Normalization never restores leading zeros; the loss shows up only
	// as a depressed match count.
	assert.Equal(t, 0, res.Matched)
	assert.Equal(t, 1, res.Total)
}

func TestMerge_MissingTableKeyColumn(t *testing.T) {
	_, err := Merge([]Feature{boundary("001")}, indicatorTable(), "GEOID", "WRONG")
	require.Error(t, err)

	var se *tabular.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "WRONG", se.Column)
}

func TestMerge_MissingBoundaryKey(t *testing.T) {
	_, err := Merge([]Feature{boundary("001")}, indicatorTable(), "NOPE", "ID")
	require.Error(t, err)

	var se *tabular.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "NOPE", se.Column)
}

func TestMerge_NoBoundaries(t *testing.T) {
	res, err := Merge(nil, indicatorTable([]string{"001.0", "A"}), "GEOID", "ID")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Features)
}

func TestMergeFiles_MissingShapefile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("ID\n001\n"), 0o644))

	_, err := MergeFiles(filepath.Join(dir, "missing.shp"), csvPath,
		filepath.Join(dir, "out.geojson"), "GEOID", "ID")
	require.Error(t, err)

	var mie *tabular.MissingInputError
	require.True(t, errors.As(err, &mie))
	assert.Contains(t, mie.Path, "missing.shp")
}

func TestMergeFiles_MissingCSV(t *testing.T) {
	dir := t.TempDir()
	shpPath := filepath.Join(dir, "bounds.shp")
	require.NoError(t, os.WriteFile(shpPath, []byte("stub"), 0o644))

	// The CSV existence check fires before any load touches the shapefile.
	_, err := MergeFiles(shpPath, filepath.Join(dir, "missing.csv"),
		filepath.Join(dir, "out.geojson"), "GEOID", "ID")
	require.Error(t, err)

	var mie *tabular.MissingInputError
	require.True(t, errors.As(err, &mie))
	assert.Contains(t, mie.Path, "missing.csv")
}
