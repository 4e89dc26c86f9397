// Package spatial loads boundary shapefiles, joins them with tabular
// indicator data on normalized identifiers, and persists the merged
// geometry-bearing dataset.
package spatial

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// Feature is one boundary polygon plus its attribute row.
type Feature struct {
	Geom  geom.T
	Attrs map[string]string
}

// LoadShapefile reads every feature of a boundary shapefile. Attribute
// names and values are NUL-trimmed (DBF padding); polygon shapes become
// MultiPolygon geometries with SRID 4326. Records whose geometry cannot be
// converted are skipped.
func LoadShapefile(path string) ([]Feature, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "spatial: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	var features []Feature
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		g := shapeToGeom(shape)
		if g == nil {
			skipped++
			continue
		}

		attrs := make(map[string]string, len(names))
		for i, name := range names {
			val := strings.TrimRight(reader.Attribute(i), "\x00")
			attrs[name] = strings.TrimSpace(val)
		}

		features = append(features, Feature{Geom: g, Attrs: attrs})
	}

	if skipped > 0 {
		zap.L().Debug("spatial: skipped shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	return features, nil
}

// shapeToGeom converts a go-shp geometry to a go-geom geometry. Returns nil
// for nil or unsupported shapes.
func shapeToGeom(shape shp.Shape) geom.T {
	switch s := shape.(type) {
	case *shp.Point:
		return geom.NewPointFlat(geom.XY, []float64{s.X, s.Y}).SetSRID(4326)
	case *shp.Polygon:
		return polygonToMultiPolygon(s)
	default:
		return nil
	}
}

// polygonToMultiPolygon converts a shapefile Polygon to a geom.MultiPolygon.
func polygonToMultiPolygon(p *shp.Polygon) geom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		coords := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			coords = append(coords, p.Points[j].X, p.Points[j].Y)
		}

		ring := geom.NewLinearRingFlat(geom.XY, coords)
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("spatial: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}

		if err := mp.Push(poly); err != nil {
			zap.L().Debug("spatial: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
