package dataset

import (
	"fmt"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/twpayne/go-geom"
)

// ReadGeometry reads a GeoJSON FeatureCollection from disk without caching.
// nameProperty selects the display-name property used as the join key.
func ReadGeometry(path, nameProperty string) (*GeometryTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, loadError(KindGeometry, path, fmt.Errorf("read file: %w", err))
	}
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, loadError(KindGeometry, path, fmt.Errorf("%w: decode geojson: %v", ErrMalformed, err))
	}
	t := &GeometryTable{Path: path, NameProperty: nameProperty, Features: make([]Feature, 0, len(fc.Features))}
	sawName := false
	for i, f := range fc.Features {
		if f == nil {
			return nil, loadError(KindGeometry, path, fmt.Errorf("feature %d: %w: null feature", i, ErrMalformed))
		}
		g, err := toGeom(f.Geometry)
		if err != nil {
			return nil, loadError(KindGeometry, path, fmt.Errorf("feature %d: %w", i, err))
		}
		name := ""
		if v, ok := f.Properties[nameProperty]; ok {
			sawName = true
			// Null names stay empty so they never join or match a search.
			if s, ok := v.(string); ok {
				name = s
			}
		}
		t.Features = append(t.Features, Feature{Index: i, Name: name, Geometry: g})
	}
	if len(fc.Features) > 0 && !sawName {
		return nil, loadError(KindGeometry, path, fmt.Errorf("%w: name property %q", ErrMissingColumn, nameProperty))
	}
	return t, nil
}

// toGeom converts a GeoJSON polygon or multipolygon into go-geom form.
func toGeom(g *geojson.Geometry) (geom.T, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: missing geometry", ErrMissingColumn)
	}
	switch g.Type {
	case geojson.GeometryPolygon:
		rings, err := toRings(g.Polygon)
		if err != nil {
			return nil, err
		}
		p, err := geom.NewPolygon(geom.XY).SetCoords(rings)
		if err != nil {
			return nil, fmt.Errorf("%w: polygon: %v", ErrMalformed, err)
		}
		return p, nil
	case geojson.GeometryMultiPolygon:
		polys := make([][][]geom.Coord, 0, len(g.MultiPolygon))
		for _, poly := range g.MultiPolygon {
			rings, err := toRings(poly)
			if err != nil {
				return nil, err
			}
			polys = append(polys, rings)
		}
		mp, err := geom.NewMultiPolygon(geom.XY).SetCoords(polys)
		if err != nil {
			return nil, fmt.Errorf("%w: multipolygon: %v", ErrMalformed, err)
		}
		return mp, nil
	default:
		return nil, fmt.Errorf("%w: unsupported geometry type %q", ErrMalformed, g.Type)
	}
}

func toRings(poly [][][]float64) ([][]geom.Coord, error) {
	if len(poly) == 0 {
		return nil, fmt.Errorf("%w: polygon without rings", ErrMalformed)
	}
	rings := make([][]geom.Coord, len(poly))
	for i, ring := range poly {
		coords := make([]geom.Coord, len(ring))
		for j, pos := range ring {
			if len(pos) < 2 {
				return nil, fmt.Errorf("%w: position with %d ordinates", ErrMalformed, len(pos))
			}
			coords[j] = geom.Coord{pos[0], pos[1]}
		}
		rings[i] = coords
	}
	return rings, nil
}

// ToGeoJSON converts a go-geom polygon or multipolygon back to GeoJSON.
func ToGeoJSON(g geom.T) (*geojson.Geometry, error) {
	switch t := g.(type) {
	case *geom.Polygon:
		return geojson.NewPolygonGeometry(fromRings(t.Coords())), nil
	case *geom.MultiPolygon:
		coords := t.Coords()
		polys := make([][][][]float64, len(coords))
		for i, p := range coords {
			polys[i] = fromRings(p)
		}
		return geojson.NewMultiPolygonGeometry(polys...), nil
	case nil:
		return nil, fmt.Errorf("nil geometry")
	default:
		return nil, fmt.Errorf("unsupported geometry %T", g)
	}
}

func fromRings(rings [][]geom.Coord) [][][]float64 {
	out := make([][][]float64, len(rings))
	for i, ring := range rings {
		r := make([][]float64, len(ring))
		for j, c := range ring {
			r[j] = []float64{c.X(), c.Y()}
		}
		out[i] = r
	}
	return out
}
