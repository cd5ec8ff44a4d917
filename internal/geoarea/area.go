// Package geoarea computes geodesic areas of country outlines on a spherical
// Earth using S2 loops.
package geoarea

import (
	"fmt"

	"github.com/golang/geo/s2"
	"github.com/twpayne/go-geom"

	"github.com/KaramelBytes/popmap/internal/dataset"
)

// EarthRadiusKm is the IUGG mean Earth radius.
const EarthRadiusKm = 6371.0088

// Area returns the area of a polygon or multipolygon in square kilometres.
// Coordinates are lon/lat degrees. Interior rings are subtracted.
func Area(g geom.T) (float64, error) {
	switch t := g.(type) {
	case *geom.Polygon:
		return polygonArea(t.Coords()), nil
	case *geom.MultiPolygon:
		var sum float64
		for _, p := range t.Coords() {
			sum += polygonArea(p)
		}
		return sum, nil
	case nil:
		return 0, fmt.Errorf("nil geometry")
	default:
		return 0, fmt.Errorf("unsupported geometry %T", g)
	}
}

func polygonArea(rings [][]geom.Coord) float64 {
	var sr float64
	for i, ring := range rings {
		a := ringArea(ring)
		if i == 0 {
			sr += a
		} else {
			sr -= a
		}
	}
	if sr < 0 {
		sr = 0
	}
	return sr * EarthRadiusKm * EarthRadiusKm
}

// ringArea returns the area in steradians of the smaller region bounded by
// ring. GeoJSON ring orientation is not trusted.
func ringArea(ring []geom.Coord) float64 {
	pts := make([]s2.Point, 0, len(ring))
	for _, c := range ring {
		p := s2.PointFromLatLng(s2.LatLngFromDegrees(c.Y(), c.X()))
		if n := len(pts); n > 0 && pts[n-1] == p {
			continue
		}
		pts = append(pts, p)
	}
	// Closed rings repeat the first vertex.
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	if len(pts) < 3 {
		return 0
	}
	l := s2.LoopFromPoints(pts)
	l.Normalize()
	return l.Area()
}

// Entry is one derived area row.
type Entry struct {
	Country string
	Area    float64
}

// FromFeatures derives an area per named feature, in feature order. Features
// without a name are skipped and repeated names keep the first feature.
func FromFeatures(features []dataset.Feature) ([]Entry, error) {
	out := make([]Entry, 0, len(features))
	seen := make(map[string]bool, len(features))
	for _, f := range features {
		if f.Name == "" || seen[f.Name] {
			continue
		}
		a, err := Area(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %d (%s): %w", f.Index, f.Name, err)
		}
		seen[f.Name] = true
		out = append(out, Entry{Country: f.Name, Area: a})
	}
	return out, nil
}

// Values returns the entries keyed by country.
func Values(entries []Entry) map[string]float64 {
	m := make(map[string]float64, len(entries))
	for _, e := range entries {
		m[e.Country] = e.Area
	}
	return m
}
