// Package dataset loads the static reference tables behind the map: the
// population and area tables (delimited text) and the country geometry
// (GeoJSON). Loaded tables are read-only and shared through Loader.
package dataset

import (
	"fmt"
	"sort"

	"github.com/twpayne/go-geom"
)

// Kind identifies which reference table a file holds.
type Kind string

const (
	KindPopulation Kind = "population"
	KindArea       Kind = "area"
	KindGeometry   Kind = "geometry"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPopulation, KindArea, KindGeometry:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown dataset kind: %q", s)
}

// PopulationEntry is one row of the population table.
type PopulationEntry struct {
	Country    string
	Population int64
	// Rank is the 1-based position after sorting by population, descending.
	// Ties are not shared.
	Rank int
}

// AreaEntry is one row of the area table, ranked like PopulationEntry.
type AreaEntry struct {
	Country string
	Area    float64
	Rank    int
}

// PopulationTable holds population rows sorted by descending population.
type PopulationTable struct {
	Path    string
	Entries []PopulationEntry
	// Duplicates lists country names that appeared more than once; the first
	// occurrence is kept.
	Duplicates []string
}

// AreaTable holds area rows sorted by descending area.
type AreaTable struct {
	Path       string
	Entries    []AreaEntry
	Duplicates []string
}

// Feature is one geographic feature of the geometry table.
type Feature struct {
	// Index is the position of the feature in the source collection.
	Index int
	// Name is the display name; empty when the feature has none.
	Name string
	// Geometry is a *geom.Polygon or *geom.MultiPolygon in lon/lat degrees.
	Geometry geom.T
}

// GeometryTable holds features in file order.
type GeometryTable struct {
	Path         string
	NameProperty string
	Features     []Feature
}

// Values returns population keyed by country.
func (t *PopulationTable) Values() map[string]float64 {
	out := make(map[string]float64, len(t.Entries))
	for _, e := range t.Entries {
		out[e.Country] = float64(e.Population)
	}
	return out
}

// Values returns area keyed by country.
func (t *AreaTable) Values() map[string]float64 {
	out := make(map[string]float64, len(t.Entries))
	for _, e := range t.Entries {
		out[e.Country] = e.Area
	}
	return out
}

// rankPopulation sorts entries descending and assigns sequential ranks.
// The sort is stable so equal values keep file order.
func rankPopulation(entries []PopulationEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Population > entries[j].Population })
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

func rankArea(entries []AreaEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Area > entries[j].Area })
	for i := range entries {
		entries[i].Rank = i + 1
	}
}
