// Package present encodes pipeline output for the map and table front ends:
// GeoJSON for the choropleth layer, terminal and Markdown rank tables, and a
// readable diagnostics report.
package present

import (
	"fmt"
	"io"

	geojson "github.com/paulmach/go.geojson"

	"github.com/KaramelBytes/popmap/internal/choropleth"
	"github.com/KaramelBytes/popmap/internal/dataset"
)

// Property names written on every feature.
const (
	PropIndex                 = "index"
	PropName                  = "name"
	PropPopulation            = "population"
	PropArea                  = "area"
	PropPopulationDensity     = "population_density"
	PropPopulationRank        = "population_rank"
	PropPopulationDensityRank = "population_density_rank"
)

// FeatureCollection converts records to GeoJSON features keyed by geometry
// index, in record order.
func FeatureCollection(records []choropleth.CountryRecord) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for _, r := range records {
		g, err := dataset.ToGeoJSON(r.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %d (%s): %w", r.Index, r.Name, err)
		}
		f := geojson.NewFeature(g)
		f.ID = r.Index
		f.SetProperty(PropIndex, r.Index)
		f.SetProperty(PropName, r.Name)
		f.SetProperty(PropPopulation, r.Population)
		f.SetProperty(PropArea, r.Area)
		f.SetProperty(PropPopulationDensity, r.PopulationDensity)
		f.SetProperty(PropPopulationRank, r.PopulationRank)
		f.SetProperty(PropPopulationDensityRank, r.PopulationDensityRank)
		fc.AddFeature(f)
	}
	return fc, nil
}

// WriteGeoJSON writes the records as a FeatureCollection.
func WriteGeoJSON(w io.Writer, records []choropleth.CountryRecord) error {
	fc, err := FeatureCollection(records)
	if err != nil {
		return err
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}
	return nil
}
