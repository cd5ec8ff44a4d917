// Package choropleth joins the reference tables onto the country geometry,
// derives density and rank metrics, and produces the filtered map view and
// the top-N rank table.
package choropleth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/twpayne/go-geom"
)

// Metric identifies a numeric column that can drive the map colour scale.
type Metric string

const (
	MetricPopulation        Metric = "population"
	MetricPopulationDensity Metric = "population_density"
)

// ErrUnknownMetric is returned for a metric identifier that is not supported.
var ErrUnknownMetric = errors.New("unknown metric")

// Metrics lists the supported metrics in display order.
func Metrics() []Metric {
	return []Metric{MetricPopulation, MetricPopulationDensity}
}

// ParseMetric validates a metric identifier.
func ParseMetric(s string) (Metric, error) {
	names := make([]string, 0, 2)
	for _, m := range Metrics() {
		if Metric(s) == m {
			return m, nil
		}
		names = append(names, string(m))
	}
	return "", fmt.Errorf("%w: %q (use %s)", ErrUnknownMetric, s, strings.Join(names, " or "))
}

// Label is the human readable column title.
func (m Metric) Label() string {
	switch m {
	case MetricPopulation:
		return "Population"
	case MetricPopulationDensity:
		return "Population Density"
	}
	return string(m)
}

// CountryRecord is one geometry feature with its joined and derived values.
type CountryRecord struct {
	Index    int
	Name     string
	Geometry geom.T

	Population        int64
	Area              float64
	PopulationDensity float64

	PopulationRank        int
	PopulationDensityRank int

	// MatchedPopulation and MatchedArea report whether the join found a row.
	MatchedPopulation bool
	MatchedArea       bool
}

// Value returns the record's value for m; 0 for an unknown metric.
func (r CountryRecord) Value(m Metric) float64 {
	switch m {
	case MetricPopulation:
		return float64(r.Population)
	case MetricPopulationDensity:
		return r.PopulationDensity
	}
	return 0
}
