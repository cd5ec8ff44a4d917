package choropleth

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func sampleRecords() []CountryRecord {
	return []CountryRecord{
		{Index: 0, Name: "Niger", Population: 25, PopulationDensity: 19.8},
		{Index: 1, Name: "Nigeria", Population: 206, PopulationDensity: 226.3},
		{Index: 2, Name: "", Population: 3},
		{Index: 3, Name: "New Zealand", Population: 5, PopulationDensity: 18.7},
		{Index: 4, Name: "Algeria", Population: 43, PopulationDensity: 18.1},
	}
}

func names(recs []CountryRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}

func TestFilterRangeAndSearch(t *testing.T) {
	recs := sampleRecords()
	cases := []struct {
		name   string
		metric Metric
		rng    Range
		search string
		want   []string
	}{
		{"full range", MetricPopulation, Range{0, 1000}, "", []string{"Niger", "Nigeria", "", "New Zealand", "Algeria"}},
		{"inclusive bounds", MetricPopulation, Range{5, 43}, "", []string{"Niger", "New Zealand", "Algeria"}},
		{"inverted range", MetricPopulation, Range{100, 1}, "", []string{}},
		{"case sensitive", MetricPopulation, Range{0, 1000}, "niger", []string{}},
		{"substring", MetricPopulation, Range{0, 1000}, "Niger", []string{"Niger", "Nigeria"}},
		{"conjunction", MetricPopulation, Range{0, 100}, "Niger", []string{"Niger"}},
		{"no trimming", MetricPopulation, Range{0, 1000}, " Zealand", []string{"New Zealand"}},
		{"density", MetricPopulationDensity, Range{18.1, 19.8}, "", []string{"Niger", "New Zealand", "Algeria"}},
		{"padded search", MetricPopulation, Range{0, 1000}, "Niger ", []string{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := names(Filter(recs, c.metric, c.rng, c.search))
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestFilterIdempotentAndConjunctive(t *testing.T) {
	recs := sampleRecords()
	rng := Range{4, 100}
	once := Filter(recs, MetricPopulation, rng, "er")
	twice := Filter(once, MetricPopulation, rng, "er")
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter not idempotent: %q vs %q", names(once), names(twice))
	}
	both := Filter(Filter(recs, MetricPopulation, rng, ""), MetricPopulation, Range{-1e18, 1e18}, "er")
	if !reflect.DeepEqual(names(both), names(once)) {
		t.Fatalf("range then search = %q, combined = %q", names(both), names(once))
	}
}

func TestFilterDoesNotMutate(t *testing.T) {
	recs := sampleRecords()
	before := sampleRecords()
	out := Filter(recs, MetricPopulation, Range{0, 50}, "")
	if len(out) > 0 {
		out[0].Name = "changed"
	}
	if !reflect.DeepEqual(recs, before) {
		t.Fatalf("source modified")
	}
}

func TestBounds(t *testing.T) {
	if got := Bounds(sampleRecords(), MetricPopulation); got != (Range{3, 206}) {
		t.Fatalf("bounds = %+v", got)
	}
	if got := Bounds(nil, MetricPopulation); got != (Range{}) {
		t.Fatalf("empty bounds = %+v", got)
	}
	recs := sampleRecords()
	if got := Filter(recs, MetricPopulationDensity, Bounds(recs, MetricPopulationDensity), ""); len(got) != len(recs) {
		t.Fatalf("full bounds should keep everything, got %d", len(got))
	}
}

func TestParseMetric(t *testing.T) {
	if m, err := ParseMetric("population_density"); err != nil || m != MetricPopulationDensity {
		t.Fatalf("ParseMetric = %v, %v", m, err)
	}
	_, err := ParseMetric("gdp")
	if !errors.Is(err, ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}
	if !strings.Contains(err.Error(), "population or population_density") {
		t.Fatalf("error should list the metrics: %v", err)
	}
}
