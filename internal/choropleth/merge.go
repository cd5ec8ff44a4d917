package choropleth

import (
	"sort"

	"github.com/KaramelBytes/popmap/internal/dataset"
)

// Attribute field names understood by Derive.
const (
	FieldPopulation = "population"
	FieldArea       = "area"
)

// Column is an attribute table reduced to one value per country name.
type Column struct {
	Field  string
	Values map[string]float64
	// Duplicates are source rows dropped while building Values. They are
	// only carried through to the join report.
	Duplicates []string
}

// Row is a geometry feature with the attribute values the join found.
type Row struct {
	dataset.Feature
	Attrs   map[string]float64
	Matched map[string]bool
}

// JoinReport lists the keys one attribute column failed to match.
type JoinReport struct {
	Field string
	// Unmatched are geometry names without an attribute row, in feature order.
	Unmatched []string
	// Orphans are attribute names without a geometry feature, sorted.
	Orphans    []string
	Duplicates []string
	// Unnamed counts features with an empty name.
	Unnamed int
}

// Merge left-joins every column onto features by exact name. Every feature
// yields one row; fields without a match are 0. The reports never affect
// the joined values.
func Merge(features []dataset.Feature, cols ...Column) ([]Row, []JoinReport) {
	rows := make([]Row, len(features))
	for i, f := range features {
		rows[i] = Row{
			Feature: f,
			Attrs:   make(map[string]float64, len(cols)),
			Matched: make(map[string]bool, len(cols)),
		}
	}
	reports := make([]JoinReport, 0, len(cols))
	for _, col := range cols {
		rep := JoinReport{Field: col.Field, Duplicates: col.Duplicates}
		used := make(map[string]bool, len(col.Values))
		for i := range rows {
			name := rows[i].Name
			v, ok := col.Values[name]
			if name == "" {
				ok = false
				rep.Unnamed++
			}
			if !ok {
				rows[i].Attrs[col.Field] = 0
				if name != "" {
					rep.Unmatched = append(rep.Unmatched, name)
				}
				continue
			}
			rows[i].Attrs[col.Field] = v
			rows[i].Matched[col.Field] = true
			used[name] = true
		}
		for name := range col.Values {
			if !used[name] {
				rep.Orphans = append(rep.Orphans, name)
			}
		}
		sort.Strings(rep.Orphans)
		reports = append(reports, rep)
	}
	return rows, reports
}

// PopulationColumn builds the population join column from a loaded table.
func PopulationColumn(t *dataset.PopulationTable) Column {
	return Column{Field: FieldPopulation, Values: t.Values(), Duplicates: t.Duplicates}
}

// AreaColumn builds the area join column from a loaded table.
func AreaColumn(t *dataset.AreaTable) Column {
	return Column{Field: FieldArea, Values: t.Values(), Duplicates: t.Duplicates}
}
