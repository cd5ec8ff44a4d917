package choropleth

import "strings"

// Range is an inclusive numeric interval. Min > Max matches nothing.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether Min <= v <= Max.
func (r Range) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

// Bounds returns the smallest range covering every record's value for m.
// An empty input yields the zero range.
func Bounds(records []CountryRecord, m Metric) Range {
	if len(records) == 0 {
		return Range{}
	}
	r := Range{Min: records[0].Value(m), Max: records[0].Value(m)}
	for _, rec := range records[1:] {
		v := rec.Value(m)
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
	}
	return r
}

// Filter returns the records whose value for m lies in rng and, when search
// is non-empty, whose name contains search as a case-sensitive substring.
// Input order is kept and records is not modified.
func Filter(records []CountryRecord, m Metric, rng Range, search string) []CountryRecord {
	out := make([]CountryRecord, 0, len(records))
	for _, r := range records {
		if !rng.Contains(r.Value(m)) {
			continue
		}
		if search != "" && (r.Name == "" || !strings.Contains(r.Name, search)) {
			continue
		}
		out = append(out, r)
	}
	return out
}
