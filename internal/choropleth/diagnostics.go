package choropleth

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// maxSuggestions bounds the suggestions offered per unmatched name.
const maxSuggestions = 3

// Suggestion is an attribute name close to an unmatched geometry name.
type Suggestion struct {
	Name     string
	Distance int
}

// Unmatched is a geometry name the join could not match.
type Unmatched struct {
	Name        string
	Suggestions []Suggestion
}

// FieldReport collects the join gaps of one attribute column.
type FieldReport struct {
	Field      string
	Unmatched  []Unmatched
	Orphans    []string
	Duplicates []string
}

// Diagnostics summarises data-quality gaps found while joining. It is
// informational and never changes the joined values.
type Diagnostics struct {
	Features int
	Unnamed  int
	Fields   []FieldReport
}

// Clean reports whether every named feature matched every column and no
// source had duplicate rows.
func (d Diagnostics) Clean() bool {
	for _, f := range d.Fields {
		if len(f.Unmatched) > 0 || len(f.Orphans) > 0 || len(f.Duplicates) > 0 {
			return false
		}
	}
	return true
}

// Diagnose turns join reports into diagnostics. Unmatched names get up to
// three orphan attribute names within maxDistance edits as suggestions;
// maxDistance <= 0 disables suggestions.
func Diagnose(features int, reports []JoinReport, maxDistance int) Diagnostics {
	d := Diagnostics{Features: features, Fields: make([]FieldReport, 0, len(reports))}
	for _, rep := range reports {
		if rep.Unnamed > d.Unnamed {
			d.Unnamed = rep.Unnamed
		}
		fr := FieldReport{Field: rep.Field, Orphans: rep.Orphans, Duplicates: rep.Duplicates}
		for _, name := range rep.Unmatched {
			fr.Unmatched = append(fr.Unmatched, Unmatched{
				Name:        name,
				Suggestions: Suggest(name, rep.Orphans, maxDistance),
			})
		}
		d.Fields = append(d.Fields, fr)
	}
	return d
}

// Suggest returns the candidates closest to name by edit distance, nearest
// first and then alphabetically.
func Suggest(name string, candidates []string, maxDistance int) []Suggestion {
	if maxDistance <= 0 || name == "" {
		return nil
	}
	var out []Suggestion
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if d > maxDistance {
			continue
		}
		out = append(out, Suggestion{Name: c, Distance: d})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}
