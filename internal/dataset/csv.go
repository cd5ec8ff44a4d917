package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const countryColumn = "country"

// keyedRow is one data row reduced to the join key and a single value column.
type keyedRow struct {
	Line    int
	Country string
	Value   string
}

// readKeyedTable reads a delimited file and returns the country column paired
// with valueColumn for every row. Header names are matched exactly after
// trimming surrounding whitespace; country values are kept verbatim since they
// are join keys.
func readKeyedTable(path string, delim rune, valueColumn string) ([]keyedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read header: %w: %v", ErrMalformed, err)
	}
	keyIdx, valIdx := -1, -1
	for i, h := range header {
		// A UTF-8 BOM would otherwise hide the first column name.
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch h {
		case countryColumn:
			if keyIdx < 0 {
				keyIdx = i
			}
		case valueColumn:
			if valIdx < 0 {
				valIdx = i
			}
		}
	}
	var missing []string
	if keyIdx < 0 {
		missing = append(missing, countryColumn)
	}
	if valIdx < 0 {
		missing = append(missing, valueColumn)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	var rows []keyedRow
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w: %v", line, ErrMalformed, err)
		}
		row := keyedRow{Line: line}
		if keyIdx < len(rec) {
			row.Country = rec[keyIdx]
		}
		if valIdx < len(rec) {
			row.Value = rec[valIdx]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// cleanNumber strips whitespace and the thousands separators ',' and '_'.
// The decimal separator is always '.'.
func cleanNumber(s string) string {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
	return strings.NewReplacer(",", "", "_", "", " ", "").Replace(raw)
}

// parsePopulation parses a non-negative integer count. An empty value means
// unknown and yields 0.
func parsePopulation(s string) (int64, error) {
	raw := cleanNumber(s)
	if raw == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative population %q", s)
		}
		return n, nil
	}
	// Exports sometimes write counts as floats ("1.4e9", "38.0").
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number %q", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative population %q", s)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("population %q is not an integer", s)
	}
	if f >= math.MaxInt64 {
		return 0, fmt.Errorf("population %q out of range", s)
	}
	return int64(f), nil
}

// parseArea parses a non-negative real. An empty value means unknown.
func parseArea(s string) (float64, error) {
	raw := cleanNumber(s)
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number %q", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative area %q", s)
	}
	return f, nil
}

// ReadPopulation reads a population table from disk without caching.
func ReadPopulation(path string, delim rune) (*PopulationTable, error) {
	rows, err := readKeyedTable(path, delim, string(KindPopulation))
	if err != nil {
		return nil, loadError(KindPopulation, path, err)
	}
	t := &PopulationTable{Path: path, Entries: make([]PopulationEntry, 0, len(rows))}
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.Country == "" {
			continue
		}
		n, err := parsePopulation(row.Value)
		if err != nil {
			return nil, loadError(KindPopulation, path, fmt.Errorf("row %d: column %q: %w: %v", row.Line, KindPopulation, ErrMalformed, err))
		}
		if seen[row.Country] {
			t.Duplicates = append(t.Duplicates, row.Country)
			continue
		}
		seen[row.Country] = true
		t.Entries = append(t.Entries, PopulationEntry{Country: row.Country, Population: n})
	}
	rankPopulation(t.Entries)
	return t, nil
}

// ReadArea reads an area table from disk without caching.
func ReadArea(path string, delim rune) (*AreaTable, error) {
	rows, err := readKeyedTable(path, delim, string(KindArea))
	if err != nil {
		return nil, loadError(KindArea, path, err)
	}
	t := &AreaTable{Path: path, Entries: make([]AreaEntry, 0, len(rows))}
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.Country == "" {
			continue
		}
		a, err := parseArea(row.Value)
		if err != nil {
			return nil, loadError(KindArea, path, fmt.Errorf("row %d: column %q: %w: %v", row.Line, KindArea, ErrMalformed, err))
		}
		if seen[row.Country] {
			t.Duplicates = append(t.Duplicates, row.Country)
			continue
		}
		seen[row.Country] = true
		t.Entries = append(t.Entries, AreaEntry{Country: row.Country, Area: a})
	}
	rankArea(t.Entries)
	return t, nil
}
