package choropleth

import (
	"sort"

	"github.com/KaramelBytes/popmap/internal/dataset"
)

// TopN is the number of rows in a rank table.
const TopN = 30

// RankRow is one line of a rank table.
type RankRow struct {
	Rank    int
	Country string
	Value   float64
}

// RankTable orders the full derived table by m, descending with ties in input
// order, keeps the first TopN and numbers them 1..n. These positional ranks
// are independent of the competition ranks on CountryRecord.
func RankTable(records []CountryRecord, m Metric) []RankRow {
	sorted := make([]CountryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value(m) > sorted[j].Value(m) })
	if len(sorted) > TopN {
		sorted = sorted[:TopN]
	}
	rows := make([]RankRow, len(sorted))
	for i, r := range sorted {
		rows[i] = RankRow{Rank: i + 1, Country: r.Name, Value: r.Value(m)}
	}
	return rows
}

// PopulationRanking is the source-table view of the population data: the
// first n entries with their sequential ranks. n <= 0 returns all entries.
func PopulationRanking(entries []dataset.PopulationEntry, n int) []RankRow {
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	rows := make([]RankRow, n)
	for i, e := range entries[:n] {
		rows[i] = RankRow{Rank: e.Rank, Country: e.Country, Value: float64(e.Population)}
	}
	return rows
}
