package choropleth

import (
	"math"
	"sort"
)

// Round2 rounds to two decimals. Exact halves go to the even neighbour, so
// 0.125 becomes 0.12 and 0.375 becomes 0.38.
func Round2(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}

// Density returns population per unit area rounded to two decimals, or 0
// when the area is 0.
func Density(population, area float64) float64 {
	if area == 0 {
		return 0
	}
	return Round2(population / area)
}

// CompetitionRanks ranks values descending. Equal values share the lowest
// rank and the next distinct value gets its count based rank, so
// [50, 50, 30] ranks as [1, 1, 3].
func CompetitionRanks(values []float64) []int {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return values[order[a]] > values[order[b]] })
	ranks := make([]int, len(values))
	for pos, idx := range order {
		if pos > 0 && values[idx] == values[order[pos-1]] {
			ranks[idx] = ranks[order[pos-1]]
			continue
		}
		ranks[idx] = pos + 1
	}
	return ranks
}

// Derive computes density and both competition ranks over the full joined
// table. The output has one record per row, in row order.
func Derive(rows []Row) []CountryRecord {
	out := make([]CountryRecord, len(rows))
	pops := make([]float64, len(rows))
	dens := make([]float64, len(rows))
	for i, r := range rows {
		pop := r.Attrs[FieldPopulation]
		area := r.Attrs[FieldArea]
		out[i] = CountryRecord{
			Index:             r.Index,
			Name:              r.Name,
			Geometry:          r.Geometry,
			Population:        int64(math.Round(pop)),
			Area:              area,
			PopulationDensity: Density(pop, area),
			MatchedPopulation: r.Matched[FieldPopulation],
			MatchedArea:       r.Matched[FieldArea],
		}
		pops[i] = float64(out[i].Population)
		dens[i] = out[i].PopulationDensity
	}
	popRanks := CompetitionRanks(pops)
	denRanks := CompetitionRanks(dens)
	for i := range out {
		out[i].PopulationRank = popRanks[i]
		out[i].PopulationDensityRank = denRanks[i]
	}
	return out
}
