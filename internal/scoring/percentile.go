package scoring

import (
	"sort"

	"keema/internal/models"
)

// coldStartRank is returned for a role/stat with no history yet, so the first
// rows of a role do not land at either extreme.
const coldStartRank = 0.5

// Population exposes the historical values of a statistic for a role, sorted
// ascending.
type Population interface {
	Values(role models.Role, stat models.Stat) []float64
}

// StaticPopulation is an in-memory Population snapshot.
type StaticPopulation map[models.Role]map[models.Stat][]float64

func (p StaticPopulation) Values(role models.Role, stat models.Stat) []float64 {
	return p[role][stat]
}

// Set stores a sorted copy of values.
func (p StaticPopulation) Set(role models.Role, stat models.Stat, values []float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p[role] == nil {
		p[role] = make(map[models.Stat][]float64, len(models.Stats))
	}
	p[role][stat] = sorted
}

// Rank returns the position of the first historical value not less than value,
// divided by the population size.
func Rank(pop Population, role models.Role, stat models.Stat, value float64) float64 {
	values := pop.Values(role, stat)
	if len(values) == 0 {
		return coldStartRank
	}
	return float64(sort.SearchFloat64s(values, value)) / float64(len(values))
}
