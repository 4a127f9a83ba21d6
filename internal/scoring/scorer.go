package scoring

import (
	"fmt"
	"math"

	"keema/internal/models"
)

const (
	minDeathsForKDA = 1
	winAdjustment   = 0.03
	scoreScale      = 100
)

// Signals holds the present statistic values of one performance. Absent
// statistics have no key.
type Signals map[models.Stat]float64

func KDA(kills, deaths, assists int) float64 {
	d := deaths
	if d < minDeathsForKDA {
		d = minDeathsForKDA
	}
	return float64(kills+assists) / float64(d)
}

// SignalsOf collects the scoring inputs of a normalized performance. KDA is
// only present when kills, deaths and assists all are.
func SignalsOf(p models.Performance) Signals {
	s := make(Signals, len(models.Stats))
	if p.Kills != nil && p.Deaths != nil && p.Assists != nil {
		s[models.StatKDA] = KDA(*p.Kills, *p.Deaths, *p.Assists)
	}
	optional := map[models.Stat]*float64{
		models.StatCSM:        p.CSM,
		models.StatGPM:        p.GPM,
		models.StatDPM:        p.DPM,
		models.StatKP:         p.KP,
		models.StatVision:     p.Vision,
		models.StatObjectives: p.Objectives,
	}
	for stat, v := range optional {
		if v != nil {
			s[stat] = *v
		}
	}
	return s
}

type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	return &Scorer{weights: weights}, nil
}

// Score ranks each present signal against the role population, soft caps it
// and sums the weighted contributions. Missing signals contribute nothing and
// their weight is not redistributed.
func (s *Scorer) Score(pop Population, role models.Role, signals Signals, win bool) float64 {
	table := s.weights[role]

	var total float64
	for _, stat := range models.Stats {
		value, ok := signals[stat]
		if !ok {
			continue
		}
		total += table[stat] * contribution(Rank(pop, role, stat, value))
	}

	if win {
		total += winAdjustment
	} else {
		total -= winAdjustment
	}

	return round2(total * scoreScale)
}

func (s *Scorer) ScorePerformance(pop Population, p models.Performance) float64 {
	return s.Score(pop, p.Role, SignalsOf(p), p.Win)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
