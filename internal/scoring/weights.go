package scoring

import (
	"fmt"
	"math"

	"keema/internal/models"
)

const weightTolerance = 0.01

// Weights holds, per role, the share of the composite score each statistic
// carries.
type Weights map[models.Role]map[models.Stat]float64

func DefaultWeights() Weights {
	return Weights{
		models.RoleTop: {
			models.StatKDA:        0.20,
			models.StatCSM:        0.15,
			models.StatGPM:        0.15,
			models.StatDPM:        0.20,
			models.StatKP:         0.10,
			models.StatVision:     0.05,
			models.StatObjectives: 0.15,
		},
		models.RoleJungle: {
			models.StatKDA:        0.15,
			models.StatCSM:        0.10,
			models.StatGPM:        0.10,
			models.StatDPM:        0.10,
			models.StatKP:         0.20,
			models.StatVision:     0.10,
			models.StatObjectives: 0.25,
		},
		models.RoleMid: {
			models.StatKDA:        0.20,
			models.StatCSM:        0.15,
			models.StatGPM:        0.15,
			models.StatDPM:        0.25,
			models.StatKP:         0.15,
			models.StatVision:     0.05,
			models.StatObjectives: 0.05,
		},
		models.RoleADC: {
			models.StatKDA:        0.20,
			models.StatCSM:        0.20,
			models.StatGPM:        0.15,
			models.StatDPM:        0.25,
			models.StatKP:         0.10,
			models.StatVision:     0.03,
			models.StatObjectives: 0.07,
		},
		models.RoleSupport: {
			models.StatKDA:        0.20,
			models.StatCSM:        0.00,
			models.StatGPM:        0.05,
			models.StatDPM:        0.10,
			models.StatKP:         0.25,
			models.StatVision:     0.35,
			models.StatObjectives: 0.05,
		},
	}
}

// Validate checks that every role has a table, that no weight is negative or
// names an unknown statistic, and that each table sums to one.
func (w Weights) Validate() error {
	known := make(map[models.Stat]struct{}, len(models.Stats))
	for _, s := range models.Stats {
		known[s] = struct{}{}
	}

	for _, role := range models.Roles {
		table, ok := w[role]
		if !ok {
			return fmt.Errorf("no weights for role %s", role)
		}

		var sum float64
		for stat, weight := range table {
			if _, ok := known[stat]; !ok {
				return fmt.Errorf("role %s: unknown stat %q", role, stat)
			}
			if weight < 0 {
				return fmt.Errorf("role %s: negative weight for %s", role, stat)
			}
			sum += weight
		}
		if math.Abs(sum-1) > weightTolerance {
			return fmt.Errorf("role %s: weights sum to %.4f, want 1.00", role, sum)
		}
	}
	return nil
}
