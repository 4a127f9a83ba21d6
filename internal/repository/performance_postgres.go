package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"keema/internal/models"
)

// statExpressions maps each scored statistic to the SQL expression producing
// it. KDA is derived from the raw counters and is NULL when any is missing.
var statExpressions = map[models.Stat]string{
	models.StatKDA:        "(kills + assists)::double precision / GREATEST(deaths, 1)",
	models.StatCSM:        "csm",
	models.StatGPM:        "gpm",
	models.StatDPM:        "dpm",
	models.StatKP:         "kp",
	models.StatVision:     "vision",
	models.StatObjectives: "objectives",
}

type PerformancePostgres struct {
	db *sql.DB
}

func NewPerformancePostgres(db *sql.DB) *PerformancePostgres {
	return &PerformancePostgres{db: db}
}

func (r *PerformancePostgres) HistoricalValues(ctx context.Context, stat models.Stat, roles []models.Role) (map[models.Role][]float64, error) {
	expr, ok := statExpressions[stat]
	if !ok {
		return nil, fmt.Errorf("unknown stat %q", stat)
	}

	roleNames := make([]string, len(roles))
	for i, role := range roles {
		roleNames[i] = string(role)
	}

	query := fmt.Sprintf(`
		SELECT role, value FROM (
			SELECT role, %s AS value FROM performances WHERE role = ANY($1)
		) s
		WHERE value IS NOT NULL
		ORDER BY role, value`, expr)
	rows, err := r.db.QueryContext(ctx, query, pq.Array(roleNames))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s population: %w", stat, err)
	}
	defer rows.Close()

	values := make(map[models.Role][]float64, len(roles))
	for rows.Next() {
		var role string
		var v float64
		if err := rows.Scan(&role, &v); err != nil {
			return nil, fmt.Errorf("failed to scan %s value: %w", stat, err)
		}
		values[models.Role(role)] = append(values[models.Role(role)], v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s population: %w", stat, err)
	}
	return values, nil
}
