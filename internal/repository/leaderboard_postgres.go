package repository

import (
	"context"
	"database/sql"
	"fmt"

	"keema/internal/models"
)

const playerStatsQuery = `
	SELECT COALESCE(NULLIF(puuid, ''), name) AS group_key,
	       (ARRAY_AGG(name ORDER BY id DESC))[1] AS display_name,
	       COUNT(*) AS games,
	       COALESCE(AVG((kills + assists)::double precision / GREATEST(deaths, 1)), 0) AS kda,
	       AVG(CASE WHEN win THEN 100.0 ELSE 0.0 END)::double precision AS wr,
	       AVG(perf_score) AS score
	FROM performances
	GROUP BY group_key
	ORDER BY group_key`

const championStatsQuery = `
	SELECT champion AS group_key,
	       champion AS display_name,
	       COUNT(*) AS games,
	       COALESCE(AVG((kills + assists)::double precision / GREATEST(deaths, 1)), 0) AS kda,
	       AVG(CASE WHEN win THEN 100.0 ELSE 0.0 END)::double precision AS wr,
	       AVG(perf_score) AS score
	FROM performances
	WHERE champion <> ''
	GROUP BY champion
	ORDER BY champion`

type LeaderboardPostgres struct {
	db *sql.DB
}

func NewLeaderboardPostgres(db *sql.DB) *LeaderboardPostgres {
	return &LeaderboardPostgres{db: db}
}

func (r *LeaderboardPostgres) PlayerStats(ctx context.Context) ([]models.GroupStats, error) {
	return r.groupStats(ctx, playerStatsQuery)
}

func (r *LeaderboardPostgres) ChampionStats(ctx context.Context) ([]models.GroupStats, error) {
	return r.groupStats(ctx, championStatsQuery)
}

// groupStats reads inside a read-only repeatable-read transaction so a
// concurrent ingestion is either fully visible or not at all.
func (r *LeaderboardPostgres) groupStats(ctx context.Context, query string) ([]models.GroupStats, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var stats []models.GroupStats
	for rows.Next() {
		var s models.GroupStats
		if err := rows.Scan(&s.Key, &s.Name, &s.Games, &s.KDA, &s.WinRate, &s.RawScore); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	return stats, nil
}
