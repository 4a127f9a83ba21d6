package repository

import (
	"context"
	"database/sql"

	"keema/internal/models"
)

type Match interface {
	// CreateWithPerformances stores a match and its performances atomically.
	// When the game id is already stored it writes nothing and returns the
	// existing id with created == false.
	CreateWithPerformances(ctx context.Context, match models.Match) (id int, created bool, err error)
	GetIDByGameID(ctx context.Context, gameID string) (int, bool, error)
	GetRecent(ctx context.Context, offset int) (*models.Match, error)
	Delete(ctx context.Context, id int) error
}

type Performance interface {
	// HistoricalValues returns, per role, the ascending non-null values of stat
	// across all stored performances.
	HistoricalValues(ctx context.Context, stat models.Stat, roles []models.Role) (map[models.Role][]float64, error)
}

type Leaderboard interface {
	PlayerStats(ctx context.Context) ([]models.GroupStats, error)
	ChampionStats(ctx context.Context) ([]models.GroupStats, error)
}

type Repository struct {
	Match
	Performance
	Leaderboard
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Match:       NewMatchPostgres(db),
		Performance: NewPerformancePostgres(db),
		Leaderboard: NewLeaderboardPostgres(db),
		db:          db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
