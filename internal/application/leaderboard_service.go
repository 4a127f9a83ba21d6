package application

import (
	"context"
	"math"
	"sort"

	"keema/internal/models"
	"keema/internal/repository"
)

type LeaderboardServiceImpl struct {
	repo  repository.Leaderboard
	gamma float64
}

func NewLeaderboardServiceImpl(repo repository.Leaderboard, gamma float64) *LeaderboardServiceImpl {
	return &LeaderboardServiceImpl{repo: repo, gamma: gamma}
}

func (s *LeaderboardServiceImpl) Players(ctx context.Context) (*models.Leaderboard, error) {
	rows, err := s.repo.PlayerStats(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyShrinkage(rows, s.gamma), nil
}

func (s *LeaderboardServiceImpl) Champions(ctx context.Context) (*models.Leaderboard, error) {
	rows, err := s.repo.ChampionStats(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyShrinkage(rows, s.gamma), nil
}

// ApplyShrinkage scales every group's mean score by its sample size relative to
// the average group:
//
//	penalty  = exp(-max(0, games/max(1, avg_games)) * gamma)
//	adjusted = raw * (0.75 + 0.25*(1-penalty))
//
// Rows come back ordered by adjusted score, ties broken by group key.
func ApplyShrinkage(rows []models.GroupStats, gamma float64) *models.Leaderboard {
	board := &models.Leaderboard{Rows: make([]models.LeaderboardEntry, 0, len(rows))}
	if len(rows) == 0 {
		return board
	}

	total := 0
	for _, r := range rows {
		total += r.Games
	}
	board.AvgGames = float64(total) / float64(len(rows))
	denom := math.Max(1, board.AvgGames)

	for _, r := range rows {
		penalty := math.Exp(-math.Max(0, float64(r.Games)/denom) * gamma)
		board.Rows = append(board.Rows, models.LeaderboardEntry{
			GroupStats:    r,
			Penalty:       penalty,
			AdjustedScore: r.RawScore * (shrinkFloor + shrinkSpan*(1-penalty)),
		})
	}

	sort.SliceStable(board.Rows, func(i, j int) bool {
		a, b := board.Rows[i], board.Rows[j]
		if a.AdjustedScore != b.AdjustedScore {
			return a.AdjustedScore > b.AdjustedScore
		}
		return a.Key < b.Key
	})
	return board
}
