package application

import (
	"context"
	"fmt"

	"keema/internal/models"
	"keema/internal/repository"
)

type MatchServiceImpl struct {
	repo   repository.Match
	logger Logger
}

func NewMatchServiceImpl(repo repository.Match, logger Logger) *MatchServiceImpl {
	return &MatchServiceImpl{repo: repo, logger: logger}
}

// GetGame returns the idx-th most recent match, starting at 1.
func (s *MatchServiceImpl) GetGame(ctx context.Context, idx int) (*models.Match, error) {
	if idx < 1 {
		return nil, fmt.Errorf("%w: index %d", models.ErrMatchNotFound, idx)
	}
	return s.repo.GetRecent(ctx, idx-1)
}

func (s *MatchServiceImpl) DeleteMatch(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("match %d deleted", id)
	return nil
}
