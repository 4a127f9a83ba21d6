package application

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"keema/internal/models"
	"keema/internal/repository"
	"keema/internal/scoring"
	"keema/internal/telemetry"
)

type ingestState string

const (
	stateNew         ingestState = "NEW"
	stateNormalizing ingestState = "NORMALIZING"
	stateScoring     ingestState = "SCORING"
	statePersisted   ingestState = "PERSISTED"
	stateDuplicate   ingestState = "DUPLICATE"
)

type IngestResult struct {
	MatchID      int    `json:"match_id"`
	GameID       string `json:"game_id"`
	Duplicate    bool   `json:"duplicate"`
	Participants int    `json:"participants"`
}

type IngestServiceImpl struct {
	matches      repository.Match
	performances repository.Performance
	parser       ReplayParser
	scorer       *scoring.Scorer
	workers      int
	pendingDir   string
	approvedDir  string
	logger       Logger
}

func NewIngestServiceImpl(matches repository.Match, performances repository.Performance, parser ReplayParser, scorer *scoring.Scorer, cfg Config, logger Logger) *IngestServiceImpl {
	workers := cfg.ParserWorkers
	if workers <= 0 {
		workers = defaultParserWorkers
	}
	return &IngestServiceImpl{
		matches:      matches,
		performances: performances,
		parser:       parser,
		scorer:       scorer,
		workers:      workers,
		pendingDir:   cfg.PendingDir,
		approvedDir:  cfg.ApprovedDir,
		logger:       logger,
	}
}

func (s *IngestServiceImpl) IngestReplay(ctx context.Context, path string) (*IngestResult, error) {
	s.logState(replayID(path), stateNew)
	doc, err := s.parser.Parse(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.IngestDocument(ctx, doc, replayID(path))
}

// IngestDocument scores and stores an already parsed replay document. The
// population snapshot is taken before any participant is scored, so players in
// the same match never rank against each other.
func (s *IngestServiceImpl) IngestDocument(ctx context.Context, doc []byte, fallbackID string) (*IngestResult, error) {
	parsed, err := telemetry.Extract(doc, fallbackID)
	if err != nil {
		return nil, err
	}

	existingID, found, err := s.matches.GetIDByGameID(ctx, parsed.GameID)
	if err != nil {
		return nil, err
	}
	if found {
		s.logState(parsed.GameID, stateDuplicate)
		return &IngestResult{MatchID: existingID, GameID: parsed.GameID, Duplicate: true}, nil
	}

	s.logState(parsed.GameID, stateNormalizing)
	perfs, err := telemetry.Normalize(parsed)
	if err != nil {
		return nil, err
	}

	s.logState(parsed.GameID, stateScoring)
	pop, err := s.loadPopulation(ctx, perfs)
	if err != nil {
		return nil, err
	}
	for i := range perfs {
		perfs[i].Score = s.scorer.ScorePerformance(pop, perfs[i])
	}

	id, created, err := s.matches.CreateWithPerformances(ctx, models.Match{GameID: parsed.GameID, Performances: perfs})
	if err != nil {
		return nil, err
	}
	if !created {
		s.logState(parsed.GameID, stateDuplicate)
		return &IngestResult{MatchID: id, GameID: parsed.GameID, Duplicate: true}, nil
	}

	s.logState(parsed.GameID, statePersisted)
	return &IngestResult{MatchID: id, GameID: parsed.GameID, Participants: len(perfs)}, nil
}

// IngestUpload stores an uploaded replay in the pending directory, ingests it
// and moves it to the approved directory. Failed replays stay in pending.
func (s *IngestServiceImpl) IngestUpload(ctx context.Context, filename string, r io.Reader) (*IngestResult, error) {
	name := filepath.Base(filename)
	if !isReplayFile(name) {
		return nil, models.ErrUnsupportedFile
	}

	if err := s.EnsureDirs(); err != nil {
		return nil, err
	}

	pendingPath := filepath.Join(s.pendingDir, name)
	if err := writeFile(pendingPath, r); err != nil {
		return nil, err
	}

	res, err := s.IngestReplay(ctx, pendingPath)
	if err != nil {
		s.logger.Warn("replay %s left in pending: %v", name, err)
		return nil, err
	}

	if err := os.Rename(pendingPath, filepath.Join(s.approvedDir, name)); err != nil {
		s.logger.Error("failed to move %s to approved: %v", name, err)
	}
	return res, nil
}

// Refresh re-ingests the approved directory. A fresh install has no approved
// replays yet and yields an empty report.
func (s *IngestServiceImpl) Refresh(ctx context.Context) (*BatchReport, error) {
	if err := s.EnsureDirs(); err != nil {
		return nil, err
	}
	return s.IngestDir(ctx, s.approvedDir)
}

// EnsureDirs creates the pending and approved replay directories.
func (s *IngestServiceImpl) EnsureDirs() error {
	for _, dir := range []string{s.pendingDir, s.approvedDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

func (s *IngestServiceImpl) loadPopulation(ctx context.Context, perfs []models.Performance) (scoring.StaticPopulation, error) {
	seen := make(map[models.Role]bool)
	var roles []models.Role
	for _, p := range perfs {
		if !seen[p.Role] {
			seen[p.Role] = true
			roles = append(roles, p.Role)
		}
	}

	pop := scoring.StaticPopulation{}
	for _, stat := range models.Stats {
		byRole, err := s.performances.HistoricalValues(ctx, stat, roles)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s population: %w", stat, err)
		}
		for role, values := range byRole {
			pop.Set(role, stat, values)
		}
	}
	return pop, nil
}

func (s *IngestServiceImpl) logState(id string, state ingestState) {
	s.logger.Debug("replay %s: %s", id, state)
}

func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
