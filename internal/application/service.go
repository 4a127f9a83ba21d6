package application

import (
	"context"
	"io"

	"keema/internal/models"
	"keema/internal/repository"
	"keema/internal/scoring"
	"keema/pkg/sheets"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// ReplayParser turns a replay file into the parser's JSON document.
type ReplayParser interface {
	Parse(ctx context.Context, replayPath string) ([]byte, error)
}

type IngestService interface {
	IngestReplay(ctx context.Context, path string) (*IngestResult, error)
	IngestDocument(ctx context.Context, doc []byte, fallbackID string) (*IngestResult, error)
	IngestDir(ctx context.Context, dir string) (*BatchReport, error)
	IngestUpload(ctx context.Context, filename string, r io.Reader) (*IngestResult, error)
	Refresh(ctx context.Context) (*BatchReport, error)
	EnsureDirs() error
}

type LeaderboardService interface {
	Players(ctx context.Context) (*models.Leaderboard, error)
	Champions(ctx context.Context) (*models.Leaderboard, error)
}

type MatchService interface {
	GetGame(ctx context.Context, idx int) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error
}

type ReportService interface {
	GetExcelReport(ctx context.Context) ([]byte, error)
	SyncToGoogleSheet(ctx context.Context) (string, error)
}

type Config struct {
	PendingDir    string
	ApprovedDir   string
	Gamma         float64
	ParserWorkers int
	SpreadsheetID string
	OwnerEmail    string
}

type Service struct {
	IngestService      IngestService
	LeaderboardService LeaderboardService
	MatchService       MatchService
	ReportService      ReportService
}

func NewService(repos *repository.Repository, parser ReplayParser, scorer *scoring.Scorer, sheetsClient sheets.Client, cfg Config, logger Logger) *Service {
	leaderboard := NewLeaderboardServiceImpl(repos.Leaderboard, cfg.Gamma)
	return &Service{
		IngestService:      NewIngestServiceImpl(repos.Match, repos.Performance, parser, scorer, cfg, logger),
		LeaderboardService: leaderboard,
		MatchService:       NewMatchServiceImpl(repos.Match, logger),
		ReportService:      NewReportServiceImpl(leaderboard, sheetsClient, cfg.SpreadsheetID, cfg.OwnerEmail, logger),
	}
}
