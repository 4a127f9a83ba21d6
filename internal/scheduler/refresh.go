package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"keema/internal/application"
)

const runTimeout = 30 * time.Minute

type Refreshing interface {
	Refresh(ctx context.Context) (*application.BatchReport, error)
}

type SheetSyncing interface {
	SyncToGoogleSheet(ctx context.Context) (string, error)
}

// Refresher re-ingests the approved replay directory on a cron schedule and,
// when a sheet syncer is set, republishes the scoreboard after new games land.
type Refresher struct {
	schedule string
	ingest   Refreshing
	sheets   SheetSyncing
	logger   application.Logger

	cron *cron.Cron
	ctx  context.Context
}

func NewRefresher(schedule string, ingest Refreshing, sheets SheetSyncing, logger application.Logger) *Refresher {
	return &Refresher{schedule: schedule, ingest: ingest, sheets: sheets, logger: logger, ctx: context.Background()}
}

func (r *Refresher) Init() error {
	log := cronLogger{r.logger}
	r.cron = cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)))
	if _, err := r.cron.AddFunc(r.schedule, func() { r.RunOnce(r.ctx) }); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", r.schedule, err)
	}
	return nil
}

func (r *Refresher) Run(ctx context.Context) {
	r.ctx = ctx
	r.cron.Start()
	r.logger.Info("refresh scheduled: %s", r.schedule)
}

func (r *Refresher) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}

func (r *Refresher) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	report, err := r.ingest.Refresh(ctx)
	if err != nil {
		r.logger.Error("scheduled refresh failed: %v", err)
		return
	}
	r.logger.Info("scheduled refresh: %d ingested, %d duplicates, %d failed",
		report.Ingested, report.Duplicates, len(report.Failed))

	if r.sheets == nil || report.Ingested == 0 {
		return
	}
	if _, err := r.sheets.SyncToGoogleSheet(ctx); err != nil {
		r.logger.Error("auto-sync failed: %v", err)
	}
}

type cronLogger struct {
	log application.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
