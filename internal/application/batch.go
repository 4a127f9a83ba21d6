package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/alitto/pond/v2"
)

type FileFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type BatchReport struct {
	Ingested   int           `json:"ingested"`
	Duplicates int           `json:"duplicates"`
	Failed     []FileFailure `json:"failed"`
}

type parseOutcome struct {
	doc []byte
	err error
}

// IngestDir ingests every replay in dir. Parser runs are concurrent, while
// scoring and persisting happen one file at a time in name order so that each
// replay is ranked against the same population on every run.
func (s *IngestServiceImpl) IngestDir(ctx context.Context, dir string) (*BatchReport, error) {
	files, err := replayFiles(dir)
	if err != nil {
		return nil, err
	}

	report := &BatchReport{Failed: []FileFailure{}}
	if len(files) == 0 {
		return report, nil
	}

	outcomes := s.parseAll(ctx, files)
	if err := ctx.Err(); err != nil {
		return report, err
	}

	for i, path := range files {
		name := filepath.Base(path)
		res, err := s.ingestParsed(ctx, outcomes[i], name)
		if err != nil {
			s.logger.Error("failed to ingest %s: %v", name, err)
			report.Failed = append(report.Failed, FileFailure{File: name, Error: err.Error()})
			continue
		}
		if res.Duplicate {
			report.Duplicates++
		} else {
			report.Ingested++
		}
	}

	s.logger.Info("batch %s: %d ingested, %d duplicates, %d failed",
		dir, report.Ingested, report.Duplicates, len(report.Failed))
	return report, nil
}

func (s *IngestServiceImpl) parseAll(ctx context.Context, files []string) []parseOutcome {
	outcomes := make([]parseOutcome, len(files))

	pool := pond.NewPool(s.workers, pond.WithQueueSize(parserQueueSize))
	defer pool.StopAndWait()
	group := pool.NewGroupContext(ctx)
	groupCtx := group.Context()

	for i, path := range files {
		i, path := i, path
		group.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					outcomes[i].err = fmt.Errorf("parser panic: %v", r)
				}
			}()
			if err := groupCtx.Err(); err != nil {
				outcomes[i].err = err
				return
			}
			outcomes[i].doc, outcomes[i].err = s.parser.Parse(groupCtx, path)
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		s.logger.Warn("some parser tasks failed: %v", err)
	}
	return outcomes
}

func (s *IngestServiceImpl) ingestParsed(ctx context.Context, outcome parseOutcome, name string) (res *IngestResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()
	if outcome.err != nil {
		return nil, outcome.err
	}
	return s.IngestDocument(ctx, outcome.doc, name)
}

func replayFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && isReplayFile(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
