package application

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keema/internal/models"
	"keema/internal/scoring"
)

func newIngestService(t *testing.T, store *memoryStore, parser ReplayParser, cfg Config) *IngestServiceImpl {
	t.Helper()
	scorer, err := scoring.NewScorer(scoring.DefaultWeights())
	require.NoError(t, err)
	return NewIngestServiceImpl(store, store, parser, scorer, cfg, nopLogger{})
}

func TestIngestDocument_FirstMatchRanksAtMedian(t *testing.T) {
	store := newMemoryStore()
	svc := newIngestService(t, store, &fakeParser{}, Config{})

	res, err := svc.IngestDocument(context.Background(), matchDoc("EUW1-1", true, 0), "a.rofl")
	require.NoError(t, err)
	assert.Equal(t, "EUW1-1", res.GameID)
	assert.Equal(t, 10, res.Participants)
	assert.False(t, res.Duplicate)

	require.Len(t, store.matches, 1)
	for _, p := range store.matches[0].Performances {
		if p.Win {
			assert.Equal(t, 69.71, p.Score, p.Name)
		} else {
			assert.Equal(t, 63.71, p.Score, p.Name)
		}
	}
}

func TestIngestDocument_DuplicateIsNoop(t *testing.T) {
	store := newMemoryStore()
	svc := newIngestService(t, store, &fakeParser{}, Config{})
	ctx := context.Background()

	first, err := svc.IngestDocument(ctx, matchDoc("EUW1-1", true, 0), "a.rofl")
	require.NoError(t, err)

	second, err := svc.IngestDocument(ctx, matchDoc("EUW1-1", false, 5), "b.rofl")
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.MatchID, second.MatchID)

	require.Len(t, store.matches, 1)
	assert.True(t, store.matches[0].Performances[0].Win)
}

// racingStore misses the duplicate on lookup, as if another ingestion
// committed the same game in between.
type racingStore struct {
	*memoryStore
}

func (racingStore) GetIDByGameID(context.Context, string) (int, bool, error) {
	return 0, false, nil
}

func TestIngestDocument_ConflictOnInsertIsDuplicate(t *testing.T) {
	store := newMemoryStore()
	scorer, err := scoring.NewScorer(scoring.DefaultWeights())
	require.NoError(t, err)
	svc := NewIngestServiceImpl(racingStore{store}, store, &fakeParser{}, scorer, Config{}, nopLogger{})
	ctx := context.Background()

	first, err := svc.IngestDocument(ctx, matchDoc("EUW1-7", true, 0), "a.rofl")
	require.NoError(t, err)
	second, err := svc.IngestDocument(ctx, matchDoc("EUW1-7", true, 0), "a.rofl")
	require.NoError(t, err)

	assert.True(t, second.Duplicate)
	assert.Equal(t, first.MatchID, second.MatchID)
	assert.Len(t, store.matches, 1)
}

func TestIngestDocument_LaterMatchesRankAgainstHistory(t *testing.T) {
	store := newMemoryStore()
	svc := newIngestService(t, store, &fakeParser{}, Config{})
	ctx := context.Background()

	_, err := svc.IngestDocument(ctx, matchDoc("EUW1-1", true, 0), "a.rofl")
	require.NoError(t, err)
	_, err = svc.IngestDocument(ctx, matchDoc("EUW1-2", true, 50), "b.rofl")
	require.NoError(t, err)

	require.Len(t, store.matches, 2)
	baseline := store.matches[0].Performances
	stronger := store.matches[1].Performances
	for i := range stronger {
		assert.Greater(t, stronger[i].Score, baseline[i].Score, stronger[i].Name)
	}
}

func TestIngestDocument_InvalidRosterWritesNothing(t *testing.T) {
	store := newMemoryStore()
	svc := newIngestService(t, store, &fakeParser{}, Config{})

	doc := []byte(`{"gameId": 9, "participants": [{"kills": 1}, {"kills": 2}, {"kills": 3}]}`)
	_, err := svc.IngestDocument(context.Background(), doc, "odd.rofl")
	assert.ErrorIs(t, err, models.ErrInvalidRoster)
	assert.Empty(t, store.matches)
}

func TestIngestDocument_MissingParticipants(t *testing.T) {
	store := newMemoryStore()
	svc := newIngestService(t, store, &fakeParser{}, Config{})

	_, err := svc.IngestDocument(context.Background(), []byte(`{"gameId": 9}`), "empty.rofl")
	assert.ErrorIs(t, err, models.ErrMissingParticipants)
	assert.Empty(t, store.matches)
}

func TestIngestReplay_ParserFailure(t *testing.T) {
	store := newMemoryStore()
	svc := newIngestService(t, store, &fakeParser{}, Config{})

	_, err := svc.IngestReplay(context.Background(), "/replays/unknown.rofl")
	assert.ErrorIs(t, err, models.ErrParserFailure)
	assert.Empty(t, store.matches)
}

func TestIngestReplay_FallsBackToFileName(t *testing.T) {
	store := newMemoryStore()
	doc := []byte(`{"participants": [{"kills": 1, "win": true}, {"kills": 2}]}`)
	parser := &fakeParser{replies: map[string]parserReply{"scrim.rofl": {doc: doc}}}
	svc := newIngestService(t, store, parser, Config{})

	res, err := svc.IngestReplay(context.Background(), "/replays/scrim.rofl")
	require.NoError(t, err)
	assert.Equal(t, "scrim.rofl", res.GameID)
}

func writeReplays(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("replay"), 0o644))
	}
}

func TestIngestDir_RecordsFailuresAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeReplays(t, dir, "c.ROFL", "a.rofl", "b.rofl", "d.rofl", "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.rofl"), 0o755))

	parser := &fakeParser{replies: map[string]parserReply{
		"a.rofl": {doc: matchDoc("EUW1-A", true, 0)},
		"b.rofl": {doc: []byte("not json")},
		"c.ROFL": {doc: matchDoc("EUW1-C", false, 3)},
		"d.rofl": {err: models.ErrParserFailure},
	}}
	store := newMemoryStore()
	svc := newIngestService(t, store, parser, Config{ParserWorkers: 3})

	report, err := svc.IngestDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Ingested)
	assert.Equal(t, 0, report.Duplicates)
	require.Len(t, report.Failed, 2)
	assert.Equal(t, "b.rofl", report.Failed[0].File)
	assert.Equal(t, "d.rofl", report.Failed[1].File)
	assert.True(t, strings.Contains(report.Failed[1].Error, models.ErrParserFailure.Error()))

	assert.Equal(t, []string{"EUW1-A", "EUW1-C"}, store.order)
	assert.ElementsMatch(t, []string{"a.rofl", "b.rofl", "c.ROFL", "d.rofl"}, parser.calls)
}

func TestIngestDir_RerunOnlyFindsDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeReplays(t, dir, "a.rofl", "b.rofl")
	parser := &fakeParser{replies: map[string]parserReply{
		"a.rofl": {doc: matchDoc("EUW1-A", true, 0)},
		"b.rofl": {doc: matchDoc("EUW1-B", true, 1)},
	}}
	store := newMemoryStore()
	svc := newIngestService(t, store, parser, Config{})
	ctx := context.Background()

	_, err := svc.IngestDir(ctx, dir)
	require.NoError(t, err)
	scores := store.matches[1].Performances[0].Score

	report, err := svc.IngestDir(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Ingested)
	assert.Equal(t, 2, report.Duplicates)
	assert.Empty(t, report.Failed)
	assert.Len(t, store.matches, 2)
	assert.Equal(t, scores, store.matches[1].Performances[0].Score)
}

func TestIngestDir_Deterministic(t *testing.T) {
	replies := map[string]parserReply{}
	var names []string
	for i, bias := range []int{4, 0, 9, 2, 7} {
		name := string(rune('a'+i)) + ".rofl"
		names = append(names, name)
		replies[name] = parserReply{doc: matchDoc("EUW1-"+name, i%2 == 0, bias)}
	}

	run := func() []float64 {
		dir := t.TempDir()
		writeReplays(t, dir, names...)
		store := newMemoryStore()
		svc := newIngestService(t, store, &fakeParser{replies: replies}, Config{ParserWorkers: 4})
		_, err := svc.IngestDir(context.Background(), dir)
		require.NoError(t, err)
		var scores []float64
		for _, m := range store.matches {
			for _, p := range m.Performances {
				scores = append(scores, p.Score)
			}
		}
		return scores
	}

	assert.Equal(t, run(), run())
}

func TestIngestDir_MissingDirectory(t *testing.T) {
	svc := newIngestService(t, newMemoryStore(), &fakeParser{}, Config{})
	_, err := svc.IngestDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRefresh_FreshInstall(t *testing.T) {
	root := t.TempDir()
	cfg := Config{PendingDir: filepath.Join(root, "pending"), ApprovedDir: filepath.Join(root, "approved")}
	svc := newIngestService(t, newMemoryStore(), &fakeParser{}, cfg)

	report, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Zero(t, report.Ingested)
	assert.Zero(t, report.Duplicates)
	assert.Empty(t, report.Failed)

	assert.DirExists(t, cfg.PendingDir)
	assert.DirExists(t, cfg.ApprovedDir)
}

func TestIngestUpload(t *testing.T) {
	root := t.TempDir()
	cfg := Config{PendingDir: filepath.Join(root, "pending"), ApprovedDir: filepath.Join(root, "approved")}
	parser := &fakeParser{replies: map[string]parserReply{
		"good.rofl": {doc: matchDoc("EUW1-G", true, 0)},
		"bad.rofl":  {err: models.ErrParserFailure},
	}}
	store := newMemoryStore()
	svc := newIngestService(t, store, parser, cfg)
	ctx := context.Background()

	t.Run("rejects other extensions", func(t *testing.T) {
		_, err := svc.IngestUpload(ctx, "notes.txt", strings.NewReader("x"))
		assert.ErrorIs(t, err, models.ErrUnsupportedFile)
	})

	t.Run("moves ingested replay to approved", func(t *testing.T) {
		res, err := svc.IngestUpload(ctx, "../../good.rofl", strings.NewReader("replay"))
		require.NoError(t, err)
		assert.Equal(t, "EUW1-G", res.GameID)
		assert.FileExists(t, filepath.Join(cfg.ApprovedDir, "good.rofl"))
		assert.NoFileExists(t, filepath.Join(cfg.PendingDir, "good.rofl"))
	})

	t.Run("keeps failed replay in pending", func(t *testing.T) {
		_, err := svc.IngestUpload(ctx, "bad.rofl", strings.NewReader("replay"))
		assert.ErrorIs(t, err, models.ErrParserFailure)
		assert.FileExists(t, filepath.Join(cfg.PendingDir, "bad.rofl"))
		assert.NoFileExists(t, filepath.Join(cfg.ApprovedDir, "bad.rofl"))
	})

	t.Run("refresh re-ingests approved as duplicates", func(t *testing.T) {
		report, err := svc.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Duplicates)
		assert.Equal(t, 0, report.Ingested)
	})
}
