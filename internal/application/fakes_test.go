package application

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"keema/internal/models"
	"keema/internal/scoring"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

// memoryStore keeps matches in memory and serves both the match and the
// performance repository contracts.
type memoryStore struct {
	mu      sync.Mutex
	nextID  int
	matches []models.Match
	order   []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{nextID: 1}
}

func (m *memoryStore) CreateWithPerformances(_ context.Context, match models.Match) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.matches {
		if existing.GameID == match.GameID {
			return existing.ID, false, nil
		}
	}
	match.ID = m.nextID
	m.nextID++
	for i := range match.Performances {
		match.Performances[i].MatchID = match.ID
	}
	m.matches = append(m.matches, match)
	m.order = append(m.order, match.GameID)
	return match.ID, true, nil
}

func (m *memoryStore) GetIDByGameID(_ context.Context, gameID string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.matches {
		if existing.GameID == gameID {
			return existing.ID, true, nil
		}
	}
	return 0, false, nil
}

func (m *memoryStore) GetRecent(_ context.Context, offset int) (*models.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset < 0 || offset >= len(m.matches) {
		return nil, models.ErrMatchNotFound
	}
	match := m.matches[len(m.matches)-1-offset]
	return &match, nil
}

func (m *memoryStore) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.matches {
		if existing.ID == id {
			m.matches = append(m.matches[:i], m.matches[i+1:]...)
			return nil
		}
	}
	return models.ErrMatchNotFound
}

func (m *memoryStore) HistoricalValues(_ context.Context, stat models.Stat, roles []models.Role) (map[models.Role][]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		wanted[r] = true
	}
	out := make(map[models.Role][]float64)
	for _, match := range m.matches {
		for _, p := range match.Performances {
			if !wanted[p.Role] {
				continue
			}
			if v, ok := scoring.SignalsOf(p)[stat]; ok {
				out[p.Role] = append(out[p.Role], v)
			}
		}
	}
	for _, values := range out {
		sort.Float64s(values)
	}
	return out, nil
}

type parserReply struct {
	doc []byte
	err error
}

// fakeParser answers by replay base name.
type fakeParser struct {
	mu      sync.Mutex
	replies map[string]parserReply
	calls   []string
}

func (p *fakeParser) Parse(_ context.Context, path string) ([]byte, error) {
	name := filepath.Base(path)
	p.mu.Lock()
	p.calls = append(p.calls, name)
	reply, ok := p.replies[name]
	p.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: no reply for %s", models.ErrParserFailure, name)
	}
	return reply.doc, reply.err
}

var testRoster = []struct {
	role     string
	champion string
}{
	{"TOP", "Ornn"}, {"JUNGLE", "Vi"}, {"MIDDLE", "Ahri"}, {"BOTTOM", "Jinx"}, {"UTILITY", "Nami"},
}

// matchDoc builds a ten player match-v5 style document. The blue side wins
// when blueWins is set; bias shifts every counting stat.
func matchDoc(gameID string, blueWins bool, bias int) []byte {
	participants := make([]map[string]any, 0, 10)
	for i := 0; i < 10; i++ {
		slot := testRoster[i%5]
		win := (i < 5) == blueWins
		participants = append(participants, map[string]any{
			"puuid":                       fmt.Sprintf("puuid-%d", i),
			"riotIdGameName":              fmt.Sprintf("Player%d", i),
			"riotIdTagline":               "EUW",
			"championName":                slot.champion,
			"teamPosition":                slot.role,
			"kills":                       i + 1 + bias,
			"deaths":                      2,
			"assists":                     3 + bias,
			"totalMinionsKilled":          150 + i*10 + bias,
			"neutralMinionsKilled":        10,
			"goldEarned":                  10000 + i*100 + bias*50,
			"totalDamageDealtToChampions": 15000 + i*500 + bias*100,
			"damageDealtToObjectives":     3000 + bias*10,
			"visionScore":                 20 + i + bias,
			"win":                         win,
		})
	}
	doc, _ := json.Marshal(map[string]any{
		"metadata": map[string]any{"matchId": gameID},
		"info":     map[string]any{"gameDuration": 1800, "participants": participants},
	})
	return doc
}

type fakeLeaderboardRepo struct {
	players   []models.GroupStats
	champions []models.GroupStats
	err       error
}

func (r *fakeLeaderboardRepo) PlayerStats(context.Context) ([]models.GroupStats, error) {
	return r.players, r.err
}

func (r *fakeLeaderboardRepo) ChampionStats(context.Context) ([]models.GroupStats, error) {
	return r.champions, r.err
}

type fakeSheets struct {
	created     int
	permissions []string
	public      []string
	cleared     []string
	updates     map[string][][]interface{}
}

func (f *fakeSheets) CreateSpreadsheet(context.Context, string) (string, string, error) {
	f.created++
	id := fmt.Sprintf("sheet-%d", f.created)
	return id, "https://example.invalid/" + id, nil
}

func (f *fakeSheets) AddPermission(_ context.Context, id, email, role string) error {
	f.permissions = append(f.permissions, id+":"+email+":"+role)
	return nil
}

func (f *fakeSheets) MakePublic(_ context.Context, id string) error {
	f.public = append(f.public, id)
	return nil
}

func (f *fakeSheets) ClearRange(_ context.Context, id, _ string) error {
	f.cleared = append(f.cleared, id)
	return nil
}

func (f *fakeSheets) UpdateValues(_ context.Context, id, _ string, values [][]interface{}) error {
	if f.updates == nil {
		f.updates = make(map[string][][]interface{})
	}
	f.updates[id] = values
	return nil
}
