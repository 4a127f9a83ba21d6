package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"keema/internal/models"
)

const performanceColumns = `id, match_id, slot, team, puuid, name, tag, champion, role,
	kills, deaths, assists, csm, gpm, dpm, kp, vision, objectives, win, perf_score`

type MatchPostgres struct {
	db *sql.DB
}

func NewMatchPostgres(db *sql.DB) *MatchPostgres {
	return &MatchPostgres{db: db}
}

func (r *MatchPostgres) CreateWithPerformances(ctx context.Context, match models.Match) (int, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var matchID int
	query := "INSERT INTO matches (game_id) VALUES ($1) ON CONFLICT (game_id) DO NOTHING RETURNING id"
	err = tx.QueryRowContext(ctx, query, match.GameID).Scan(&matchID)
	if errors.Is(err, sql.ErrNoRows) {
		err = tx.QueryRowContext(ctx, "SELECT id FROM matches WHERE game_id = $1", match.GameID).Scan(&matchID)
		if err != nil {
			return 0, false, fmt.Errorf("failed to load existing match: %w", err)
		}
		return matchID, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to insert match: %w", err)
	}

	pQuery := `INSERT INTO performances (match_id, slot, team, puuid, name, tag, champion, role,
		kills, deaths, assists, csm, gpm, dpm, kp, vision, objectives, win, perf_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	for _, p := range match.Performances {
		_, err = tx.ExecContext(ctx, pQuery, matchID, p.Slot, string(p.Team), p.PUUID, p.Name, p.Tag,
			p.Champion, string(p.Role), p.Kills, p.Deaths, p.Assists, p.CSM, p.GPM, p.DPM, p.KP,
			p.Vision, p.Objectives, p.Win, p.Score)
		if err != nil {
			return 0, false, fmt.Errorf("failed to insert performance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return matchID, true, nil
}

func (r *MatchPostgres) GetIDByGameID(ctx context.Context, gameID string) (int, bool, error) {
	var id int
	err := r.db.QueryRowContext(ctx, "SELECT id FROM matches WHERE game_id = $1", gameID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up match: %w", err)
	}
	return id, true, nil
}

// GetRecent returns the match at offset in newest-first order together with
// its performances, ordered by team and then by score.
func (r *MatchPostgres) GetRecent(ctx context.Context, offset int) (*models.Match, error) {
	if offset < 0 {
		return nil, models.ErrMatchNotFound
	}

	var m models.Match
	query := "SELECT id, game_id, created_at FROM matches ORDER BY id DESC LIMIT 1 OFFSET $1"
	err := r.db.QueryRowContext(ctx, query, offset).Scan(&m.ID, &m.GameID, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query match: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+performanceColumns+" FROM performances WHERE match_id = $1 ORDER BY team, perf_score DESC",
		m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query performances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan performance: %w", err)
		}
		m.Performances = append(m.Performances, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read performances: %w", err)
	}
	return &m, nil
}

func (r *MatchPostgres) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM matches WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrMatchNotFound
	}
	return nil
}

func scanPerformance(rows *sql.Rows) (models.Performance, error) {
	var (
		p          models.Performance
		team, role string
		tag        sql.NullString
		k, d, a    sql.NullInt64
		csm, gpm   sql.NullFloat64
		dpm, kp    sql.NullFloat64
		vision     sql.NullFloat64
		objectives sql.NullFloat64
	)
	err := rows.Scan(&p.ID, &p.MatchID, &p.Slot, &team, &p.PUUID, &p.Name, &tag, &p.Champion, &role,
		&k, &d, &a, &csm, &gpm, &dpm, &kp, &vision, &objectives, &p.Win, &p.Score)
	if err != nil {
		return p, err
	}

	p.Team = models.Team(team)
	p.Role = models.Role(role)
	p.Tag = nullString(tag)
	p.Kills, p.Deaths, p.Assists = nullInt(k), nullInt(d), nullInt(a)
	p.CSM, p.GPM, p.DPM = nullFloat(csm), nullFloat(gpm), nullFloat(dpm)
	p.KP, p.Vision, p.Objectives = nullFloat(kp), nullFloat(vision), nullFloat(objectives)
	return p, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
