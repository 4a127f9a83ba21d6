package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"keema/internal/application"
	"keema/internal/models"
)

type Handler struct {
	services       *application.Service
	health         HealthChecker
	logger         application.Logger
	maxUploadBytes int64
}

type scoreRow struct {
	Name    string  `json:"name"`
	Games   int     `json:"games"`
	WinRate float64 `json:"wr"`
	KDA     float64 `json:"kda"`
	Score   float64 `json:"score"`
}

type championRow struct {
	Champion string  `json:"champion"`
	Games    int     `json:"games"`
	WinRate  float64 `json:"wr"`
	KDA      float64 `json:"kda"`
	Score    float64 `json:"score"`
}

type matchHeader struct {
	ID        int       `json:"id"`
	GameID    string    `json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
}

type gameResponse struct {
	Match        matchHeader          `json:"match"`
	Performances []models.Performance `json:"performances"`
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := h.health.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) HandleScoreboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.services.LeaderboardService.Players(r.Context())
	if err != nil {
		h.fail(w, "scoreboard", err)
		return
	}

	rows := make([]scoreRow, 0, len(board.Rows))
	for _, e := range board.Rows {
		rows = append(rows, scoreRow{
			Name:    e.Name,
			Games:   e.Games,
			WinRate: round(e.WinRate, 1),
			KDA:     round(e.KDA, 2),
			Score:   round(e.AdjustedScore, 2),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rows": rows, "avg_games": board.AvgGames})
}

func (h *Handler) HandleChampions(w http.ResponseWriter, r *http.Request) {
	board, err := h.services.LeaderboardService.Champions(r.Context())
	if err != nil {
		h.fail(w, "champions", err)
		return
	}

	rows := make([]championRow, 0, len(board.Rows))
	for _, e := range board.Rows {
		rows = append(rows, championRow{
			Champion: e.Name,
			Games:    e.Games,
			WinRate:  round(e.WinRate, 1),
			KDA:      round(e.KDA, 2),
			Score:    round(e.AdjustedScore, 2),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rows": rows, "avg_games": board.AvgGames})
}

func (h *Handler) HandleGame(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(mux.Vars(r)["idx"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "game index must be an integer")
		return
	}

	match, err := h.services.MatchService.GetGame(r.Context(), idx)
	if err != nil {
		h.fail(w, "game", err)
		return
	}

	perfs := match.Performances
	if perfs == nil {
		perfs = []models.Performance{}
	}
	writeJSON(w, http.StatusOK, gameResponse{
		Match:        matchHeader{ID: match.ID, GameID: match.GameID, CreatedAt: match.CreatedAt},
		Performances: perfs,
	})
}

func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(uploadMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "replay is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "expected multipart form with a file field")
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	res, err := h.services.IngestService.IngestUpload(r.Context(), header.Filename, file)
	if err != nil {
		h.fail(w, "upload", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"match_id":  res.MatchID,
		"game_id":   res.GameID,
		"duplicate": res.Duplicate,
	})
}

func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	report, err := h.services.IngestService.Refresh(r.Context())
	if err != nil {
		h.fail(w, "refresh", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"ingested":   report.Ingested,
		"duplicates": report.Duplicates,
		"failed":     report.Failed,
	})
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("%s: %v", op, err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
