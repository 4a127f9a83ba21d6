package rest

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"keema/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrUnsupportedFile):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrParserFailure),
		errors.Is(err, models.ErrMissingParticipants),
		errors.Is(err, models.ErrInvalidRoster):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
