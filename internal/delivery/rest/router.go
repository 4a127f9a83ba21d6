package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(h *Handler, adminKey string) *mux.Router {
	r := mux.NewRouter()
	admin := RequireAdmin(adminKey)

	r.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/scoreboard", h.HandleScoreboard).Methods(http.MethodGet)
	r.HandleFunc("/champions", h.HandleChampions).Methods(http.MethodGet)
	r.HandleFunc("/game/{idx}", h.HandleGame).Methods(http.MethodGet)

	r.Handle("/upload", admin(http.HandlerFunc(h.HandleUpload))).Methods(http.MethodPost)
	r.Handle("/refresh", admin(http.HandlerFunc(h.HandleRefresh))).Methods(http.MethodPost)

	return r
}
