package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/phrasebingo/phrasebingo-go/internal/middleware"
	"github.com/phrasebingo/phrasebingo-go/internal/services/session"
	"github.com/phrasebingo/phrasebingo-go/internal/storage"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger    *slog.Logger
	Gateway   http.Handler
	Storage   storage.Storage
	Sessions  *session.Service
	StaticDir string
}

// NewRouter creates the router: the websocket gateway, the health
// endpoint, and the page routes with the game-page access guard.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	r.Use(middleware.Logging(cfg.Logger))

	r.Handle("/ws", cfg.Gateway)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	pages := NewPageHandler(cfg.Storage, cfg.Sessions, cfg.StaticDir, cfg.Logger)
	r.HandleFunc("/", pages.Home).Methods(http.MethodGet)
	r.HandleFunc("/create", pages.Create).Methods(http.MethodGet)
	r.HandleFunc("/join", pages.Join).Methods(http.MethodGet)
	r.HandleFunc("/game/{room_id}", pages.Game).Methods(http.MethodGet)

	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
