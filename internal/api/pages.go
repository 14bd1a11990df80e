package api

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"github.com/phrasebingo/phrasebingo-go/internal/model"
	"github.com/phrasebingo/phrasebingo-go/internal/services/session"
	"github.com/phrasebingo/phrasebingo-go/internal/services/username"
	"github.com/phrasebingo/phrasebingo-go/internal/storage"
)

// SessionCookieName is the cookie carrying the session token for page loads
const SessionCookieName = "session"

// PageHandler serves the static pages and guards access to the game page
type PageHandler struct {
	storage   storage.Storage
	sessions  *session.Service
	staticDir string
	logger    *slog.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(storage storage.Storage, sessions *session.Service, staticDir string, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		storage:   storage,
		sessions:  sessions,
		staticDir: staticDir,
		logger:    logger.With(slog.String("component", "pages")),
	}
}

// Home serves the landing page
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, "index.html")
}

// Create serves the room creation page
func (h *PageHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, "create.html")
}

// Join serves the room join page
func (h *PageHandler) Join(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, "join.html")
}

// Game serves the game page. The display name comes from the username
// query parameter, or from the session cookie on reloads. An invalid
// name or an unknown room redirects back to the landing page.
func (h *PageHandler) Game(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	name := r.URL.Query().Get("username")
	if name == "" {
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			if sess, err := h.sessions.Resolve(cookie.Value); err == nil {
				name = string(sess.Name)
			}
		}
	}

	if valid, reason := username.Validate(name); !valid {
		h.logger.Info("game page rejected",
			slog.String("room_id", string(roomID)),
			slog.String("reason", reason))
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	exists, err := h.storage.RoomExists(r.Context(), roomID)
	if err != nil || !exists {
		if err != nil {
			h.logger.Error("room lookup failed", slog.Any("error", err))
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	sess := h.sessions.Issue(model.PlayerName(name))
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.serveFile(w, r, "game.html")
}

func (h *PageHandler) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	http.ServeFile(w, r, filepath.Join(h.staticDir, name))
}
