package httphandler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET /v1/prefs/theme
// PUT /v1/prefs/theme JSON {"theme"}
// GET /v1/session
// POST /v1/session JSON {"name", "email"}
// DELETE /v1/session

type PrefsHandler struct {
	prefs port.PrefsManager
}

func RegisterPrefs(mux *http.ServeMux, prefs port.PrefsManager) {
	h := PrefsHandler{prefs}
	mux.HandleFunc("GET /v1/prefs/theme", h.GetTheme)
	mux.HandleFunc("PUT /v1/prefs/theme", h.SetTheme)
	mux.HandleFunc("GET /v1/session", h.GetSession)
	mux.HandleFunc("POST /v1/session", h.CreateSession)
	mux.HandleFunc("DELETE /v1/session", h.ClearSession)
}

func (h PrefsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.prefs.Theme(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ThemeBody{Theme: string(theme)})
}

func (h PrefsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var body ThemeBody
	if !decodeBody(w, r, &body) {
		return
	}

	if err := h.prefs.SetTheme(r.Context(), domain.Theme(body.Theme)); err != nil {
		http.Error(w, "unknown theme", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h PrefsHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.prefs.Session(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAPISession(sess))
}

func (h PrefsHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body SessionBody
	if !decodeBody(w, r, &body) {
		return
	}

	sess := domain.Session{
		UserID:    uuid.NewString(),
		Name:      body.Name,
		Email:     body.Email,
		CreatedAt: time.Now(),
	}

	if err := h.prefs.SaveSession(r.Context(), sess); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toAPISession(sess))
}

func (h PrefsHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	if err := h.prefs.ClearSession(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toAPISession(s domain.Session) Session {
	return Session{
		UserID:    s.UserID,
		Name:      s.Name,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
	}
}
