package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pbarbosa/novabank/internal/api/middleware"
	"github.com/pbarbosa/novabank/internal/session"
)

// AuthHandler serves the simulated login and identity verification flow.
type AuthHandler struct {
	sessions *session.Store
	log      zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(sessions *session.Store, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, log: log}
}

// Login handles POST /api/login. Credentials are format-checked only;
// any well-formed CPF and non-empty password yields a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CPF      string `json:"cpf"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := h.sessions.Login(req.CPF, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			middleware.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		middleware.WriteError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.log.Info().Str("cpf", sess.CPFMasked).Msg("Session created")
	middleware.WriteJSON(w, http.StatusOK, sess)
}

// Verify handles POST /api/verify: the simulated document check. It
// marks the session verified; until then the account endpoints return
// 403.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := h.sessions.Verify(req.Token)
	if err != nil {
		middleware.WriteError(w, http.StatusUnauthorized, "Unknown session")
		return
	}

	h.log.Info().Str("cpf", sess.CPFMasked).Msg("Identity verified")
	middleware.WriteJSON(w, http.StatusOK, sess)
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		h.sessions.Revoke(sess.Token)
	}
	w.WriteHeader(http.StatusNoContent)
}
