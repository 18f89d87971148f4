package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/serragrande/logsgb/internal/middleware"
	"github.com/serragrande/logsgb/internal/models"
	"github.com/serragrande/logsgb/internal/service"
)

// AuthService defines the access-gate operations required by the HTTP
// handlers.
type AuthService interface {
	// Login matches a credential pair and returns the session on success.
	Login(ctx context.Context, username, password string) (models.Session, error)
	// Register creates a new pending account.
	Register(ctx context.Context, username, password string) error
	// PendingUsers lists accounts awaiting approval (super-admin only).
	PendingUsers(ctx context.Context, actor models.Session) ([]models.UserAccount, error)
	// SetStatus approves or rejects an account (super-admin only).
	SetStatus(ctx context.Context, actor models.Session, userID string, approve bool) error
}

// SessionManager issues and revokes bearer tokens.
type SessionManager interface {
	Issue(s models.Session) string
	Revoke(token string)
}

// AuthHandler handles HTTP requests for the access gate.
type AuthHandler struct {
	AuthService AuthService
	Sessions    SessionManager
}

// credentialsRequest is the JSON payload of login and registration.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/register. Every registration failure surfaces
// as the same generic message.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	err := h.AuthService.Register(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrMissingCredentials) {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "already registered", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": models.StatusPending})
}

// Login handles POST /api/login. Bad credentials and unknown users share
// one message; rejected accounts get a generic denial.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	sess, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	case errors.Is(err, service.ErrAccessDenied):
		http.Error(w, "access denied", http.StatusForbidden)
		return
	case err != nil:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	token := h.Sessions.Issue(sess)
	writeJSON(w, http.StatusOK, map[string]any{
		"token":   token,
		"session": sess,
	})
}

// Logout handles POST /api/logout, revoking the presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.BearerToken(r); token != "" {
		h.Sessions.Revoke(token)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/session, echoing the authenticated session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// PendingUsers handles GET /api/users/pending.
func (h *AuthHandler) PendingUsers(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	users, err := h.AuthService.PendingUsers(r.Context(), sess)
	if errors.Is(err, service.ErrNotSuperAdmin) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	for i := range users {
		users[i].Password = ""
	}
	writeJSON(w, http.StatusOK, users)
}

// SetStatus handles PUT /api/users/{id}/status with body {"approve": bool}.
func (h *AuthHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	var req struct {
		Approve bool `json:"approve"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	err := h.AuthService.SetStatus(r.Context(), sess, chi.URLParam(r, "id"), req.Approve)
	if errors.Is(err, service.ErrNotSuperAdmin) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
