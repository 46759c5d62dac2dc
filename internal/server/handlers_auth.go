package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gitlab.com/yelinaung/moneybook/internal/auth"
	"gitlab.com/yelinaung/moneybook/internal/logger"
	"gitlab.com/yelinaung/moneybook/internal/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Username: u.Username}
}

func setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// handleRegister creates a new account. Passwords are hashed before they
// ever touch the database.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	if req.Name == "" || req.Username == "" {
		writeError(w, http.StatusBadRequest, "name and username are required")
		return
	}
	if len(req.Password) < models.MinPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if req.Confirm != "" && req.Confirm != req.Password {
		writeError(w, http.StatusBadRequest, "passwords do not match")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	user := &models.User{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := s.users.Create(r.Context(), user); err != nil {
		writeDomainError(w, err)
		return
	}

	// Registration logs the account straight in, as the signup screen of
	// the mobile client did.
	session, err := s.sessions.Create(r.Context(), user.ID, s.cfg.SessionTTL)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	setSessionCookie(w, session.Token, session.ExpiresAt)

	logger.Log.Info().
		Str("username_hash", logger.HashUsername(user.Username)).
		Msg("Account registered")
	writeJSON(w, http.StatusCreated, sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      toUserResponse(user),
	})
}

// handleLogin checks credentials and issues a session. Unknown usernames
// and wrong passwords produce the same response, so login probes cannot
// tell accounts apart.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.GetByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeDomainError(w, models.ErrInvalidCredentials)
			return
		}
		writeDomainError(w, err)
		return
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		writeDomainError(w, models.ErrInvalidCredentials)
		return
	}

	session, err := s.sessions.Create(r.Context(), user.ID, s.cfg.SessionTTL)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	setSessionCookie(w, session.Token, session.ExpiresAt)

	logger.Log.Info().
		Str("username_hash", logger.HashUsername(user.Username)).
		Msg("Login succeeded")
	writeJSON(w, http.StatusOK, sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      toUserResponse(user),
	})
}

// handleLogout deletes the current session and clears the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	if err := s.sessions.Delete(r.Context(), token); err != nil {
		writeDomainError(w, err)
		return
	}

	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
