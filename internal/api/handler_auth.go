package api

import (
	"errors"
	"net/http"

	"finledger/internal/auth"
	"finledger/internal/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

// Login exchanges an email/password pair for a bearer token.
// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Bad Request", "email and password are required")
		return
	}

	user, token, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password collapse into one message so
		// the endpoint cannot be used to probe for registered addresses.
		if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrBadCredential) {
			h.logger.Info("login rejected",
				"email", req.Email,
				"user_missing", errors.Is(err, auth.ErrUserNotFound),
				"request_id", middleware.RequestIDFromContext(r.Context()))
			respondError(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
			return
		}
		h.respondDomainError(w, r, err)
		return
	}

	respondOK(w, "login successful", loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        userToAPI(*user),
	})
}

// Me returns the authenticated user.
// GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	user, err := h.users.Get(r.Context(), p.UserID)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "authenticated user", userToAPI(*user))
}
