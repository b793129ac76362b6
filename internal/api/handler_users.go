package api

import (
	"net/http"

	"finledger/internal/domain"
)

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUser registers a new user. This is the only unauthenticated write.
// POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondCreated(w, "user created", userToAPI(*user))
}

// GetUser returns a user by id.
// GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "user found", userToAPI(*user))
}

// ListUsers returns a page of users.
// GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := pageRequest(r)
	users, total, err := h.users.List(r.Context(), page)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userToAPI(u))
	}
	respondOK(w, "users listed", map[string]any{
		"users":           out,
		"total":           total,
		"next_page_token": domain.NextPageToken(page.Offset(), page.Limit(), total),
	})
}

// GetUserProfile returns a user with all owned resources.
// GET /users/{id}/profile
func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	profile, err := h.users.Profile(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "profile found", profileResponse{
		User:         userToAPI(profile.User),
		Accounts:     accountsToAPI(profile.Accounts),
		Categories:   categoriesToAPI(profile.Categories),
		Transactions: transactionsToAPI(profile.Transactions),
	})
}

// DeleteUser removes a user. Callers may only delete themselves.
// DELETE /users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.users.Delete(r.Context(), p, id); err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "user deleted", nil)
}
