// Package api provides the HTTP handlers and router for the finance REST API.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"finledger/internal/domain"
)

// Envelope is the uniform response body for every outcome, success or
// failure.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

func respond(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func respondOK(w http.ResponseWriter, message string, data any) {
	respond(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func respondCreated(w http.ResponseWriter, message string, data any) {
	respond(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message, detail string) {
	respond(w, status, Envelope{Success: false, Message: message, Error: detail})
}

// === API mapping types ===
//
// Domain types are mapped to response structs so the password digest can
// never leak into a payload.

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type accountResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	BalanceCents int64     `json:"balance_cents"`
	Type         string    `json:"type"`
	UserID       int64     `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type categoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type transactionResponse struct {
	ID          int64     `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	UserID      int64     `json:"user_id"`
	AccountID   int64     `json:"account_id"`
	CategoryID  int64     `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type profileResponse struct {
	User         userResponse          `json:"user"`
	Accounts     []accountResponse     `json:"accounts"`
	Categories   []categoryResponse    `json:"categories"`
	Transactions []transactionResponse `json:"transactions"`
}

func userToAPI(u domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func accountToAPI(a domain.Account) accountResponse {
	return accountResponse{
		ID:           a.ID,
		Name:         a.Name,
		BalanceCents: a.BalanceCents,
		Type:         a.Type,
		UserID:       a.UserID,
		CreatedAt:    a.CreatedAt,
	}
}

func categoryToAPI(c domain.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Type: c.Type, UserID: c.UserID, CreatedAt: c.CreatedAt}
}

func transactionToAPI(t domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		AmountCents: t.AmountCents,
		Date:        t.Date.Format("2006-01-02"),
		Description: t.Description,
		Type:        t.Type,
		UserID:      t.UserID,
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		CreatedAt:   t.CreatedAt,
	}
}

func accountsToAPI(accounts []domain.Account) []accountResponse {
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountToAPI(a))
	}
	return out
}

func categoriesToAPI(categories []domain.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryToAPI(c))
	}
	return out
}

func transactionsToAPI(entries []domain.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(entries))
	for _, t := range entries {
		out = append(out, transactionToAPI(t))
	}
	return out
}
