package api

import (
	"net/http"

	"finledger/internal/domain"
)

type accountRequest struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	BalanceCents int64  `json:"balance_cents"`
}

// CreateAccount opens an account for the principal.
// POST /accounts
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req accountRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	account, err := h.accounts.Create(r.Context(), p, req.Name, req.Type, req.BalanceCents)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondCreated(w, "account created", accountToAPI(*account))
}

// GetAccount returns one of the principal's accounts.
// GET /accounts/{id}
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	account, err := h.accounts.Get(r.Context(), p, id)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "account found", accountToAPI(*account))
}

// ListAccounts returns all of the principal's accounts.
// GET /accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	accounts, err := h.accounts.List(r.Context(), p)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "accounts listed", accountsToAPI(accounts))
}

// UpdateAccount renames or retypes an account. Balance is not writable here;
// it only moves through transactions.
// PUT /accounts/{id}
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	var req accountRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	account, err := h.accounts.Update(r.Context(), p, id, req.Name, req.Type)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "account updated", accountToAPI(*account))
}

// DeleteAccount removes an account and, via cascade, its transactions.
// DELETE /accounts/{id}
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.accounts.Delete(r.Context(), p, id); err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "account deleted", nil)
}

// ListAccountTransactions returns the entries recorded against one account.
// GET /accounts/{id}/transactions
func (h *Handler) ListAccountTransactions(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	// Resolve the account first so an unknown or foreign id is a clean 404
	// instead of an empty list.
	if _, err := h.accounts.Get(r.Context(), p, id); err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	page := pageRequest(r)
	entries, total, err := h.transactions.List(r.Context(), p, domain.TransactionFilter{AccountID: id}, page)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "transactions listed", map[string]any{
		"transactions":    transactionsToAPI(entries),
		"total":           total,
		"next_page_token": domain.NextPageToken(page.Offset(), page.Limit(), total),
	})
}
