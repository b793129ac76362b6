package api

import (
	"net/http"
	"time"

	"finledger/internal/domain"
	"finledger/internal/service"
)

type createTransactionRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Date        string `json:"date"` // YYYY-MM-DD, empty means today
	Description string `json:"description"`
	Type        string `json:"type"`
	AccountID   int64  `json:"account_id"`
	CategoryID  int64  `json:"category_id"`
}

// CreateTransaction records an entry and adjusts the account balance.
// POST /transactions
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req createTransactionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	var date time.Time
	if req.Date != "" {
		var err error
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Bad Request", "date must be YYYY-MM-DD")
			return
		}
	}

	entry, err := h.transactions.Create(r.Context(), p, service.CreateTransactionInput{
		AmountCents: req.AmountCents,
		Date:        date,
		Description: req.Description,
		Type:        req.Type,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondCreated(w, "transaction created", transactionToAPI(*entry))
}

// GetTransaction returns one of the principal's entries.
// GET /transactions/{id}
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	entry, err := h.transactions.Get(r.Context(), p, id)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "transaction found", transactionToAPI(*entry))
}

// ListTransactions returns the principal's entries, newest first.
// ?account_id= and ?category_id= filter; page_size/page_token paginate.
// GET /transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	filter := domain.TransactionFilter{
		AccountID:  queryID(r, "account_id"),
		CategoryID: queryID(r, "category_id"),
	}
	page := pageRequest(r)
	entries, total, err := h.transactions.List(r.Context(), p, filter, page)
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

// DeleteTransaction removes an entry and reverses its balance effect.
// DELETE /transactions/{id}
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.transactions.Delete(r.Context(), p, id); err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "transaction deleted", nil)
}
