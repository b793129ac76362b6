package api

import (
	"net/http"
)

type categoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CreateCategory adds a category for the principal.
// POST /categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	category, err := h.categories.Create(r.Context(), p, req.Name, req.Type)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondCreated(w, "category created", categoryToAPI(*category))
}

// GetCategory returns one of the principal's categories.
// GET /categories/{id}
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	category, err := h.categories.Get(r.Context(), p, id)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "category found", categoryToAPI(*category))
}

// ListCategories returns the principal's categories. ?type=income|expense
// filters by flow direction.
// GET /categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	categories, err := h.categories.List(r.Context(), p, r.URL.Query().Get("type"))
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "categories listed", categoriesToAPI(categories))
}

// UpdateCategory renames or retypes a category.
// PUT /categories/{id}
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	category, err := h.categories.Update(r.Context(), p, id, req.Name, req.Type)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "category updated", categoryToAPI(*category))
}

// DeleteCategory removes a category and, via cascade, its transactions.
// DELETE /categories/{id}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.categories.Delete(r.Context(), p, id); err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	respondOK(w, "category deleted", nil)
}
