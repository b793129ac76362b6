package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"finledger/internal/auth"
	"finledger/internal/domain"
	"finledger/internal/service"
)

// Handler carries the services the HTTP layer dispatches into.
type Handler struct {
	auth         *auth.Service
	users        *service.UserService
	accounts     *service.AccountService
	categories   *service.CategoryService
	transactions *service.TransactionService
	logger       *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(
	authSvc *auth.Service,
	users *service.UserService,
	accounts *service.AccountService,
	categories *service.CategoryService,
	transactions *service.TransactionService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		auth:         authSvc,
		users:        users,
		accounts:     accounts,
		categories:   categories,
		transactions: transactions,
		logger:       logger,
	}
}

// decodeJSON reads the request body into dst. On a malformed body it writes
// the 400 itself and returns false.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Bad Request", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// idParam parses the {id} URL parameter.
func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Bad Request", "invalid id: "+raw)
		return 0, false
	}
	return id, true
}

// principal extracts the authenticated identity attached by the middleware.
// Its absence on a protected route is a programming error, not a client one.
func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (domain.ContextPrincipal, bool) {
	p, ok := domain.PrincipalFromContext(r.Context())
	if !ok {
		h.logger.Error("no principal on protected route", "path", r.URL.Path)
		respondError(w, http.StatusInternalServerError, "internal error", "internal error")
		return domain.ContextPrincipal{}, false
	}
	return p, true
}

// pageRequest reads page_size and page_token query parameters.
func pageRequest(r *http.Request) domain.PageRequest {
	q := r.URL.Query()
	page := domain.PageRequest{PageToken: q.Get("page_token")}
	if v := q.Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.PageSize = n
		}
	}
	return page
}

// queryID parses an optional int64 query parameter, 0 when absent.
func queryID(r *http.Request, name string) int64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondOK(w, "ok", map[string]string{"status": "healthy"})
}
