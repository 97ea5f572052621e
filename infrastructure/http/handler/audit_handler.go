package handler

import (
	"net/http"

	"github.com/horolog/horolog/application/port/inbound"
	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/infrastructure/http/response"
)

type AuditHandler struct {
	audit inbound.AuditService
}

func NewAuditHandler(audit inbound.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	f, err := query.BuildAuditFilter(params)
	if err != nil {
		response.FromError(w, err)
		return
	}
	s, err := query.BuildSort(params, query.AuditSortColumns, "createdAt")
	if err != nil {
		response.FromError(w, err)
		return
	}
	pg, err := query.BuildPage(params, query.DefaultAuditLimit)
	if err != nil {
		response.FromError(w, err)
		return
	}

	entries, total, err := h.audit.List(r.Context(), f, s, pg)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Paginated(w, entries, pg, total)
}

func (h *AuditHandler) Actors(w http.ResponseWriter, r *http.Request) {
	actors, err := h.audit.Actors(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, actors)
}
