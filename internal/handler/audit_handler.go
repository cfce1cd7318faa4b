package handler

import (
	"net/http"

	"go-bookstore/internal/model"
	"go-bookstore/internal/service"
)

type AuditHandler struct {
	service *service.AuditService
}

func NewAuditHandler(service *service.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// Activity lists the caller's recent logins and rejected tokens.
func (h *AuditHandler) Activity(w http.ResponseWriter, r *http.Request) {
	p, err := principalFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	events, err := h.service.ListForPrincipal(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.AuthEventList{Events: events})
}
