package web

import (
	"net/http"

	"invoice-desk/internal/app"
)

func (h *Handler) getCompanyInfo(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetCompanyInfo(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Company)
}

func (h *Handler) saveCompanyInfo(w http.ResponseWriter, r *http.Request) {
	var req app.SaveCompanyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.SaveCompanyInfo(r.Context(), ownerFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Company)
}
