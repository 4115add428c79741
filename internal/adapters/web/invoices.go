package web

import (
	"net/http"

	"invoice-desk/internal/app"
)

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListInvoices(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Invoices)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetInvoice(r.Context(), ownerFromContext(r.Context()), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if result.Invoice == nil {
		writeError(w, r, "invoice not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, result.Invoice)
}

func (h *Handler) saveInvoice(w http.ResponseWriter, r *http.Request) {
	var req app.SaveInvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.SaveInvoice(r.Context(), ownerFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Invoice)
}

func (h *Handler) generateInvoice(w http.ResponseWriter, r *http.Request) {
	var req app.GenerateInvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.GenerateInvoice(r.Context(), ownerFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Invoice)
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteInvoice(r.Context(), ownerFromContext(r.Context()), urlID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateInvoiceStatus(r.Context(), ownerFromContext(r.Context()), urlID(r), req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if result.Invoice == nil {
		writeError(w, r, "invoice not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, result.Invoice)
}

func (h *Handler) nextInvoiceNumber(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.NextInvoiceNumber(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	type response struct {
		InvoiceNumber string `json:"invoice_number"`
	}
	writeJSON(w, response{InvoiceNumber: result.InvoiceNumber})
}
