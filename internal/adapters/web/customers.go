package web

import (
	"net/http"

	"invoice-desk/internal/app"
)

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListCustomers(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Customers)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetCustomer(r.Context(), ownerFromContext(r.Context()), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if result.Customer == nil {
		writeError(w, r, "customer not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, result.Customer)
}

func (h *Handler) saveCustomer(w http.ResponseWriter, r *http.Request) {
	var req app.SaveCustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.SaveCustomer(r.Context(), ownerFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Customer)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCustomer(r.Context(), ownerFromContext(r.Context()), urlID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
