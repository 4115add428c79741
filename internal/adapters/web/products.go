package web

import (
	"net/http"

	"invoice-desk/internal/app"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProducts(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetProduct(r.Context(), ownerFromContext(r.Context()), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if result.Product == nil {
		writeError(w, r, "product not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, result.Product)
}

func (h *Handler) saveProduct(w http.ResponseWriter, r *http.Request) {
	var req app.SaveProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.SaveProduct(r.Context(), ownerFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), ownerFromContext(r.Context()), urlID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
