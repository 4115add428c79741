package web

import (
	"fmt"
	"net/http"

	"invoice-desk/internal/export"
)

// exportInvoicesCSV streams the owner's invoice list as a CSV download.
func (h *Handler) exportInvoicesCSV(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListInvoices(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices.csv"`)
	if err := export.WriteInvoicesCSV(w, result.Invoices); err != nil {
		h.log.Error().Err(err).Msg("csv export failed mid-stream")
	}
}

// exportInvoicePDF streams one invoice as a PDF download.
func (h *Handler) exportInvoicePDF(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromContext(r.Context())

	result, err := h.svc.GetInvoice(r.Context(), owner, urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if result.Invoice == nil {
		writeError(w, r, "invoice not found", "NOT_FOUND", http.StatusNotFound)
		return
	}

	companyResult, err := h.svc.GetCompanyInfo(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Invoice.InvoiceNumber+".pdf"))
	if err := export.WriteInvoicePDF(w, *result.Invoice, *companyResult.Company); err != nil {
		h.log.Error().Err(err).Msg("pdf export failed mid-stream")
	}
}
