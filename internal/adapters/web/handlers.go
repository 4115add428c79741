package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"invoice-desk/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	jwtSecret string
	log       zerolog.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string, log zerolog.Logger) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
		log:       log,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))
	r.Use(h.Identity)

	r.Get("/api/health", h.health)

	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)

		r.Get("/api/customers", h.listCustomers)
		r.Post("/api/customers", h.saveCustomer)
		r.Get("/api/customers/{id}", h.getCustomer)
		r.Delete("/api/customers/{id}", h.deleteCustomer)

		r.Get("/api/products", h.listProducts)
		r.Post("/api/products", h.saveProduct)
		r.Get("/api/products/{id}", h.getProduct)
		r.Delete("/api/products/{id}", h.deleteProduct)

		r.Get("/api/company", h.getCompanyInfo)
		r.Put("/api/company", h.saveCompanyInfo)

		r.Get("/api/invoices", h.listInvoices)
		r.Post("/api/invoices", h.saveInvoice)
		r.Post("/api/invoices/generate", h.generateInvoice)
		r.Get("/api/invoices/next-number", h.nextInvoiceNumber)
		r.Get("/api/invoices/export.csv", h.exportInvoicesCSV)
		r.Get("/api/invoices/{id}", h.getInvoice)
		r.Delete("/api/invoices/{id}", h.deleteInvoice)
		r.Post("/api/invoices/{id}/status", h.updateInvoiceStatus)
		r.Get("/api/invoices/{id}/pdf", h.exportInvoicePDF)
	})

	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// urlID extracts the {id} URL parameter.
func urlID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// decodeJSON decodes the request body into v and returns false + writes an
// appropriate error response on failure. Returns HTTP 413 when the body
// exceeds the size limit set by RequestBodyLimit middleware; HTTP 400 for
// all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
