package app

// SaveCustomerRequest is the input for creating or updating a customer.
type SaveCustomerRequest struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	GSTIN   string `json:"gstin"`
}

// SaveProductRequest is the input for creating or updating a product.
// UnitPrice arrives as free text; anything unparseable is treated as zero.
type SaveProductRequest struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
}

// SaveCompanyRequest is the input for saving the company profile.
type SaveCompanyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	GSTIN   string `json:"gstin"`
}

// LineItemInput is one editor line: all fields free text.
type LineItemInput struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  string `json:"quantity"`
}

// SaveInvoiceRequest is the editor input for saving an invoice directly,
// without the drafting call. Dates are YYYY-MM-DD. An empty Status asks
// for due-date derivation; any other value is persisted verbatim.
type SaveInvoiceRequest struct {
	ID            string          `json:"id,omitempty"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   string          `json:"invoice_date"`
	DueDate       string          `json:"due_date"`
	CustomerID    string          `json:"customer_id"`
	Items         []LineItemInput `json:"items"`
	TaxPercent    string          `json:"tax_percent"`
	Notes         string          `json:"notes"`
	Status        string          `json:"status,omitempty"`
}

// GenerateInvoiceRequest is the editor input for the drafting workflow:
// the draft is refined by the drafting service before being saved.
type GenerateInvoiceRequest struct {
	ID            string          `json:"id,omitempty"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   string          `json:"invoice_date"`
	DueDate       string          `json:"due_date"`
	CustomerID    string          `json:"customer_id"`
	Items         []LineItemInput `json:"items"`
	TaxPercent    string          `json:"tax_percent"`
	Notes         string          `json:"notes"`
	Status        string          `json:"status,omitempty"`
}
