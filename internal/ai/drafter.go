package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"invoice-desk/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// DraftRequest is the structured input handed to the drafting service:
// the selected customer, the raw editor line items, dates, tax percent and
// free-text notes.
type DraftRequest struct {
	Customer      core.Customer
	Items         []core.LineInput
	InvoiceNumber string
	InvoiceDate   string // YYYY-MM-DD
	DueDate       string // YYYY-MM-DD
	TaxPercent    string
	Notes         string
}

// DraftItem is one line of the generated invoice payload.
type DraftItem struct {
	Name      string `json:"name" jsonschema_description:"Cleaned-up display name of the line item"`
	UnitPrice string `json:"unit_price" jsonschema_description:"Unit price as an exact decimal string, e.g. '100.00'"`
	Quantity  int64  `json:"quantity" jsonschema_description:"Quantity as a positive integer"`
	LineTotal string `json:"line_total" jsonschema_description:"unit_price multiplied by quantity, as a decimal string"`
}

// InvoiceDraft is the normalized invoice payload the drafting service
// returns. The core treats it as an opaque transformation of the request;
// totals are recomputed before the draft is saved.
type InvoiceDraft struct {
	InvoiceNumber string      `json:"invoice_number" jsonschema_description:"The invoice number, unchanged from the request"`
	InvoiceDate   string      `json:"invoice_date" jsonschema_description:"Invoice date in YYYY-MM-DD format"`
	DueDate       string      `json:"due_date" jsonschema_description:"Due date in YYYY-MM-DD format"`
	Items         []DraftItem `json:"items" jsonschema_description:"The invoice line items with cleaned names and computed line totals"`
	Subtotal      string      `json:"subtotal" jsonschema_description:"Sum of all line totals as a decimal string"`
	TaxPercent    string      `json:"tax_percent" jsonschema_description:"The flat tax percentage, unchanged from the request"`
	TaxAmount     string      `json:"tax_amount" jsonschema_description:"subtotal times tax_percent divided by 100, as a decimal string"`
	TotalAmount   string      `json:"total_amount" jsonschema_description:"subtotal plus tax_amount, as a decimal string"`
	Notes         string      `json:"notes" jsonschema_description:"Polished invoice notes, professional in tone, preserving the meaning of the input"`
}

// Normalize cleans up common formatting issues in the generated payload.
func (d *InvoiceDraft) Normalize() {
	d.InvoiceNumber = strings.TrimSpace(d.InvoiceNumber)
	d.InvoiceDate = strings.TrimSpace(d.InvoiceDate)
	d.DueDate = strings.TrimSpace(d.DueDate)
	d.Notes = strings.TrimSpace(d.Notes)

	if d.DueDate == "" && d.InvoiceDate != "" {
		d.DueDate = d.InvoiceDate
	}

	for i := range d.Items {
		item := &d.Items[i]
		item.Name = strings.TrimSpace(item.Name)
		if strings.TrimSpace(item.UnitPrice) == "" || strings.EqualFold(item.UnitPrice, "null") {
			item.UnitPrice = "0.00"
		}
		if strings.TrimSpace(item.LineTotal) == "" || strings.EqualFold(item.LineTotal, "null") {
			item.LineTotal = "0.00"
		}
	}
}

// Validate enforces the minimum shape a draft must have before it can be
// turned into a save request.
func (d *InvoiceDraft) Validate() error {
	if d.InvoiceNumber == "" {
		return fmt.Errorf("draft must carry an invoice number")
	}
	if err := validateDate("invoice date", d.InvoiceDate); err != nil {
		return err
	}
	if err := validateDate("due date", d.DueDate); err != nil {
		return err
	}
	if len(d.Items) == 0 {
		return fmt.Errorf("draft must have at least one line item")
	}
	for _, item := range d.Items {
		price := core.ParseAmount(item.UnitPrice)
		if price.IsNegative() {
			return fmt.Errorf("unit price cannot be negative for item %q", item.Name)
		}
		if item.Quantity < 0 {
			return fmt.Errorf("quantity cannot be negative for item %q", item.Name)
		}
	}
	if core.ParseAmount(d.TaxPercent).IsNegative() {
		return fmt.Errorf("tax percent cannot be negative")
	}
	return nil
}

// InvoiceDrafter turns a draft request into a normalized invoice payload.
type InvoiceDrafter interface {
	DraftInvoice(ctx context.Context, req DraftRequest) (*InvoiceDraft, error)
}

// Drafter calls OpenAI with a strict JSON schema response format.
type Drafter struct {
	client *openai.Client
}

func NewDrafter(apiKey string) *Drafter {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Drafter{client: &client}
}

func (d *Drafter) DraftInvoice(ctx context.Context, req DraftRequest) (*InvoiceDraft, error) {
	var lines strings.Builder
	for _, item := range req.Items {
		fmt.Fprintf(&lines, "- name: %q, unit price: %q, quantity: %q\n", item.Name, item.UnitPrice, item.Quantity)
	}

	prompt := fmt.Sprintf(`You are an invoicing assistant.
Turn the draft input below into a finalized invoice payload.
Rules:
1. Keep the invoice number, dates and tax percent exactly as given.
2. Clean up item names (fix casing and obvious typos) without changing their meaning.
3. Treat any price or quantity that is not a valid number as 0.
4. line_total = unit_price * quantity. subtotal = sum of line totals.
   tax_amount = subtotal * tax_percent / 100. total_amount = subtotal + tax_amount.
5. Amounts must be exact decimal strings (e.g. "100.00").
6. Rewrite the notes to be professional and concise, preserving their meaning.

Customer: %s, %s (GSTIN: %s)
Invoice number: %s
Invoice date: %s
Due date: %s
Tax percent: %s
Notes: %s
Items:
%s`,
		req.Customer.Name, req.Customer.Address, req.Customer.GSTIN,
		req.InvoiceNumber, req.InvoiceDate, req.DueDate, req.TaxPercent, req.Notes,
		lines.String())

	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "invoice_draft",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A finalized invoice payload derived from draft editor input"),
				},
			},
		},
	}

	resp, err := d.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var draft InvoiceDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}

	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("draft validation failed: %w", err)
	}

	return &draft, nil
}

func validateDate(field, value string) error {
	if value == "" {
		return fmt.Errorf("draft must carry a %s", field)
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("invalid %s format: %w", field, err)
	}
	return nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v InvoiceDraft
	return reflector.Reflect(v)
}
