// Package model defines the core domain records used throughout the application.
package model

// Intent is the classifier-assigned category that determines which draft
// shape gets constructed from a capture.
type Intent string

// Intent constants.
const (
	IntentInvoice Intent = "INVOICE"
	IntentTask    Intent = "TASK"
	IntentContact Intent = "CONTACT"
	IntentExpense Intent = "EXPENSE"
	IntentUnknown Intent = "UNKNOWN"
)

// Record status constants. Every draft starts as StatusDraft; confirmation
// promotes it to the kind-specific active status.
const (
	StatusDraft     = "DRAFT"
	StatusGenerated = "GENERATED" // confirmed invoice
	StatusTodo      = "TODO"      // confirmed task
	StatusPending   = "PENDING"   // confirmed expense
)

// Draft is a record awaiting human confirmation before being treated as an
// active business record.
type Draft interface {
	Kind() Intent
}

// Invoice represents a billable piece of work for a client.
type Invoice struct {
	ID            string  `json:"id"`
	Client        string  `json:"client"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	Description   string  `json:"description"`
	ClientPhone   *string `json:"client_phone"`
	ClientCompany *string `json:"client_company"`
	PDFPath       *string `json:"pdf_path,omitempty"`
}

// Kind implements Draft.
func (*Invoice) Kind() Intent { return IntentInvoice }

// Task represents an action item.
type Task struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	DueDate     *string `json:"due_date"`
}

// Kind implements Draft.
func (*Task) Kind() Intent { return IntentTask }

// Contact represents a person in the business directory.
type Contact struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Company   *string `json:"company"`
	CreatedAt string  `json:"created_at"`
}

// Kind implements Draft.
func (*Contact) Kind() Intent { return IntentContact }

// Expense represents a purchase captured from a receipt. Category is an
// open set (Materials, Fuel, Tools, Other) and is not enforced.
type Expense struct {
	ID        string  `json:"id"`
	Merchant  string  `json:"merchant"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
	Date      string  `json:"date"`
	ImagePath *string `json:"image_path"`
	Status    string  `json:"status"`
}

// Kind implements Draft.
func (*Expense) Kind() Intent { return IntentExpense }

// ContactSuggestion is a read-only projection of a contact, surfaced so the
// user can confirm an auto-filled relationship. Never persisted itself.
type ContactSuggestion struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Company *string `json:"company"`
}

// InvoiceDraft is an invoice awaiting confirmation, carrying advisory
// contact matches for one-click auto-fill.
type InvoiceDraft struct {
	Invoice
	SuggestedContacts []ContactSuggestion `json:"suggested_contacts"`
	AllContacts       []ContactSuggestion `json:"all_contacts"`
}

// UnknownDraft carries a classification document whose intent was not
// recognized. The raw document is passed through unchanged.
type UnknownDraft struct {
	Document map[string]any `json:"document"`
}

// Kind implements Draft.
func (*UnknownDraft) Kind() Intent { return IntentUnknown }
