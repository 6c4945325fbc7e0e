package engine

import (
	"context"

	"github.com/fieldnote/fieldnote/internal/model"
)

// Storage defines the persistence contract the intake engine depends on.
// *storage.Store satisfies it.
type Storage interface {
	SaveInvoice(ctx context.Context, inv *model.Invoice) error
	SaveTask(ctx context.Context, task *model.Task) error
	SaveContact(ctx context.Context, contact *model.Contact) error
	SaveExpense(ctx context.Context, exp *model.Expense) error

	ListInvoices(ctx context.Context) ([]model.Invoice, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	ListContacts(ctx context.Context) ([]model.Contact, error)
	ListExpenses(ctx context.Context) ([]model.Expense, error)

	SearchContacts(ctx context.Context, fragment string, limit int) ([]model.ContactSuggestion, error)
	AllContactSuggestions(ctx context.Context) ([]model.ContactSuggestion, error)
	FirstContactMatch(ctx context.Context, fragment string) (phone string, company *string, err error)

	SummarizeFinances(ctx context.Context) (model.FinancialSummary, error)
}

// ModelProvider ensures the speech model binary is available locally.
type ModelProvider interface {
	EnsureModel(ctx context.Context, dataDir string) (string, error)
}

// Transcriber runs speech inference over normalized samples.
type Transcriber interface {
	Transcribe(ctx context.Context, modelPath string, samples []float32) (string, error)
}
