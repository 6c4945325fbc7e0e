package classify

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/fieldnote/fieldnote/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubContacts is a ContactFinder with canned results.
type stubContacts struct {
	suggestions []model.ContactSuggestion
	all         []model.ContactSuggestion
	err         error
	lastQuery   string
}

func (s *stubContacts) SearchContacts(_ context.Context, fragment string, _ int) ([]model.ContactSuggestion, error) {
	s.lastQuery = fragment
	return s.suggestions, s.err
}

func (s *stubContacts) AllContactSuggestions(_ context.Context) ([]model.ContactSuggestion, error) {
	return s.all, s.err
}

func fixedClock() time.Time {
	return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
}

func TestInterpretInvoice(t *testing.T) {
	contacts := &stubContacts{
		suggestions: []model.ContactSuggestion{{ID: "CON-1", Name: "Dave Miller", Phone: "555-0101"}},
		all:         []model.ContactSuggestion{{ID: "CON-1", Name: "Dave Miller", Phone: "555-0101"}, {ID: "CON-2", Name: "Zoe", Phone: "555-0102"}},
	}
	it := &Interpreter{Contacts: contacts, Now: fixedClock}

	doc := map[string]any{
		"intent":      "INVOICE",
		"client":      "Dave",
		"amount":      1250.5,
		"description": "Deck repair",
	}

	draft, err := it.Interpret(context.Background(), doc)
	require.NoError(t, err)

	inv, ok := draft.(*model.InvoiceDraft)
	require.True(t, ok, "expected *model.InvoiceDraft, got %T", draft)

	assert.Equal(t, "Dave", inv.Client)
	assert.Equal(t, 1250.5, inv.Amount)
	assert.Equal(t, "Deck repair", inv.Description)
	assert.Equal(t, model.StatusDraft, inv.Status)
	assert.Regexp(t, regexp.MustCompile(`^INV-\d+$`), inv.ID)
	assert.Len(t, inv.SuggestedContacts, 1)
	assert.Len(t, inv.AllContacts, 2)
	assert.Equal(t, "Dave", contacts.lastQuery)
	assert.Nil(t, inv.ClientPhone)
	assert.Nil(t, inv.ClientCompany)
}

func TestInterpretInvoiceDefaults(t *testing.T) {
	it := &Interpreter{Now: fixedClock}

	draft, err := it.Interpret(context.Background(), map[string]any{"intent": "INVOICE"})
	require.NoError(t, err)

	inv := draft.(*model.InvoiceDraft)
	assert.Equal(t, "Unknown", inv.Client)
	assert.Equal(t, 0.0, inv.Amount)
	assert.Equal(t, "General Services", inv.Description)
}

func TestInterpretInvoiceWrongTypes(t *testing.T) {
	it := &Interpreter{Now: fixedClock}

	// Wrong-typed fields fall back to defaults, never error.
	doc := map[string]any{
		"intent":      "INVOICE",
		"client":      42,
		"amount":      "a lot",
		"description": []any{"x"},
	}
	draft, err := it.Interpret(context.Background(), doc)
	require.NoError(t, err)

	inv := draft.(*model.InvoiceDraft)
	assert.Equal(t, "Unknown", inv.Client)
	assert.Equal(t, 0.0, inv.Amount)
	assert.Equal(t, "General Services", inv.Description)
}

func TestInterpretMinimalTask(t *testing.T) {
	it := &Interpreter{Now: fixedClock}

	draft, err := it.Interpret(context.Background(), map[string]any{"intent": "TASK"})
	require.NoError(t, err)

	task, ok := draft.(*model.Task)
	require.True(t, ok, "expected *model.Task, got %T", draft)

	assert.Equal(t, "No description", task.Description)
	assert.Equal(t, model.StatusDraft, task.Status)
	assert.Nil(t, task.DueDate)
	assert.Regexp(t, regexp.MustCompile(`^TSK-\d+$`), task.ID)
	assert.Equal(t, fixedClock().Format(time.RFC3339), task.CreatedAt)
}

func TestInterpretTaskDueDatePassthrough(t *testing.T) {
	it := &Interpreter{Now: fixedClock}

	doc := map[string]any{"intent": "TASK", "description": "Order lumber", "due_date": "2026-09-05"}
	draft, err := it.Interpret(context.Background(), doc)
	require.NoError(t, err)

	task := draft.(*model.Task)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2026-09-05", *task.DueDate)

	// Explicit null is absent, not an error.
	doc["due_date"] = nil
	draft, err = it.Interpret(context.Background(), doc)
	require.NoError(t, err)
	assert.Nil(t, draft.(*model.Task).DueDate)
}

func TestInterpretContact(t *testing.T) {
	it := &Interpreter{Now: fixedClock}

	doc := map[string]any{"intent": "CONTACT", "name": "Dave Miller", "phone": "555-0101", "company": "Miller LLC"}
	draft, err := it.Interpret(context.Background(), doc)
	require.NoError(t, err)

	contact := draft.(*model.Contact)
	assert.Equal(t, "Dave Miller", contact.Name)
	assert.Equal(t, "555-0101", contact.Phone)
	require.NotNil(t, contact.Company)
	assert.Equal(t, "Miller LLC", *contact.Company)
	assert.Regexp(t, regexp.MustCompile(`^CON-\d+$`), contact.ID)
}

func TestInterpretExpense(t *testing.T) {
	it := &Interpreter{Now: fixedClock}

	doc := map[string]any{"intent": "EXPENSE", "merchant": "Depot", "amount": 42.99, "category": "Materials", "date": "2026-08-29"}
	draft, err := it.Interpret(context.Background(), doc)
	require.NoError(t, err)

	exp := draft.(*model.Expense)
	assert.Equal(t, "Depot", exp.Merchant)
	assert.Equal(t, 42.99, exp.Amount)
	assert.Equal(t, "Materials", exp.Category)
	assert.Equal(t, "2026-08-29", exp.Date)
	assert.Equal(t, model.StatusDraft, exp.Status)
}

func TestInterpretExpenseDefaultsDateToToday(t *testing.T) {
	it := &Interpreter{Now: fixedClock}

	draft, err := it.Interpret(context.Background(), map[string]any{"intent": "EXPENSE"})
	require.NoError(t, err)

	exp := draft.(*model.Expense)
	assert.Equal(t, "Unknown", exp.Merchant)
	assert.Equal(t, "Other", exp.Category)
	assert.Equal(t, "2026-08-30", exp.Date)
}

func TestInterpretErrorDocument(t *testing.T) {
	it := &Interpreter{Now: fixedClock}

	_, err := it.Interpret(context.Background(), map[string]any{"error": "Not a receipt"})
	require.Error(t, err)

	var cerr *ClassificationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "Not a receipt", cerr.Message)
}

func TestInterpretUnknownIntentPassesThrough(t *testing.T) {
	it := &Interpreter{Now: fixedClock}

	doc := map[string]any{"intent": "WEATHER", "note": "sunny"}
	draft, err := it.Interpret(context.Background(), doc)
	require.NoError(t, err)

	unknown, ok := draft.(*model.UnknownDraft)
	require.True(t, ok, "expected *model.UnknownDraft, got %T", draft)
	assert.Equal(t, doc, unknown.Document)
}

func TestInterpretSuggestionsDegradeOnStorageError(t *testing.T) {
	contacts := &stubContacts{err: errors.New("disk on fire")}
	it := &Interpreter{Contacts: contacts, Now: fixedClock}

	draft, err := it.Interpret(context.Background(), map[string]any{"intent": "INVOICE", "client": "Dave"})
	require.NoError(t, err, "matching is advisory, storage errors must not fail the draft")

	inv := draft.(*model.InvoiceDraft)
	assert.Empty(t, inv.SuggestedContacts)
	assert.Empty(t, inv.AllContacts)
}
