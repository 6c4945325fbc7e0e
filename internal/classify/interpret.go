package classify

import (
	"context"
	"time"

	"github.com/fieldnote/fieldnote/internal/common"
	"github.com/fieldnote/fieldnote/internal/model"
)

// suggestionCap bounds the targeted contact match list.
const suggestionCap = 5

// fieldDefaults is the recognized-key-to-fallback table. Every field the
// interpreter reads from a classification document takes its value from
// here when the field is absent or of the wrong type; a malformed
// document always yields a well-formed draft, never an error.
var fieldDefaults = map[model.Intent]map[string]any{
	model.IntentInvoice: {
		"client":      "Unknown",
		"amount":      0.0,
		"description": "General Services",
	},
	model.IntentTask: {
		"description": "No description",
	},
	model.IntentContact: {
		"name":  "Unknown",
		"phone": "",
	},
	model.IntentExpense: {
		"merchant": "Unknown",
		"amount":   0.0,
		"category": "Other",
	},
}

// ContactFinder is the slice of storage the interpreter needs for invoice
// auto-fill suggestions.
type ContactFinder interface {
	SearchContacts(ctx context.Context, fragment string, limit int) ([]model.ContactSuggestion, error)
	AllContactSuggestions(ctx context.Context) ([]model.ContactSuggestion, error)
}

// Interpreter maps classification documents to typed draft records.
type Interpreter struct {
	// Contacts powers invoice suggestions; nil disables them.
	Contacts ContactFinder
	// Now is the clock for IDs and timestamps. Nil means time.Now.
	Now func() time.Time
}

// NewInterpreter creates an Interpreter backed by the given contact store.
func NewInterpreter(contacts ContactFinder) *Interpreter {
	return &Interpreter{Contacts: contacts}
}

func (it *Interpreter) now() time.Time {
	if it.Now != nil {
		return it.Now()
	}
	return time.Now()
}

// Interpret dispatches on the document's intent discriminator and builds
// the matching draft with a fresh ID and DRAFT status. A document whose
// intent is unrecognized passes through unchanged as an UnknownDraft.
// Only an explicit error field is terminal.
func (it *Interpreter) Interpret(ctx context.Context, doc map[string]any) (model.Draft, error) {
	if errVal, ok := doc["error"]; ok {
		return nil, &ClassificationError{Message: stringOr(errVal, "Unknown AI error")}
	}

	intent := model.Intent(stringOr(doc["intent"], ""))
	now := it.now()

	switch intent {
	case model.IntentInvoice:
		return it.invoiceDraft(ctx, doc, now), nil
	case model.IntentTask:
		return it.taskDraft(doc, now), nil
	case model.IntentContact:
		return it.contactDraft(doc, now), nil
	case model.IntentExpense:
		return it.expenseDraft(doc, now), nil
	default:
		return &model.UnknownDraft{Document: doc}, nil
	}
}

func (it *Interpreter) invoiceDraft(ctx context.Context, doc map[string]any, now time.Time) *model.InvoiceDraft {
	client := it.str(model.IntentInvoice, doc, "client")

	draft := &model.InvoiceDraft{
		Invoice: model.Invoice{
			ID:          model.NewIDAt(model.IntentInvoice, now),
			Client:      client,
			Amount:      it.num(model.IntentInvoice, doc, "amount"),
			Status:      model.StatusDraft,
			Description: it.str(model.IntentInvoice, doc, "description"),
		},
	}

	draft.SuggestedContacts, draft.AllContacts = it.contactSuggestions(ctx, client)
	return draft
}

func (it *Interpreter) taskDraft(doc map[string]any, now time.Time) *model.Task {
	return &model.Task{
		ID:          model.NewIDAt(model.IntentTask, now),
		Description: it.str(model.IntentTask, doc, "description"),
		Status:      model.StatusDraft,
		CreatedAt:   now.Format(time.RFC3339),
		DueDate:     optStr(doc["due_date"]),
	}
}

func (it *Interpreter) contactDraft(doc map[string]any, now time.Time) *model.Contact {
	return &model.Contact{
		ID:        model.NewIDAt(model.IntentContact, now),
		Name:      it.str(model.IntentContact, doc, "name"),
		Phone:     it.str(model.IntentContact, doc, "phone"),
		Company:   optStr(doc["company"]),
		CreatedAt: now.Format(time.RFC3339),
	}
}

func (it *Interpreter) expenseDraft(doc map[string]any, now time.Time) *model.Expense {
	date := stringOr(doc["date"], now.Format("2006-01-02"))

	return &model.Expense{
		ID:       model.NewIDAt(model.IntentExpense, now),
		Merchant: it.str(model.IntentExpense, doc, "merchant"),
		Amount:   it.num(model.IntentExpense, doc, "amount"),
		Category: it.str(model.IntentExpense, doc, "category"),
		Date:     date,
		Status:   model.StatusDraft,
	}
}

// contactSuggestions degrades to empty lists on any storage error.
// Matching is advisory UI sugar and must never fail draft creation.
func (it *Interpreter) contactSuggestions(ctx context.Context, client string) (suggested, all []model.ContactSuggestion) {
	if it.Contacts == nil {
		return nil, nil
	}

	suggested, err := it.Contacts.SearchContacts(ctx, client, suggestionCap)
	if err != nil {
		common.LogDebug("contact search degraded to empty", common.Fields{"error": err.Error()})
		suggested = nil
	}

	all, err = it.Contacts.AllContactSuggestions(ctx)
	if err != nil {
		common.LogDebug("contact listing degraded to empty", common.Fields{"error": err.Error()})
		all = nil
	}

	return suggested, all
}

// str reads a string field with the intent's table default.
func (it *Interpreter) str(intent model.Intent, doc map[string]any, key string) string {
	return stringOr(doc[key], fieldDefaults[intent][key].(string))
}

// num reads a numeric field with the intent's table default.
func (it *Interpreter) num(intent model.Intent, doc map[string]any, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fieldDefaults[intent][key].(float64)
	}
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

// optStr lifts a JSON value into an optional string; null, absence, and
// wrong types all mean absent.
func optStr(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}
