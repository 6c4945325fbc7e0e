// Package engine orchestrates the capture-to-record intake pipeline:
// raw audio/image in, typed draft out, confirmed record persisted.
package engine

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fieldnote/fieldnote/internal/classify"
	"github.com/fieldnote/fieldnote/internal/common"
	"github.com/fieldnote/fieldnote/internal/model"
	"github.com/fieldnote/fieldnote/internal/speech"
)

// activityLimit caps the recent-activity feed.
const activityLimit = 5

// Engine wires the intake collaborators together. All state it touches
// is reached through the injected handles; there is no ambient config.
type Engine struct {
	store       Storage
	classifier  classify.Client
	interpreter *classify.Interpreter
	models      ModelProvider
	transcriber Transcriber
	dataDir     string
	now         func() time.Time
}

// Config collects the engine's collaborators.
type Config struct {
	Store       Storage
	Classifier  classify.Client
	Models      ModelProvider
	Transcriber Transcriber
	DataDir     string
}

// New creates an intake engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("%w: store is required", common.ErrInvalidConfig)
	}

	return &Engine{
		store:       cfg.Store,
		classifier:  cfg.Classifier,
		interpreter: classify.NewInterpreter(cfg.Store),
		models:      cfg.Models,
		transcriber: cfg.Transcriber,
		dataDir:     cfg.DataDir,
		now:         time.Now,
	}, nil
}

// Transcribe runs the local speech pipeline over one WAV capture: decode
// to normalized samples, ensure the model is cached, run inference.
func (e *Engine) Transcribe(ctx context.Context, rawAudio []byte) (string, error) {
	if e.models == nil || e.transcriber == nil {
		return "", fmt.Errorf("%w: transcription is not configured", common.ErrInvalidConfig)
	}

	samples, err := speech.DecodeWAV(rawAudio)
	if err != nil {
		return "", err
	}

	modelPath, err := e.models.EnsureModel(ctx, e.dataDir)
	if err != nil {
		return "", err
	}

	text, err := e.transcriber.Transcribe(ctx, modelPath, samples)
	if err != nil {
		return "", err
	}

	common.LogDebug("transcription complete", common.Fields{"chars": len(text)})
	return text, nil
}

// AnalyzeAudio classifies one audio capture into a draft record.
func (e *Engine) AnalyzeAudio(ctx context.Context, rawAudio []byte) (model.Draft, error) {
	if e.classifier == nil {
		return nil, fmt.Errorf("%w: classifier is not configured", common.ErrInvalidConfig)
	}

	payload := base64.StdEncoding.EncodeToString(rawAudio)
	prompt := classify.AudioPrompt(e.now().Format("2006-01-02"))

	doc, err := e.classifier.Analyze(ctx, prompt, "audio/wav", payload)
	if err != nil {
		return nil, err
	}

	return e.interpreter.Interpret(ctx, doc)
}

// AnalyzeImage classifies one receipt photo into a draft record. The
// input may carry a data-URI prefix, which is stripped before sending.
func (e *Engine) AnalyzeImage(ctx context.Context, imageData string) (model.Draft, error) {
	if e.classifier == nil {
		return nil, fmt.Errorf("%w: classifier is not configured", common.ErrInvalidConfig)
	}

	prompt := classify.ImagePrompt(e.now().Format("2006-01-02"))

	doc, err := e.classifier.Analyze(ctx, prompt, "image/jpeg", stripDataURI(imageData))
	if err != nil {
		return nil, err
	}

	return e.interpreter.Interpret(ctx, doc)
}

// Confirm promotes a draft to its kind's active status and hands it to
// persistence. Confirmation is one-way; once persisted the record is no
// longer the caller's to mutate.
func (e *Engine) Confirm(ctx context.Context, draft model.Draft) error {
	switch d := draft.(type) {
	case *model.InvoiceDraft:
		return e.ConfirmInvoice(ctx, &d.Invoice)
	case *model.Invoice:
		return e.ConfirmInvoice(ctx, d)
	case *model.Task:
		return e.ConfirmTask(ctx, d)
	case *model.Contact:
		return e.ConfirmContact(ctx, d)
	case *model.Expense:
		return e.ConfirmExpense(ctx, d)
	default:
		return fmt.Errorf("cannot confirm draft of kind %s", draft.Kind())
	}
}

// ConfirmInvoice persists an invoice, promoting DRAFT to GENERATED and
// backfilling phone/company from the contact directory when absent.
func (e *Engine) ConfirmInvoice(ctx context.Context, inv *model.Invoice) error {
	confirmed := *inv
	if confirmed.Status == model.StatusDraft {
		confirmed.Status = model.StatusGenerated
	}

	// Best-effort smart link: first name match wins, lookup failures are
	// swallowed because the backfill is optional.
	if confirmed.ClientPhone == nil || confirmed.ClientCompany == nil {
		phone, company, err := e.store.FirstContactMatch(ctx, confirmed.Client)
		switch {
		case err == nil:
			if confirmed.ClientPhone == nil {
				confirmed.ClientPhone = &phone
			}
			if confirmed.ClientCompany == nil {
				confirmed.ClientCompany = company
			}
		case errors.Is(err, sql.ErrNoRows):
			// No matching contact; nothing to backfill.
		default:
			common.LogDebug("contact backfill skipped", common.Fields{"error": err.Error()})
		}
	}

	return e.store.SaveInvoice(ctx, &confirmed)
}

// ConfirmTask persists a task, promoting DRAFT to TODO.
func (e *Engine) ConfirmTask(ctx context.Context, task *model.Task) error {
	confirmed := *task
	if confirmed.Status == model.StatusDraft {
		confirmed.Status = model.StatusTodo
	}
	return e.store.SaveTask(ctx, &confirmed)
}

// ConfirmContact persists a contact. Contacts have no draft/active
// distinction.
func (e *Engine) ConfirmContact(ctx context.Context, contact *model.Contact) error {
	return e.store.SaveContact(ctx, contact)
}

// ConfirmExpense persists an expense, promoting DRAFT to PENDING.
func (e *Engine) ConfirmExpense(ctx context.Context, exp *model.Expense) error {
	confirmed := *exp
	if confirmed.Status == model.StatusDraft {
		confirmed.Status = model.StatusPending
	}
	return e.store.SaveExpense(ctx, &confirmed)
}

// RecentActivity merges confirmed invoices and expenses into one feed
// ordered by the recency recoverable from record IDs, truncated to the
// five most recent. Drafts are excluded.
func (e *Engine) RecentActivity(ctx context.Context) ([]model.ActivityItem, error) {
	invoices, err := e.store.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}

	var activity []model.ActivityItem
	for _, inv := range invoices {
		if inv.Status == model.StatusDraft {
			continue
		}
		ts := model.IDTimestamp(inv.ID)
		date := "Unknown"
		if ts > 0 {
			date = time.Unix(ts, 0).Format("2006-01-02")
		}
		filePath := inv.PDFPath
		if filePath == nil {
			filePath = e.ResolveInvoicePDF(inv.ID)
		}
		activity = append(activity, model.ActivityItem{
			ID:          inv.ID,
			Intent:      model.IntentInvoice,
			Description: inv.Client,
			Amount:      inv.Amount,
			Date:        date,
			Timestamp:   ts,
			FilePath:    filePath,
		})
	}

	expenses, err := e.store.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	for _, exp := range expenses {
		if exp.Status == model.StatusDraft {
			continue
		}
		activity = append(activity, model.ActivityItem{
			ID:          exp.ID,
			Intent:      model.IntentExpense,
			Description: fmt.Sprintf("%s (%s)", exp.Merchant, exp.Category),
			Amount:      exp.Amount,
			Date:        exp.Date,
			Timestamp:   model.IDTimestamp(exp.ID),
		})
	}

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Timestamp > activity[j].Timestamp
	})

	if len(activity) > activityLimit {
		activity = activity[:activityLimit]
	}
	return activity, nil
}

// SummarizeFinances reports confirmed revenue, expenses, and profit.
func (e *Engine) SummarizeFinances(ctx context.Context) (model.FinancialSummary, error) {
	return e.store.SummarizeFinances(ctx)
}

// stripDataURI removes a "data:...;base64," prefix if present.
func stripDataURI(data string) string {
	if _, payload, found := strings.Cut(data, ","); found {
		return payload
	}
	return data
}
