package storage

import (
	"context"
	"fmt"

	"github.com/fieldnote/fieldnote/internal/model"
)

// SaveInvoice appends an invoice. Duplicate IDs are a propagated error,
// never a silent merge.
func (s *Store) SaveInvoice(ctx context.Context, inv *model.Invoice) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if inv == nil {
		return fmt.Errorf("%w: invoice", ErrNilParameter)
	}
	if err := validateString(inv.ID, "invoice.ID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invoices (id, client, amount, status, description, client_phone, client_company)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, inv.ID, inv.Client, inv.Amount, inv.Status, inv.Description,
		derefOrEmpty(inv.ClientPhone), derefOrEmpty(inv.ClientCompany))
	return wrapInsertErr(err, "invoices", inv.ID)
}

// ListInvoices returns all invoices, most recently inserted first.
func (s *Store) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, client, amount, status,
		       COALESCE(description, ''), COALESCE(client_phone, ''), COALESCE(client_company, '')
		FROM invoices
		ORDER BY rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var invoices []model.Invoice
	for rows.Next() {
		var inv model.Invoice
		var phone, company string
		if err := rows.Scan(&inv.ID, &inv.Client, &inv.Amount, &inv.Status, &inv.Description, &phone, &company); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		inv.ClientPhone = optional(phone)
		inv.ClientCompany = optional(company)
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}

	return invoices, nil
}

// derefOrEmpty flattens an optional string for storage; absent fields are
// stored as empty strings, matching the append-only schema.
func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// optional lifts a stored string back into an optional field. Empty means
// the field was never filled.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
