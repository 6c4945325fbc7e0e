package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fieldnote/fieldnote/internal/model"
)

// SaveContact appends a contact.
func (s *Store) SaveContact(ctx context.Context, contact *model.Contact) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if contact == nil {
		return fmt.Errorf("%w: contact", ErrNilParameter)
	}
	if err := validateString(contact.ID, "contact.ID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (id, name, phone, company, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, contact.ID, contact.Name, contact.Phone, derefOrEmpty(contact.Company), contact.CreatedAt)
	return wrapInsertErr(err, "contacts", contact.ID)
}

// ListContacts returns all contacts, most recently inserted first.
func (s *Store) ListContacts(ctx context.Context) ([]model.Contact, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, COALESCE(company, ''), COALESCE(created_at, '')
		FROM contacts
		ORDER BY rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var contacts []model.Contact
	for rows.Next() {
		var contact model.Contact
		var company string
		if err := rows.Scan(&contact.ID, &contact.Name, &contact.Phone, &company, &contact.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contact.Company = optional(company)
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	return contacts, nil
}

// SearchContacts performs a case-insensitive substring match against
// contact names, capped at limit rows in scan order.
func (s *Store) SearchContacts(ctx context.Context, fragment string, limit int) ([]model.ContactSuggestion, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, company
		FROM contacts
		WHERE lower(name) LIKE lower(?)
		LIMIT ?
	`, "%"+fragment+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSuggestions(rows)
}

// AllContactSuggestions returns the full directory sorted by name
// ascending, as a manual-selection fallback list.
func (s *Store) AllContactSuggestions(ctx context.Context) ([]model.ContactSuggestion, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, company
		FROM contacts
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact suggestions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSuggestions(rows)
}

// FirstContactMatch returns the phone and company of the first contact
// whose name contains the given fragment. Used to backfill invoice drafts
// at confirmation; first match wins, the rest are ignored.
func (s *Store) FirstContactMatch(ctx context.Context, fragment string) (phone string, company *string, err error) {
	if err := validateContext(ctx); err != nil {
		return "", nil, err
	}

	var companyRaw sql.NullString
	err = s.db.QueryRowContext(ctx, `
		SELECT phone, company
		FROM contacts
		WHERE name LIKE ?
		LIMIT 1
	`, "%"+fragment+"%").Scan(&phone, &companyRaw)
	if err == sql.ErrNoRows {
		return "", nil, sql.ErrNoRows
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to match contact: %w", err)
	}

	if companyRaw.Valid && companyRaw.String != "" {
		company = &companyRaw.String
	}
	return phone, company, nil
}

func scanSuggestions(rows *sql.Rows) ([]model.ContactSuggestion, error) {
	var suggestions []model.ContactSuggestion
	for rows.Next() {
		var sg model.ContactSuggestion
		var company sql.NullString
		if err := rows.Scan(&sg.ID, &sg.Name, &sg.Phone, &company); err != nil {
			return nil, fmt.Errorf("failed to scan contact suggestion: %w", err)
		}
		if company.Valid && company.String != "" {
			sg.Company = &company.String
		}
		suggestions = append(suggestions, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contact suggestions: %w", err)
	}
	return suggestions, nil
}
