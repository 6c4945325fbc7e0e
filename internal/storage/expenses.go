package storage

import (
	"context"
	"fmt"

	"github.com/fieldnote/fieldnote/internal/model"
)

// SaveExpense appends an expense.
func (s *Store) SaveExpense(ctx context.Context, exp *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if exp == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if err := validateString(exp.ID, "expense.ID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, merchant, amount, category, date, image_path, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, exp.ID, exp.Merchant, exp.Amount, exp.Category, exp.Date, derefOrEmpty(exp.ImagePath), exp.Status)
	return wrapInsertErr(err, "expenses", exp.ID)
}

// ListExpenses returns all expenses, most recently inserted first.
func (s *Store) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, merchant, amount, category, date, COALESCE(image_path, ''), status
		FROM expenses
		ORDER BY rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		var exp model.Expense
		var imagePath string
		if err := rows.Scan(&exp.ID, &exp.Merchant, &exp.Amount, &exp.Category, &exp.Date, &imagePath, &exp.Status); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		exp.ImagePath = optional(imagePath)
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// SummarizeFinances aggregates confirmed invoices and expenses. Drafts are
// excluded from both sides.
func (s *Store) SummarizeFinances(ctx context.Context) (model.FinancialSummary, error) {
	if err := validateContext(ctx); err != nil {
		return model.FinancialSummary{}, err
	}

	var summary model.FinancialSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0.0) FROM invoices WHERE status != ?
	`, model.StatusDraft).Scan(&summary.Revenue)
	if err != nil {
		return model.FinancialSummary{}, fmt.Errorf("failed to sum invoices: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0.0) FROM expenses WHERE status != ?
	`, model.StatusDraft).Scan(&summary.Expenses)
	if err != nil {
		return model.FinancialSummary{}, fmt.Errorf("failed to sum expenses: %w", err)
	}

	summary.Profit = summary.Revenue - summary.Expenses
	return summary, nil
}
