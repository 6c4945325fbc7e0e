package model

// ActivityItem is a read-side projection merging confirmed invoices and
// expenses into one recency-ordered feed.
type ActivityItem struct {
	ID          string  `json:"id"`
	Intent      Intent  `json:"intent"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Timestamp   int64   `json:"timestamp"`
	FilePath    *string `json:"file_path"`
}

// FinancialSummary aggregates confirmed invoices and expenses.
type FinancialSummary struct {
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}
