package Iservices

import (
	"context"

	"expense-manager/internal/domain/entities"
)

// IExpenseStore is the cached data access layer over the remote ledger and
// audit-log tables.
type IExpenseStore interface {
	// Append commits one record and returns the generated transaction id.
	// On success the expense cache is invalidated so the next read refreshes.
	Append(ctx context.Context, record entities.ExpenseRecord) (string, error)
	// Query returns all of the user's expense records, refreshing the cache
	// when forced, empty, or stale.
	Query(ctx context.Context, userID int64, forceRefresh bool) ([]entities.ExpenseRecord, error)
	// QueryHistory returns at most limit of the user's most recent audit
	// lines, most recent first.
	QueryHistory(ctx context.Context, userID int64, limit int) ([]entities.ChatHistoryEntry, error)
}
