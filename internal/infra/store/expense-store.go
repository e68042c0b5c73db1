package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"expense-manager/internal/domain/entities"
	"expense-manager/internal/domain/interfaces/repository"
	repoconstants "expense-manager/internal/domain/interfaces/repository/constants"
	Iservices "expense-manager/internal/domain/interfaces/services"
	"expense-manager/internal/infra/logger"
)

const (
	// expenseCacheTTL is the staleness threshold for the ledger snapshot.
	// The history cache has no TTL: it refreshes only when empty.
	expenseCacheTTL = 300 * time.Second

	maxRemoteAttempts = 3
	retryDelay        = 1 * time.Second

	// settleDelay absorbs the remote store's read-after-write propagation
	// lag after a successful append. Best effort, not a guarantee.
	settleDelay = 500 * time.Millisecond
)

// ExpenseStore is a read-through, write-invalidating cache over the remote
// ledger and audit-log tables. It owns retry and invalidation policy.
type ExpenseStore struct {
	expenses repository.RemoteTable
	history  repository.RemoteTable

	expenseCache *TableCache
	historyCache *TableCache

	clock  Clock
	logger *logger.Logger
}

func NewExpenseStore(expenses, history repository.RemoteTable, log *logger.Logger) *ExpenseStore {
	return NewExpenseStoreWithClock(expenses, history, log, SystemClock())
}

// NewExpenseStoreWithClock injects the clock so staleness windows and retry
// backoff can be driven from tests.
func NewExpenseStoreWithClock(expenses, history repository.RemoteTable, log *logger.Logger, clock Clock) *ExpenseStore {
	return &ExpenseStore{
		expenses:     expenses,
		history:      history,
		expenseCache: NewTableCache(),
		historyCache: NewTableCache(),
		clock:        clock,
		logger:       log,
	}
}

// Append commits one expense record to the remote ledger. The transaction id
// is generated here, at commit time, from the user id and commit timestamp.
// On success the expense cache is invalidated so the next read refreshes;
// on exhausted retries the cache is left untouched and the error propagates.
func (s *ExpenseStore) Append(ctx context.Context, rec entities.ExpenseRecord) (string, error) {
	now := s.clock.Now()
	rec.TransactionID = fmt.Sprintf("TXN%d_%d", rec.UserID, now.Unix())
	rec.Timestamp = now
	if rec.Date == "" {
		rec.Date = now.Format(dateLayout)
	}
	if rec.Status == "" {
		rec.Status = entities.StatusCompleted
	}

	row := ExpenseRow(rec)

	var lastErr error
	for attempt := 1; attempt <= maxRemoteAttempts; attempt++ {
		if lastErr = s.expenses.AppendRow(ctx, row); lastErr == nil {
			break
		}
		s.logger.Warn(fmt.Sprintf("Append attempt %d/%d failed: %v", attempt, maxRemoteAttempts, lastErr))
		if attempt < maxRemoteAttempts {
			s.clock.Sleep(retryDelay)
		}
	}
	if lastErr != nil {
		return "", fmt.Errorf("append expense after %d attempts: %w", maxRemoteAttempts, lastErr)
	}

	s.expenseCache.Invalidate()
	s.logger.Info(fmt.Sprintf("Expense saved, cache invalidated: %s", rec.TransactionID))

	// Give the remote store a moment to propagate before any dependent
	// history write or read-back.
	s.clock.Sleep(settleDelay)

	return rec.TransactionID, nil
}

// Query returns all expense records for the user. The cache is refreshed
// when forced, empty, or older than the staleness threshold; a fully failed
// refresh propagates the error rather than serving empty or stale rows.
func (s *ExpenseStore) Query(ctx context.Context, userID int64, forceRefresh bool) ([]entities.ExpenseRecord, error) {
	if forceRefresh || s.expenseCache.Stale(s.clock.Now(), expenseCacheTTL) {
		rows, err := s.readAll(ctx, s.expenses)
		if err != nil {
			return nil, err
		}
		s.expenseCache.Replace(rows, s.clock.Now())
		s.logger.Info(fmt.Sprintf("Expense cache refreshed, %d records", len(rows)))
	}

	rows, _ := s.expenseCache.Snapshot()
	uid := strconv.FormatInt(userID, 10)

	var records []entities.ExpenseRecord
	for _, row := range rows {
		if strings.TrimSpace(row[repoconstants.ColUserID]) == uid {
			records = append(records, parseExpenseRow(row))
		}
	}
	return records, nil
}

// QueryHistory returns at most limit of the user's audit lines, most recent
// first. The history cache refreshes only when empty; its staleness
// tolerance is looser than the ledger's.
func (s *ExpenseStore) QueryHistory(ctx context.Context, userID int64, limit int) ([]entities.ChatHistoryEntry, error) {
	if s.historyCache.Stale(s.clock.Now(), 0) {
		rows, err := s.readAll(ctx, s.history)
		if err != nil {
			return nil, err
		}
		s.historyCache.Replace(rows, s.clock.Now())
		s.logger.Info(fmt.Sprintf("History cache refreshed, %d records", len(rows)))
	}

	rows, _ := s.historyCache.Snapshot()
	uid := strconv.FormatInt(userID, 10)

	var entries []entities.ChatHistoryEntry
	for _, row := range rows {
		if strings.TrimSpace(row[repoconstants.ColUserID]) == uid {
			entries = append(entries, parseHistoryRow(row))
		}
	}

	// Insertion order is the chronological proxy; newest last in the sheet.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// InvalidateExpenses empties the ledger cache. Exposed for callers that know
// the remote table changed behind the store's back.
func (s *ExpenseStore) InvalidateExpenses() {
	s.expenseCache.Invalidate()
}

func (s *ExpenseStore) readAll(ctx context.Context, table repository.RemoteTable) ([]repository.Row, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRemoteAttempts; attempt++ {
		rows, err := table.ReadAllRecords(ctx)
		if err == nil {
			return rows, nil
		}
		lastErr = err
		s.logger.Warn(fmt.Sprintf("Bulk read attempt %d/%d failed: %v", attempt, maxRemoteAttempts, err))
		if attempt < maxRemoteAttempts {
			s.clock.Sleep(retryDelay)
		}
	}
	return nil, fmt.Errorf("bulk read after %d attempts: %w", maxRemoteAttempts, lastErr)
}

var _ Iservices.IExpenseStore = (*ExpenseStore)(nil)
