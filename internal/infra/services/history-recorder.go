package services

import (
	"context"
	"fmt"
	"sync"

	"expense-manager/internal/domain/entities"
	"expense-manager/internal/domain/interfaces/repository"
	Iservices "expense-manager/internal/domain/interfaces/services"
	"expense-manager/internal/infra/logger"
	"expense-manager/internal/infra/store"
)

const (
	defaultQueueSize = 256
	defaultWorkers   = 4
)

// HistoryRecorder appends audit lines to the remote chat-history table from
// a bounded queue of background workers. Enqueueing never blocks the caller:
// under pressure entries are dropped and the drop is logged. Write failures
// are logged and swallowed; they never reach the conversational flow.
type HistoryRecorder struct {
	table  repository.RemoteTable
	logger *logger.Logger

	queue     chan entities.ChatHistoryEntry
	wg        sync.WaitGroup
	closeOnce sync.Once

	mu     sync.RWMutex
	closed bool
}

func NewHistoryRecorder(table repository.RemoteTable, log *logger.Logger) *HistoryRecorder {
	return NewHistoryRecorderSized(table, log, defaultQueueSize, defaultWorkers)
}

func NewHistoryRecorderSized(table repository.RemoteTable, log *logger.Logger, queueSize, workers int) *HistoryRecorder {
	r := &HistoryRecorder{
		table:  table,
		logger: log,
		queue:  make(chan entities.ChatHistoryEntry, queueSize),
	}
	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go r.worker()
	}
	return r
}

// Record enqueues one audit line, fire and forget. A full queue drops the
// entry rather than exerting backpressure on the event path, and entries
// arriving after Close are dropped rather than panicking on the closed queue.
func (r *HistoryRecorder) Record(entry entities.ChatHistoryEntry) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.logger.Warn(fmt.Sprintf("Recorder closed, dropping %s entry for user %d", entry.ActionType, entry.UserID))
		return
	}

	select {
	case r.queue <- entry:
	default:
		r.logger.Warn(fmt.Sprintf("History queue full, dropping %s entry for user %d", entry.ActionType, entry.UserID))
	}
}

// Close stops accepting entries and drains the queue. Entries already
// started are allowed to complete or fail independently.
func (r *HistoryRecorder) Close() {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		close(r.queue)
	})
	r.wg.Wait()
}

func (r *HistoryRecorder) worker() {
	defer r.wg.Done()
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error(fmt.Sprintf("Recovered from panic in history worker: %v", rec))
		}
	}()

	for entry := range r.queue {
		if err := r.table.AppendRow(context.Background(), store.HistoryRow(entry)); err != nil {
			r.logger.Error(fmt.Sprintf("Error logging chat history: %v", err))
		}
	}
}

var _ Iservices.IHistoryRecorder = (*HistoryRecorder)(nil)
