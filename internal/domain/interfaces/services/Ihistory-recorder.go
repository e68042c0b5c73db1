package Iservices

import "expense-manager/internal/domain/entities"

// IHistoryRecorder records audit lines without ever blocking or failing the
// conversational flow that triggered them.
type IHistoryRecorder interface {
	Record(entry entities.ChatHistoryEntry)
	Close()
}
