package entities

import (
	"time"
	"unicode/utf8"
)

// Action types recorded in the chat interaction log.
const (
	ActionCommand      = "Command"
	ActionButtonClick  = "Button Click"
	ActionMessageSent  = "Message Sent"
	ActionCategory     = "Category Selected"
	ActionSplitType    = "Split Type Selected"
	ActionSplitNames   = "Split Names Entered"
	ActionAmount       = "Amount Entered"
	ActionPaymentMode  = "Payment Mode Selected"
	ActionExpenseAdded = "Expense Added"
)

// MessageTextCap bounds the free-text excerpt stored per audit line.
const MessageTextCap = 200

// ChatHistoryEntry is one append-only audit line. Insertion order is the
// only ordering guarantee.
type ChatHistoryEntry struct {
	Timestamp     time.Time
	UserID        int64
	Username      string
	FirstName     string
	ActionType    string
	ActionDetails string
	MessageText   string
	ButtonClicked string
	ChatID        int64
	MessageID     int
}

// TruncatedText returns the message text capped at MessageTextCap characters.
func (e ChatHistoryEntry) TruncatedText() string {
	return TruncateRunes(e.MessageText, MessageTextCap)
}

// TruncateRunes caps s at max characters. The cut falls on a character
// boundary, never inside a multi-byte encoding.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
