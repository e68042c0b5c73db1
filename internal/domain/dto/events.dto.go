package dto

type EventType string

const (
	EventCommand EventType = "command"
	EventButton  EventType = "button"
	EventText    EventType = "text"
)

// InboundEvent is one user interaction delivered by the chat platform:
// a command, a button press carrying a choice id, or a free-text message.
type InboundEvent struct {
	Type      EventType `json:"type"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	ChatID    int64     `json:"chatId"`
	MessageID int       `json:"messageId"`
	Command   string    `json:"command,omitempty"`
	Choice    string    `json:"choice,omitempty"`
	Text      string    `json:"text,omitempty"`
}
