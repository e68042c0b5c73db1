package services

import (
	"sync"

	"expense-manager/internal/domain/entities"
)

// SessionStore maps user ids to their in-progress drafts. Sessions are
// created lazily on first interaction and cleared on commit or reset; an
// abandoned session simply stays until the process exits. The chat platform
// delivers one event at a time per user, so only creation and clearing need
// synchronization across users.
type SessionStore struct {
	sessions sync.Map // int64 -> *entities.UserSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Get returns the user's session or nil when none exists.
func (s *SessionStore) Get(userID int64) *entities.UserSession {
	if v, ok := s.sessions.Load(userID); ok {
		return v.(*entities.UserSession)
	}
	return nil
}

// GetOrCreate returns the user's session, creating an empty one if needed.
func (s *SessionStore) GetOrCreate(userID int64) *entities.UserSession {
	v, _ := s.sessions.LoadOrStore(userID, &entities.UserSession{})
	return v.(*entities.UserSession)
}

// Clear drops the user's session entirely.
func (s *SessionStore) Clear(userID int64) {
	s.sessions.Delete(userID)
}
