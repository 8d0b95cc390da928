package user

import (
	"time"

	"github.com/google/uuid"
)

// Session is the identity of the person driving the app: set at login,
// cleared at logout, passed explicitly into core operations.
type Session struct {
	ID        uuid.UUID `json:"id"`
	User      User      `json:"user"`
	StartedAt time.Time `json:"started_at"` // UTC
}

func NewSession(usr User) Session {
	return Session{
		ID:        uuid.New(),
		User:      usr,
		StartedAt: time.Now().UTC(),
	}
}
