package domain

import (
	"errors"
	"strings"
)

var ErrEmptyUserID = errors.New("user id is required")

// User is a dashboard account. Only admins may view orders.
type User struct {
	ID      string
	IsAdmin bool
}

// NewUser builds a user ensuring required invariants.
func NewUser(id string, isAdmin bool) (*User, error) {
	user := &User{ID: strings.TrimSpace(id), IsAdmin: isAdmin}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return ErrEmptyUserID
	}
	return nil
}

// SessionIdentity is the verified reference a session cookie yields.
type SessionIdentity struct {
	UserID string
}
