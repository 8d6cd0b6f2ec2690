// Package store persists users, their single session token, and their
// reminders. Implementations are interchangeable behind Store.
package store

import (
	"context"
	"errors"
	"time"

	"reminders-server/common"
	"reminders-server/models"
)

var (
	// ErrNotFound is returned for absent rows, and for reminders not owned by the
	// requesting user.
	ErrNotFound = common.ErrNotFound

	ErrUsernameTaken = errors.New("username already taken")
)

type UserStore interface {
	CreateUser(ctx context.Context, username, name, passwordHash string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
	// SetUserToken replaces the user's session token.
	SetUserToken(ctx context.Context, userID, token string) error
	// ClearUserToken removes token from whichever user holds it.
	ClearUserToken(ctx context.Context, token string) error
}

// ReminderStore operations are always scoped to the owning user.
type ReminderStore interface {
	ListReminders(ctx context.Context, userID string) ([]models.Reminder, error)
	GetReminder(ctx context.Context, id, userID string) (*models.Reminder, error)
	CreateReminder(ctx context.Context, userID, content string, important bool) (*models.Reminder, error)
	UpdateReminder(ctx context.Context, id, userID string, upd models.UpdateReminderRequest) (*models.Reminder, error)
	DeleteReminder(ctx context.Context, id, userID string) error
}

type Store interface {
	UserStore
	ReminderStore
	Close() error
}

// timestamp is the store clock, truncated to the millisecond precision that
// reminders are persisted and serialized with.
var timestamp = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
