package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"reminders-server/models"

	"github.com/google/uuid"
)

// dialect captures what differs between the SQL backends.
type dialect struct {
	// numbered placeholders ($1, $2, ...) instead of ?
	numbered bool
	// column that breaks created_at ties in insertion order
	tieBreak          string
	isUniqueViolation func(error) bool
}

// sqlStore implements Store over database/sql. Queries are written with ?
// placeholders and rebound per dialect.
type sqlStore struct {
	db *sql.DB
	d  dialect
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	userColumns     = "id, username, name, password, token, created_at, updated_at"
	reminderColumns = "id, user_id, content, important, created_at, updated_at"
)

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func (s *sqlStore) rebind(query string) string {
	if !s.d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// User operations

func (s *sqlStore) CreateUser(ctx context.Context, username, name, passwordHash string) (*models.User, error) {
	now := timestamp()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO users (id, username, name, password, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), user.ID, user.Username, user.Name, user.PasswordHash, now.UnixMilli(), now.UnixMilli())
	if err != nil {
		if s.d.isUniqueViolation != nil && s.d.isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (s *sqlStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, s.rebind("SELECT "+userColumns+" FROM users WHERE username = ?"), username)
	return scanUser(row)
}

func (s *sqlStore) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, s.rebind("SELECT "+userColumns+" FROM users WHERE token = ?"), token)
	return scanUser(row)
}

func (s *sqlStore) SetUserToken(ctx context.Context, userID, token string) error {
	res, err := s.db.ExecContext(ctx, s.rebind("UPDATE users SET token = ?, updated_at = ? WHERE id = ?"),
		token, timestamp().UnixMilli(), userID)
	return affectedOne(res, err)
}

func (s *sqlStore) ClearUserToken(ctx context.Context, token string) error {
	res, err := s.db.ExecContext(ctx, s.rebind("UPDATE users SET token = NULL, updated_at = ? WHERE token = ?"),
		timestamp().UnixMilli(), token)
	return affectedOne(res, err)
}

// Reminder operations

func (s *sqlStore) ListReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE user_id = ?
		ORDER BY important DESC, created_at ASC, `+s.d.tieBreak+` ASC
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	reminders := []models.Reminder{}
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return reminders, nil
}

func (s *sqlStore) GetReminder(ctx context.Context, id, userID string) (*models.Reminder, error) {
	row := s.db.QueryRowContext(ctx, s.rebind("SELECT "+reminderColumns+" FROM reminders WHERE id = ? AND user_id = ?"), id, userID)
	return scanReminder(row)
}

func (s *sqlStore) CreateReminder(ctx context.Context, userID, content string, important bool) (*models.Reminder, error) {
	now := timestamp()
	reminder := &models.Reminder{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   content,
		Important: important,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO reminders (id, user_id, content, important, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), reminder.ID, reminder.UserID, reminder.Content, reminder.Important, now.UnixMilli(), now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return reminder, nil
}

func (s *sqlStore) UpdateReminder(ctx context.Context, id, userID string, upd models.UpdateReminderRequest) (*models.Reminder, error) {
	if upd.IsEmpty() {
		return s.GetReminder(ctx, id, userID)
	}

	var updates []string
	var args []any

	if upd.Content != nil {
		updates = append(updates, "content = ?")
		args = append(args, *upd.Content)
	}
	if upd.Important != nil {
		updates = append(updates, "important = ?")
		args = append(args, *upd.Important)
	}

	updates = append(updates, "updated_at = ?")
	args = append(args, timestamp().UnixMilli(), id, userID)

	query := "UPDATE reminders SET " + strings.Join(updates, ", ") +
		" WHERE id = ? AND user_id = ? RETURNING " + reminderColumns
	row := s.db.QueryRowContext(ctx, s.rebind(query), args...)
	return scanReminder(row)
}

func (s *sqlStore) DeleteReminder(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM reminders WHERE id = ? AND user_id = ?"), id, userID)
	return affectedOne(res, err)
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u                models.User
		token            sql.NullString
		created, updated int64
	)
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &token, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if token.Valid {
		u.Token = &token.String
	}
	u.CreatedAt = fromMillis(created)
	u.UpdatedAt = fromMillis(updated)
	return &u, nil
}

func scanReminder(row rowScanner) (*models.Reminder, error) {
	var (
		r                models.Reminder
		created, updated int64
	)
	err := row.Scan(&r.ID, &r.UserID, &r.Content, &r.Important, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	r.CreatedAt = fromMillis(created)
	r.UpdatedAt = fromMillis(updated)
	return &r, nil
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
