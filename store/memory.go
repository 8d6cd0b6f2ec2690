package store

import (
	"context"
	"sync"

	"reminders-server/models"

	"github.com/google/uuid"
)

// MemoryStore keeps everything in process memory. It is used by tests and by
// the "memory" driver.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]*models.User
	byName    map[string]string
	byToken   map[string]string
	reminders map[string]*models.Reminder
	order     []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]*models.User),
		byName:    make(map[string]string),
		byToken:   make(map[string]string),
		reminders: make(map[string]*models.Reminder),
	}
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) CreateUser(_ context.Context, username, name, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[username]; ok {
		return nil, ErrUsernameTaken
	}

	now := timestamp()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[user.ID] = user
	s.byName[username] = user.ID

	return copyUser(user), nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[username]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(s.users[id]), nil
}

func (s *MemoryStore) GetUserByToken(_ context.Context, token string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byToken[token]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(s.users[id]), nil
}

func (s *MemoryStore) SetUserToken(_ context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	if user.Token != nil {
		delete(s.byToken, *user.Token)
	}
	user.Token = &token
	user.UpdatedAt = timestamp()
	s.byToken[token] = userID
	return nil
}

func (s *MemoryStore) ClearUserToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byToken[token]
	if !ok {
		return ErrNotFound
	}
	delete(s.byToken, token)
	user := s.users[id]
	user.Token = nil
	user.UpdatedAt = timestamp()
	return nil
}

func (s *MemoryStore) ListReminders(_ context.Context, userID string) ([]models.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reminders := []models.Reminder{}
	for _, id := range s.order {
		if r := s.reminders[id]; r.UserID == userID {
			reminders = append(reminders, *r)
		}
	}
	SortReminders(reminders)
	return reminders, nil
}

func (s *MemoryStore) GetReminder(_ context.Context, id, userID string) (*models.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := s.owned(id, userID)
	if err != nil {
		return nil, err
	}
	out := *r
	return &out, nil
}

func (s *MemoryStore) CreateReminder(_ context.Context, userID, content string, important bool) (*models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, ErrNotFound
	}

	now := timestamp()
	r := &models.Reminder{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   content,
		Important: important,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.reminders[r.ID] = r
	s.order = append(s.order, r.ID)

	out := *r
	return &out, nil
}

func (s *MemoryStore) UpdateReminder(_ context.Context, id, userID string, upd models.UpdateReminderRequest) (*models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.owned(id, userID)
	if err != nil {
		return nil, err
	}
	if !upd.IsEmpty() {
		if upd.Content != nil {
			r.Content = *upd.Content
		}
		if upd.Important != nil {
			r.Important = *upd.Important
		}
		r.UpdatedAt = timestamp()
	}

	out := *r
	return &out, nil
}

func (s *MemoryStore) DeleteReminder(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.owned(id, userID); err != nil {
		return err
	}
	delete(s.reminders, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// owned must be called with mu held.
func (s *MemoryStore) owned(id, userID string) (*models.Reminder, error) {
	r, ok := s.reminders[id]
	if !ok || r.UserID != userID {
		return nil, ErrNotFound
	}
	return r, nil
}

func copyUser(u *models.User) *models.User {
	out := *u
	if u.Token != nil {
		tok := *u.Token
		out.Token = &tok
	}
	return &out
}
