package services

import (
	"context"
	"errors"
	"fmt"

	"reminders-server/common"
	"reminders-server/models"
	"reminders-server/store"
	"reminders-server/validation"

	"github.com/google/uuid"
)

// Notifier receives a copy of every reminder change for the owning user.
type Notifier interface {
	SendToUser(userID string, msg models.WSMessage)
}

type ReminderService struct {
	reminders store.ReminderStore
	notifier  Notifier
}

// NewReminderService builds the service; notifier may be nil.
func NewReminderService(reminders store.ReminderStore, notifier Notifier) *ReminderService {
	return &ReminderService{reminders: reminders, notifier: notifier}
}

// List returns the user's reminders important-first, oldest-first.
func (s *ReminderService) List(ctx context.Context, userID string) ([]models.Reminder, error) {
	reminders, err := s.reminders.ListReminders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

func (s *ReminderService) Get(ctx context.Context, userID, id string) (*models.Reminder, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	r, err := s.reminders.GetReminder(ctx, id, userID)
	if err != nil {
		return nil, mapStoreErr("get reminder", err)
	}
	return r, nil
}

func (s *ReminderService) Create(ctx context.Context, userID, content string, important bool) (*models.Reminder, error) {
	if err := validation.CheckContent(content); err != nil {
		return nil, err
	}

	r, err := s.reminders.CreateReminder(ctx, userID, content, important)
	if err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}

	s.notify(userID, models.WSTypeReminderCreated, r.ToResponse())
	return r, nil
}

// Update applies only the fields present in upd. Missing and foreign
// reminders are both common.ErrNotFound.
func (s *ReminderService) Update(ctx context.Context, userID, id string, upd models.UpdateReminderRequest) (*models.Reminder, error) {
	if upd.Content != nil {
		if err := validation.CheckContent(*upd.Content); err != nil {
			return nil, err
		}
	}
	if !validID(id) {
		return nil, common.ErrNotFound
	}

	r, err := s.reminders.UpdateReminder(ctx, id, userID, upd)
	if err != nil {
		return nil, mapStoreErr("update reminder", err)
	}

	if !upd.IsEmpty() {
		s.notify(userID, models.WSTypeReminderUpdated, r.ToResponse())
	}
	return r, nil
}

func (s *ReminderService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return common.ErrNotFound
	}
	if err := s.reminders.DeleteReminder(ctx, id, userID); err != nil {
		return mapStoreErr("delete reminder", err)
	}

	s.notify(userID, models.WSTypeReminderDeleted, models.ReminderDeletedPayload{ID: id})
	return nil
}

func (s *ReminderService) notify(userID, kind string, payload any) {
	if s.notifier == nil {
		return
	}
	s.notifier.SendToUser(userID, models.WSMessage{Type: kind, Payload: payload})
}

func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func mapStoreErr(op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return common.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
