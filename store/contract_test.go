package store

import (
	"context"
	"testing"
	"time"

	"reminders-server/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock makes every timestamp() call one millisecond later than the last.
func fakeClock(t *testing.T) {
	t.Helper()
	orig := timestamp
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	timestamp = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Millisecond)
	}
	t.Cleanup(func() { timestamp = orig })
}

func ptr[T any](v T) *T { return &v }

// runStoreContract exercises the behaviour every Store implementation shares.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("users and tokens", func(t *testing.T) {
		s := newStore(t)

		u, err := s.CreateUser(ctx, "admin", "Administrador", "salt:hash")
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Nil(t, u.Token)

		_, err = s.CreateUser(ctx, "admin", "Other", "x:y")
		assert.ErrorIs(t, err, ErrUsernameTaken)

		got, err := s.GetUserByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "Administrador", got.Name)
		assert.Equal(t, "salt:hash", got.PasswordHash)

		_, err = s.GetUserByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, s.SetUserToken(ctx, u.ID, "tok1"))
		got, err = s.GetUserByToken(ctx, "tok1")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		require.NotNil(t, got.Token)
		assert.Equal(t, "tok1", *got.Token)

		// a new token replaces the old one
		require.NoError(t, s.SetUserToken(ctx, u.ID, "tok2"))
		_, err = s.GetUserByToken(ctx, "tok1")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.GetUserByToken(ctx, "tok2")
		assert.NoError(t, err)

		require.NoError(t, s.ClearUserToken(ctx, "tok2"))
		_, err = s.GetUserByToken(ctx, "tok2")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, s.ClearUserToken(ctx, "tok2"), ErrNotFound)

		assert.ErrorIs(t, s.SetUserToken(ctx, uuid.NewString(), "tok3"), ErrNotFound)
	})

	t.Run("reminder crud", func(t *testing.T) {
		s := newStore(t)
		u, err := s.CreateUser(ctx, "alice", "Alice", "a:b")
		require.NoError(t, err)

		created, err := s.CreateReminder(ctx, u.ID, "Item 1", true)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Item 1", created.Content)
		assert.True(t, created.Important)
		assert.False(t, created.CreatedAt.IsZero())
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)

		got, err := s.GetReminder(ctx, created.ID, u.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Content, got.Content)
		assert.Equal(t, created.CreatedAt.UnixMilli(), got.CreatedAt.UnixMilli())

		updated, err := s.UpdateReminder(ctx, created.ID, u.ID, models.UpdateReminderRequest{Content: ptr("Item 1 UPDATED")})
		require.NoError(t, err)
		assert.Equal(t, "Item 1 UPDATED", updated.Content)
		assert.True(t, updated.Important, "important must be untouched")

		updated, err = s.UpdateReminder(ctx, created.ID, u.ID, models.UpdateReminderRequest{Important: ptr(false)})
		require.NoError(t, err)
		assert.Equal(t, "Item 1 UPDATED", updated.Content, "content must be untouched")
		assert.False(t, updated.Important)
		assert.Equal(t, created.CreatedAt.UnixMilli(), updated.CreatedAt.UnixMilli())

		same, err := s.UpdateReminder(ctx, created.ID, u.ID, models.UpdateReminderRequest{})
		require.NoError(t, err)
		assert.Equal(t, updated.Content, same.Content)

		list, err := s.ListReminders(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Item 1 UPDATED", list[0].Content)
		assert.False(t, list[0].Important)

		require.NoError(t, s.DeleteReminder(ctx, created.ID, u.ID))
		assert.ErrorIs(t, s.DeleteReminder(ctx, created.ID, u.ID), ErrNotFound)

		list, err = s.ListReminders(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
		assert.NotNil(t, list)
	})

	t.Run("ownership scoping", func(t *testing.T) {
		s := newStore(t)
		alice, err := s.CreateUser(ctx, "alice", "Alice", "a:b")
		require.NoError(t, err)
		bob, err := s.CreateUser(ctx, "bob", "Bob", "c:d")
		require.NoError(t, err)

		r, err := s.CreateReminder(ctx, alice.ID, "private", false)
		require.NoError(t, err)

		_, err = s.GetReminder(ctx, r.ID, bob.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.UpdateReminder(ctx, r.ID, bob.ID, models.UpdateReminderRequest{Content: ptr("hijack")})
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.UpdateReminder(ctx, r.ID, bob.ID, models.UpdateReminderRequest{})
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, s.DeleteReminder(ctx, r.ID, bob.ID), ErrNotFound)

		list, err := s.ListReminders(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, list)

		got, err := s.GetReminder(ctx, r.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "private", got.Content)

		_, err = s.UpdateReminder(ctx, uuid.NewString(), alice.ID, models.UpdateReminderRequest{Content: ptr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list ordering", func(t *testing.T) {
		fakeClock(t)
		s := newStore(t)
		u, err := s.CreateUser(ctx, "alice", "Alice", "a:b")
		require.NoError(t, err)

		input := []struct {
			content   string
			important bool
		}{
			{"n1", false}, {"i1", true}, {"n2", false}, {"i2", true}, {"n3", false}, {"i3", true},
		}
		for _, in := range input {
			_, err := s.CreateReminder(ctx, u.ID, in.content, in.important)
			require.NoError(t, err)
		}

		list, err := s.ListReminders(ctx, u.ID)
		require.NoError(t, err)

		var got []string
		for _, r := range list {
			got = append(got, r.Content)
		}
		assert.Equal(t, []string{"i1", "i2", "i3", "n1", "n2", "n3"}, got)
	})
}
