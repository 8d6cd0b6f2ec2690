package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return newSQLiteTestStore(t)
	})
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reminders.db")

	s, err := NewSQLite(ctx, path)
	require.NoError(t, err)
	u, err := s.CreateUser(ctx, "alice", "Alice", "a:b")
	require.NoError(t, err)
	r, err := s.CreateReminder(ctx, u.ID, "durable", true)
	require.NoError(t, err)
	require.NoError(t, s.SetUserToken(ctx, u.ID, "tok"))
	require.NoError(t, s.Close())

	s, err = NewSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetUserByToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	list, err := s.ListReminders(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, r.ID, list[0].ID)
	assert.True(t, list[0].Important)
}

func TestSQLiteStore_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteTestStore(t)

	orig := timestamp
	fixed := orig()
	timestamp = func() time.Time { return fixed }
	t.Cleanup(func() { timestamp = orig })

	u, err := s.CreateUser(ctx, "alice", "Alice", "a:b")
	require.NoError(t, err)
	for _, c := range []string{"first", "second", "third"} {
		_, err := s.CreateReminder(ctx, u.ID, c, false)
		require.NoError(t, err)
	}

	list, err := s.ListReminders(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, "second", list[1].Content)
	assert.Equal(t, "third", list[2].Content)
}

func TestIsSQLiteUniqueViolation_OtherErrors(t *testing.T) {
	assert.False(t, isSQLiteUniqueViolation(assert.AnError))
}
