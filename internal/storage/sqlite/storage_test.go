package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "alonix.db")
	s, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestEmptyPathRejected(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	require.Error(t, err)
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStorage(t)

	v, found, err := s.Get(context.Background(), "@alonix/badge_count")
	require.NoError(t, err)
	require.False(t, found)
	require.Empty(t, v)
}

func TestSetOverwritesAndDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "1"))
	require.NoError(t, s.Set(ctx, "k", `{"a":"tab\there"}`))

	v, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `{"a":"tab\there"}`, v)

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	_, found, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, found)
}

func TestValuesSurviveReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "alonix.db")
	ctx := context.Background()

	s, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "@alonix/push_token", "tok"))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer s.Close()
	v, found, err := s.Get(ctx, "@alonix/push_token")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "tok", v)
}

func TestCloseNil(t *testing.T) {
	var s *SQLiteStorage
	require.NoError(t, s.Close())
}
