package preferences

import (
	"context"
	"errors"
	"testing"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/cristianoliveira/alonix-notify/internal/storage"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*storage.MemoryStorage
	getErr error
	setErr error
}

func (f failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.MemoryStorage.Get(ctx, key)
}

func (f failingStore) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStorage.Set(ctx, key, value)
}

func TestGetReturnsDefaultsWhenEmpty(t *testing.T) {
	s := NewStore(storage.NewMemoryStorage(), nil)
	require.Equal(t, domain.DefaultPreferences(), s.Get(context.Background()))
}

func TestSetThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemoryStorage(), nil)

	want := domain.Preferences{
		MuteAll:           true,
		DoNotDisturb:      true,
		DoNotDisturbHours: domain.QuietHours{StartHour: 23, EndHour: 6},
		MutedCategories:   []domain.Category{domain.CategorySystem, domain.CategoryClubInvite},
	}
	require.NoError(t, s.Set(ctx, want))
	require.Equal(t, want, s.Get(ctx))
}

func TestSetOverwritesWholeRecord(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemoryStorage(), nil)

	require.NoError(t, s.Set(ctx, domain.DefaultPreferences().WithMuted(domain.CategoryReminder, true)))
	require.NoError(t, s.Set(ctx, domain.Preferences{DoNotDisturbHours: domain.QuietHours{StartHour: 1, EndHour: 2}}))

	got := s.Get(ctx)
	require.Empty(t, got.MutedCategories)
	require.Equal(t, domain.QuietHours{StartHour: 1, EndHour: 2}, got.DoNotDisturbHours)
}

func TestSetRejectsInvalid(t *testing.T) {
	s := NewStore(storage.NewMemoryStorage(), nil)
	p := domain.DefaultPreferences()
	p.DoNotDisturbHours.EndHour = 30
	require.ErrorIs(t, s.Set(context.Background(), p), domain.ErrInvalidPreferences)
}

func TestGetFallsBackOnCorruptOrInvalidRecord(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStorage()
	s := NewStore(kv, nil)

	require.NoError(t, kv.Set(ctx, storage.PreferencesKey, "{not json"))
	require.Equal(t, domain.DefaultPreferences(), s.Get(ctx))

	require.NoError(t, kv.Set(ctx, storage.PreferencesKey, `{"doNotDisturbHours":{"startHour":99,"endHour":1}}`))
	require.Equal(t, domain.DefaultPreferences(), s.Get(ctx))
}

func TestGetFillsMissingFieldsWithDefaults(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStorage()
	require.NoError(t, kv.Set(ctx, storage.PreferencesKey, `{"muteAll":true}`))

	got := NewStore(kv, nil).Get(ctx)
	require.True(t, got.MuteAll)
	require.Equal(t, domain.QuietHours{StartHour: 22, EndHour: 7}, got.DoNotDisturbHours)
	require.NotNil(t, got.MutedCategories)
}

func TestReadErrorFallsBackSilently(t *testing.T) {
	s := NewStore(failingStore{MemoryStorage: storage.NewMemoryStorage(), getErr: errors.New("disk gone")}, nil)
	require.Equal(t, domain.DefaultPreferences(), s.Get(context.Background()))
}

func TestWriteErrorIsReturned(t *testing.T) {
	boom := errors.New("disk full")
	s := NewStore(failingStore{MemoryStorage: storage.NewMemoryStorage(), setErr: boom}, nil)
	require.ErrorIs(t, s.Set(context.Background(), domain.DefaultPreferences()), boom)
}
