package badge

import (
	"context"
	"errors"
	"testing"

	"github.com/cristianoliveira/alonix-notify/internal/storage"
	"github.com/stretchr/testify/require"
)

type deviceBadge struct {
	calls []int
	err   error
}

func (d *deviceBadge) SetBadge(_ context.Context, n int) error {
	d.calls = append(d.calls, n)
	return d.err
}

func TestIncrementDecrement(t *testing.T) {
	ctx := context.Background()
	c := NewCounter(storage.NewMemoryStorage(), nil, nil)

	require.Equal(t, 0, c.Get(ctx))
	require.Equal(t, 1, c.Increment(ctx))
	require.Equal(t, 2, c.Increment(ctx))
	require.Equal(t, 1, c.Decrement(ctx))
	require.Equal(t, 1, c.Get(ctx))
}

func TestNeverNegative(t *testing.T) {
	ctx := context.Background()
	c := NewCounter(storage.NewMemoryStorage(), nil, nil)

	require.Equal(t, 0, c.Decrement(ctx))
	require.Equal(t, 0, c.Get(ctx))
	require.Equal(t, 0, c.Set(ctx, -5))
}

func TestPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStorage()
	NewCounter(kv, nil, nil).Set(ctx, 7)

	raw, found, err := kv.Get(ctx, storage.BadgeCountKey)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "7", raw)
	require.Equal(t, 7, NewCounter(kv, nil, nil).Get(ctx))
}

func TestInvalidStoredValueReadsAsZero(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStorage()
	require.NoError(t, kv.Set(ctx, storage.BadgeCountKey, "lots"))
	require.Equal(t, 0, NewCounter(kv, nil, nil).Get(ctx))

	require.NoError(t, kv.Set(ctx, storage.BadgeCountKey, "-2"))
	require.Equal(t, 0, NewCounter(kv, nil, nil).Get(ctx))
}

func TestMirrorsToDevice(t *testing.T) {
	ctx := context.Background()
	dev := &deviceBadge{err: errors.New("no badge support")}
	c := NewCounter(storage.NewMemoryStorage(), dev, nil)

	c.Increment(ctx)
	c.Increment(ctx)
	c.Set(ctx, 0)
	require.Equal(t, []int{1, 2, 0}, dev.calls)
}

func TestSeesWritesFromAnotherCounter(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStorage()
	server := NewCounter(kv, nil, nil)
	cli := NewCounter(kv, nil, nil)

	server.Increment(ctx)
	server.Increment(ctx)
	server.Increment(ctx)
	require.Equal(t, 3, cli.Get(ctx))

	cli.Set(ctx, 0)
	require.Equal(t, 0, server.Get(ctx))
	require.Equal(t, 1, server.Increment(ctx))
}
