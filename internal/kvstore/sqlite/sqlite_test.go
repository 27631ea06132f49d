package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/imagestore/internal/db"
	"github.com/vbonduro/imagestore/internal/kvstore"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	s := NewSQLiteStore(d)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStorePutAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	payload := "data:image/png;base64,aGVsbG8="
	require.NoError(t, s.Put(ctx, "img-1", payload))

	got, err := s.Get(ctx, "img-1")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "img-1", "first"))
	require.NoError(t, s.Put(ctx, "img-1", "second"))

	got, err := s.Get(ctx, "img-1")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestSQLiteStoreNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestSQLiteStoreLargeValue(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	payload := "data:image/jpeg;base64," + strings.Repeat("QUJD", 256*1024)
	require.NoError(t, s.Put(ctx, "big", payload))

	got, err := s.Get(ctx, "big")
	require.NoError(t, err)
	assert.Equal(t, len(payload), len(got))
}

func TestSQLiteStoreClosed(t *testing.T) {
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	s := NewSQLiteStore(d)
	require.NoError(t, s.Close())

	err = s.Put(context.Background(), "a", "b")
	require.Error(t, err)

	_, err = s.Get(context.Background(), "a")
	require.Error(t, err)
	assert.NotErrorIs(t, err, kvstore.ErrNotFound)
}
