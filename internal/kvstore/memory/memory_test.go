package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/imagestore/internal/kvstore"
)

func TestMemoryStorePutAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a", "1"))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreNotFound(t *testing.T) {
	_, err := NewMemoryStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			assert.NoError(t, store.Put(ctx, key, key))
			got, err := store.Get(ctx, key)
			assert.NoError(t, err)
			assert.Equal(t, key, got)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Len())
}
