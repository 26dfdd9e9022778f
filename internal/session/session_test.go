package session

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegistry_CreateResolve(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := NewMemoryRegistry()

	t1, err := reg.Create(ctx, 7)
	require.NoError(t, err)
	t2, err := reg.Create(ctx, 7)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)

	id, ok, err := reg.Resolve(ctx, t1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 7, id)

	_, ok, err = reg.Resolve(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRegistry_Concurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := NewMemoryRegistry()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			tok, err := reg.Create(ctx, id)
			assert.NoError(t, err)
			got, ok, err := reg.Resolve(ctx, tok)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, id, got)
		}(uint(i))
	}
	wg.Wait()
	assert.Equal(t, 50, reg.Len())
}

func TestMemoryRegistry_Close(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := NewMemoryRegistry()

	tok, err := reg.Create(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, reg.Close(ctx))

	_, ok, err := reg.Resolve(ctx, tok)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = reg.Create(ctx, 1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRedisRegistry(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	ctx := context.Background()

	reg, err := NewRedisRegistry(ctx, url, time.Minute)
	require.NoError(t, err)
	defer reg.Close(ctx)

	tok, err := reg.Create(ctx, 42)
	require.NoError(t, err)

	id, ok, err := reg.Resolve(ctx, tok)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 42, id)

	_, ok, err = reg.Resolve(ctx, "missing-"+tok)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisRegistry_BadURL(t *testing.T) {
	t.Parallel()
	_, err := NewRedisRegistry(context.Background(), "not a url", 0)
	assert.Error(t, err)
}
