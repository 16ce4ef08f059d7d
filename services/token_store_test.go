package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 1, "a", time.Hour))
	require.NoError(t, store.Save(ctx, 1, "b", time.Hour))
	require.NoError(t, store.Save(ctx, 2, "c", time.Hour))

	live, err := store.IsLive(ctx, 1, "a")
	require.NoError(t, err)
	assert.True(t, live)

	live, _ = store.IsLive(ctx, 1, "unknown")
	assert.False(t, live)

	require.NoError(t, store.Revoke(ctx, 1, "a"))
	live, _ = store.IsLive(ctx, 1, "a")
	assert.False(t, live)

	// revoke ซ้ำ token ที่ไม่อยู่แล้วต้องเงียบ ๆ ไม่ error
	assert.NoError(t, store.Revoke(ctx, 1, "a"))

	require.NoError(t, store.RevokeAll(ctx, 1))
	live, _ = store.IsLive(ctx, 1, "b")
	assert.False(t, live)

	// ของ user อื่นไม่โดนหางเลข
	live, _ = store.IsLive(ctx, 2, "c")
	assert.True(t, live)
}

func TestMemoryTokenStore_Expiry(t *testing.T) {
	store := NewMemoryTokenStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 1, "short", -time.Second))
	live, err := store.IsLive(ctx, 1, "short")
	require.NoError(t, err)
	assert.False(t, live)
}
