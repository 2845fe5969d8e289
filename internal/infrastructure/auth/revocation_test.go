package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/catalogsync/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRevocationList_Revoke(t *testing.T) {
	list := auth.NewInMemoryRevocationList()
	ctx := context.Background()

	require.NoError(t, list.Revoke(ctx, "jti-1", time.Hour))

	revoked, err := list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = list.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryRevocationList_EmptyID(t *testing.T) {
	list := auth.NewInMemoryRevocationList()
	assert.ErrorIs(t, list.Revoke(context.Background(), "", time.Hour), auth.ErrInvalidClaims)
}

func TestInMemoryRevocationList_ExpirationCleanup(t *testing.T) {
	list := auth.NewInMemoryRevocationList()
	ctx := context.Background()

	require.NoError(t, list.Revoke(ctx, "jti-expire", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	revoked, err := list.IsRevoked(ctx, "jti-expire")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationList_Interface(t *testing.T) {
	var _ auth.RevocationList = (*auth.InMemoryRevocationList)(nil)
	var _ auth.RevocationList = (*auth.RedisRevocationList)(nil)
}
