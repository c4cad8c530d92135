package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridemedia-backend/internal/apperrors"
)

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{ID: "s1", Username: "admin", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}))

	session, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "admin", session.Username)

	now = now.Add(time.Hour)
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSessionContext(t *testing.T) {
	_, ok := SessionFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithSession(context.Background(), &Session{ID: "s1"})
	session, ok := SessionFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "s1", session.ID)
}
