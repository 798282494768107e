package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	t.Run("anonymous by default", func(t *testing.T) {
		ctx := context.Background()
		assert.False(t, IsAuthenticated(ctx))
		assert.Empty(t, UserID(ctx))
		assert.Empty(t, UserEmail(ctx))
	})

	t.Run("carries id and email", func(t *testing.T) {
		ctx := WithUser(context.Background(), "7", "admin@campus.edu")
		assert.True(t, IsAuthenticated(ctx))
		assert.Equal(t, "7", UserID(ctx))
		assert.Equal(t, "admin@campus.edu", UserEmail(ctx))
	})
}

func TestNow(t *testing.T) {
	fixed := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, fixed, Now(WithTime(context.Background(), fixed)))
	assert.WithinDuration(t, time.Now(), Now(context.Background()), time.Second)
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.Equal(t, "req-42", RequestID(WithRequestID(context.Background(), "req-42")))
}
