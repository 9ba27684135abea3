package ctxutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields(t *testing.T) {
	ctx := WithOp(WithChatID(WithRequestID(context.Background()), 42), "module_report")

	id, ok := RequestID(ctx)
	require.True(t, ok)
	assert.Len(t, id, 36)

	assert.Equal(t, []any{"request_id", id, "chat_id", int64(42), "op", "module_report"}, Fields(ctx))
	assert.Empty(t, Fields(context.Background()))
}

func TestWithRequestID_Keeps(t *testing.T) {
	ctx := WithRequestID(context.Background())
	first, _ := RequestID(ctx)
	second, _ := RequestID(WithRequestID(ctx))
	assert.Equal(t, first, second)
}

func TestWithDBTimeout(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		ctx, cancel := WithDBTimeout(context.Background())
		defer cancel()
		dl, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(DefaultDBTimeout), dl, time.Second)
	})

	t.Run("parent_shorter", func(t *testing.T) {
		parent, cancelParent := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancelParent()
		ctx, cancel := WithDBTimeout(parent)
		defer cancel()
		dl, _ := ctx.Deadline()
		assert.True(t, time.Until(dl) <= 100*time.Millisecond)
	})
}
