package ctxutil

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// приватные ключи, чтобы исключить коллизии
type key int

const (
	keyChatID key = iota
	keyRequestID
	keyOpName
)

// WithChatID /ChatID — прокидываем chatID в контекст
func WithChatID(ctx context.Context, chatID int64) context.Context {
	return context.WithValue(ctx, keyChatID, chatID)
}

func ChatID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(keyChatID).(int64)
	return id, ok
}

// WithRequestID — новый id запроса для логов; существующий не перезаписываем.
func WithRequestID(ctx context.Context) context.Context {
	if _, ok := RequestID(ctx); ok {
		return ctx
	}
	return context.WithValue(ctx, keyRequestID, uuid.NewString())
}

func RequestID(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(keyRequestID).(string)
	return s, ok
}

// WithOp /Op — имя операции (для логов/трейса)
func WithOp(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyOpName, name)
}

func Op(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(keyOpName).(string)
	return s, ok
}

var DefaultDBTimeout = 5 * time.Second

// WithDBTimeout — стандартный таймаут для БД.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		// если у родителя осталось меньше DefaultDBTimeout — берем остаток
		if remain := time.Until(dl); remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultDBTimeout)
}

// Fields — пары ключ/значение для zap SugaredLogger.
func Fields(ctx context.Context) []any {
	var out []any
	if id, ok := RequestID(ctx); ok {
		out = append(out, "request_id", id)
	}
	if id, ok := ChatID(ctx); ok {
		out = append(out, "chat_id", id)
	}
	if op, ok := Op(ctx); ok {
		out = append(out, "op", op)
	}
	return out
}
