package ctxutil

import (
	"context"
	"time"
)

type key int

const (
	keyUserID key = iota
	keyCaller
)

// WithUserID / UserID carry the acting user explicitly instead of a global session.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, keyUserID, userID)
}

func UserID(ctx context.Context) (int64, bool) {
	v := ctx.Value(keyUserID)
	if v == nil {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}

// WithCaller / Caller name the entry point (CLI command, job) driving the
// operation, for logs.
func WithCaller(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyCaller, name)
}

func Caller(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(keyCaller).(string)
	return s, ok && s != ""
}

// DefaultDBTimeout is overridden from config at startup.
var DefaultDBTimeout = 5 * time.Second

func WithTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}

// WithDBTimeout applies DefaultDBTimeout unless the parent deadline is sooner.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		remain := time.Until(dl)
		if remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return WithTimeout(parent, DefaultDBTimeout)
}
