package ctxutil

import (
	"context"
	"testing"
	"time"
)

func TestUserID(t *testing.T) {
	if _, ok := UserID(context.Background()); ok {
		t.Fatal("empty context must not carry a user")
	}
	ctx := WithUserID(context.Background(), 42)
	id, ok := UserID(ctx)
	if !ok || id != 42 {
		t.Fatalf("got %d %v", id, ok)
	}
	if _, ok := UserID(WithUserID(context.Background(), 0)); ok {
		t.Fatal("zero id is not a user")
	}
}

func TestWithDBTimeoutKeepsShorterParent(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	ctx, cancel2 := WithDBTimeout(parent)
	defer cancel2()
	dl, ok := ctx.Deadline()
	if !ok || time.Until(dl) > 50*time.Millisecond {
		t.Fatalf("expected parent deadline to win, got %v", dl)
	}
}

func TestCaller(t *testing.T) {
	if _, ok := Caller(context.Background()); ok {
		t.Fatal("empty context must not carry a caller")
	}
	name, ok := Caller(WithCaller(context.Background(), "finalize"))
	if !ok || name != "finalize" {
		t.Fatalf("got %q %v", name, ok)
	}
}
