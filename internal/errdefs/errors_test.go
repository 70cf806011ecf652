package errdefs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind error
		name string
	}{
		{Validation("email", "is required"), ErrValidation, "validation"},
		{Duplicate("tax_id", "B1"), ErrDuplicate, "duplicate"},
		{InvalidState("assignment", "FINALIZED", "cancel"), ErrInvalidState, "invalid_state"},
		{Referential("company", "2 assignments"), ErrReferentialIntegrity, "referential"},
		{NotFound("student", 7), ErrNotFound, "not_found"},
		{Storage("commit", errors.New("boom")), ErrStorage, "storage"},
	}
	for _, c := range cases {
		wrapped := fmt.Errorf("op: %w", c.err)
		if !errors.Is(wrapped, c.kind) {
			t.Fatalf("%v: expected kind %v", c.err, c.kind)
		}
		if got := Kind(wrapped); got != c.name {
			t.Fatalf("Kind(%v) = %q, want %q", c.err, got, c.name)
		}
		if Message(wrapped) == "" {
			t.Fatalf("empty message for %v", c.err)
		}
	}
}

func TestStorageKeepsDomainErrors(t *testing.T) {
	nf := NotFound("period", 3)
	if got := Storage("load", nf); got != nf {
		t.Fatalf("domain error must pass through, got %v", got)
	}
	raw := errors.New("connection reset")
	err := Storage("load", raw)
	if !errors.Is(err, raw) {
		t.Fatal("storage error must unwrap to the cause")
	}
}

func TestMessageInvalidState(t *testing.T) {
	got := Message(InvalidState("assignment", "FINALIZED", "update progress"))
	want := "The assignment is FINALIZED and cannot be updated."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
