// Package errdefs holds the error kinds every service operation can return.
// All of them are recoverable at the caller boundary.
package errdefs

import (
	"errors"
	"fmt"
)

// Kinds for errors.Is checks.
var (
	ErrValidation           = errors.New("validation error")
	ErrDuplicate            = errors.New("duplicate")
	ErrInvalidState         = errors.New("invalid state")
	ErrReferentialIntegrity = errors.New("referential integrity")
	ErrNotFound             = errors.New("not found")
	ErrStorage              = errors.New("storage error")
)

// ValidationError is a missing or malformed required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// DuplicateError is a uniqueness violation.
type DuplicateError struct {
	Field string
	Value string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("a record with %s = %q already exists", e.Field, e.Value)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// InvalidStateError is an illegal lifecycle transition or an edit after a
// terminal state.
type InvalidStateError struct {
	Entity string
	State  string
	Action string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s %s in state %s", e.Action, e.Entity, e.State)
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// ReferentialIntegrityError means dependents block the operation, or two
// references disagree (tutor of another company).
type ReferentialIntegrityError struct {
	Entity     string
	Dependency string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s is blocked by %s", e.Entity, e.Dependency)
}

func (e *ReferentialIntegrityError) Is(target error) bool { return target == ErrReferentialIntegrity }

type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StorageError wraps a failure of the storage collaborator.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return "storage: " + e.Op
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func Duplicate(field, value string) error {
	return &DuplicateError{Field: field, Value: value}
}

func InvalidState(entity, state, action string) error {
	return &InvalidStateError{Entity: entity, State: state, Action: action}
}

func Referential(entity, dependency string) error {
	return &ReferentialIntegrityError{Entity: entity, Dependency: dependency}
}

func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// Storage wraps err unless it already carries one of the domain kinds.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsDomain reports whether err is one of the kinds above.
func IsDomain(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrReferentialIntegrity) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStorage)
}

// Kind returns a short label for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrReferentialIntegrity):
		return "referential"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrStorage):
		return "storage"
	}
	return "internal"
}

// Message renders err for an end user.
func Message(err error) string {
	var (
		ve *ValidationError
		de *DuplicateError
		se *InvalidStateError
		re *ReferentialIntegrityError
		ne *NotFoundError
		st *StorageError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return fmt.Sprintf("Invalid %s: %s.", ve.Field, ve.Reason)
	case errors.As(err, &de):
		return fmt.Sprintf("There is already a record with %s %q.", de.Field, de.Value)
	case errors.As(err, &se):
		return fmt.Sprintf("The %s is %s and cannot be %s.", se.Entity, se.State, pastTense(se.Action))
	case errors.As(err, &re):
		return fmt.Sprintf("The %s cannot be changed: %s.", re.Entity, re.Dependency)
	case errors.As(err, &ne):
		return fmt.Sprintf("The %s %d does not exist.", ne.Entity, ne.ID)
	case errors.As(err, &st):
		return "The data could not be saved. Nothing was changed, please try again."
	}
	return "Unexpected error: " + err.Error()
}

func pastTense(action string) string {
	switch action {
	case "finalize":
		return "finalized"
	case "cancel":
		return "cancelled"
	case "update progress":
		return "updated"
	case "edit":
		return "edited"
	}
	return action + "ed"
}
