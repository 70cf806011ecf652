package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
)

func TestMapErrorUniqueViolation(t *testing.T) {
	err := mapError("company", 0, "insert", fmt.Errorf("exec: %w", &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "companies_tax_id_key",
		Detail:         "Key (tax_id)=(B12345678) already exists.",
	}))
	var dup *errdefs.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("want DuplicateError, got %v", err)
	}
	if dup.Field != "tax_id" || dup.Value != "B12345678" {
		t.Fatalf("unexpected duplicate %+v", dup)
	}
}

func TestMapErrorExpressionIndex(t *testing.T) {
	err := mapError("company", 0, "insert", &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "companies_email_key",
		Detail:         "Key (lower(email))=(rrhh@acme.es) already exists.",
	})
	var dup *errdefs.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("want DuplicateError, got %v", err)
	}
	if dup.Field != "email" || dup.Value != "rrhh@acme.es" {
		t.Fatalf("unexpected duplicate %+v", dup)
	}
}

func TestMapErrorPQForeignKey(t *testing.T) {
	err := mapError("company", 3, "delete", &pq.Error{Code: "23503", Constraint: "assignments_company_id_fkey"})
	var ref *errdefs.ReferentialIntegrityError
	if !errors.As(err, &ref) {
		t.Fatalf("want ReferentialIntegrityError, got %v", err)
	}
	if ref.Dependency != "company_id" {
		t.Fatalf("dependency = %q", ref.Dependency)
	}
}

func TestMapErrorNoRowsAndOther(t *testing.T) {
	if err := mapError("period", 9, "load", sql.ErrNoRows); !errors.Is(err, errdefs.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
	if err := mapError("period", 9, "load", errors.New("conn reset")); !errors.Is(err, errdefs.ErrStorage) {
		t.Fatalf("want storage, got %v", err)
	}
	if mapError("period", 9, "load", nil) != nil {
		t.Fatal("nil must stay nil")
	}
}

func TestConstraintField(t *testing.T) {
	cases := map[string]string{
		"users_email_key":                "email",
		"assignments_student_period_key": "student_period",
		"company_tutors_company_id_fkey": "company_id",
		"something_else":                 "something_else",
	}
	for in, want := range cases {
		if got := constraintField(in); got != want {
			t.Errorf("constraintField(%q) = %q, want %q", in, got, want)
		}
	}
}
