package db

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Detail looks like: Key (tax_id)=(B12345678) already exists.
// Expression indexes report the expression: Key (lower(email))=(a@b.es).
var detailKey = regexp.MustCompile(`^Key \((.+?)\)=\((.*)\)`)

// pgError pulls code, constraint and detail from either driver's error type.
func pgError(err error) (code, constraint, detail string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, pgErr.Detail, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, pqErr.Detail, true
	}
	return "", "", "", false
}

func IsUniqueViolation(err error) bool {
	code, _, _, ok := pgError(err)
	return ok && code == codeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	code, _, _, ok := pgError(err)
	return ok && code == codeForeignKeyViolation
}

// mapError turns driver errors into the errdefs kinds.
func mapError(entity string, id int64, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errdefs.NotFound(entity, id)
	}
	code, constraint, detail, ok := pgError(err)
	if ok {
		switch code {
		case codeUniqueViolation:
			field, value := constraintField(constraint), ""
			if m := detailKey.FindStringSubmatch(detail); m != nil {
				field, value = strings.TrimSuffix(strings.TrimPrefix(m[1], "lower("), ")"), m[2]
			}
			return errdefs.Duplicate(field, value)
		case codeForeignKeyViolation:
			return errdefs.Referential(entity, constraintField(constraint))
		}
	}
	return errdefs.Storage(op+" "+entity, err)
}

// constraintField strips the table prefix and the _key/_fkey suffix.
func constraintField(name string) string {
	for _, suffix := range []string{"_fkey", "_key"} {
		name = strings.TrimSuffix(name, suffix)
	}
	for _, table := range []string{"company_tutors_", "academic_years_", "assignments_", "companies_", "documents_", "students_", "periods_", "users_"} {
		if strings.HasPrefix(name, table) {
			return strings.TrimPrefix(name, table)
		}
	}
	return name
}
