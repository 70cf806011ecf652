package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/ctxutil"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// tableSpec maps T onto one table. columns excludes id; values and fields
// must follow the same order.
type tableSpec[T any] struct {
	entity  string
	table   string
	columns []string
	id      func(*T) int64
	setID   func(*T, int64)
	values  func(*T) []any
	fields  func(*T) []any
}

func (s *tableSpec[T]) selectList() string {
	return "id, " + strings.Join(s.columns, ", ")
}

func (s *tableSpec[T]) scan(row scanner) (T, error) {
	var v T
	var id int64
	dest := append([]any{&id}, s.fields(&v)...)
	if err := row.Scan(dest...); err != nil {
		return v, err
	}
	s.setID(&v, id)
	return v, nil
}

// pgRepo implements store.Repo[T]. Predicates run in Go over the full table.
type pgRepo[T any] struct {
	q    querier
	spec *tableSpec[T]
}

func (r pgRepo[T]) Load(ctx context.Context, id int64) (*T, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	q := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.spec.selectList(), r.spec.table)
	v, err := r.spec.scan(r.q.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, mapError(r.spec.entity, id, "load", err)
	}
	return &v, nil
}

func (r pgRepo[T]) Save(ctx context.Context, v *T) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	id := r.spec.id(v)
	args := r.spec.values(v)
	if id == 0 {
		marks := make([]string, len(args))
		for i := range args {
			marks[i] = fmt.Sprintf("$%d", i+1)
		}
		q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
			r.spec.table, strings.Join(r.spec.columns, ", "), strings.Join(marks, ", "))
		var newID int64
		if err := r.q.QueryRowContext(ctx, q, args...).Scan(&newID); err != nil {
			return mapError(r.spec.entity, 0, "insert", err)
		}
		r.spec.setID(v, newID)
		return nil
	}

	sets := make([]string, len(r.spec.columns))
	for i, c := range r.spec.columns {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", r.spec.table, strings.Join(sets, ", "), len(args)+1)
	res, err := r.q.ExecContext(ctx, q, append(args, id)...)
	if err != nil {
		return mapError(r.spec.entity, id, "update", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errdefs.NotFound(r.spec.entity, id)
	}
	return nil
}

func (r pgRepo[T]) Delete(ctx context.Context, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.q.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.spec.table), id)
	if err != nil {
		return mapError(r.spec.entity, id, "delete", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errdefs.NotFound(r.spec.entity, id)
	}
	return nil
}

func (r pgRepo[T]) FindAll(ctx context.Context, pred func(*T) bool) ([]T, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", r.spec.selectList(), r.spec.table)
	rows, err := r.q.QueryContext(ctx, q)
	if err != nil {
		return nil, mapError(r.spec.entity, 0, "find", err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := r.spec.scan(rows)
		if err != nil {
			return nil, mapError(r.spec.entity, 0, "scan", err)
		}
		if pred == nil || pred(&v) {
			out = append(out, v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(r.spec.entity, 0, "find", err)
	}
	return out, nil
}

func (r pgRepo[T]) ExistsWhere(ctx context.Context, pred func(*T) bool) (bool, error) {
	all, err := r.FindAll(ctx, pred)
	if err != nil {
		return false, err
	}
	return len(all) > 0, nil
}
