// Package db is the PostgreSQL implementation of store.Store on top of
// database/sql. Uniqueness and foreign keys are also enforced by the schema,
// so concurrent processes cannot slip past the service checks.
package db

import (
	"context"
	"database/sql"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
)

type Store struct {
	db *sql.DB
	q  querier
	tx *sql.Tx
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Users() store.Repo[models.User] {
	return pgRepo[models.User]{s.q, usersTable}
}

func (s *Store) Students() store.Repo[models.Student] {
	return pgRepo[models.Student]{s.q, studentsTable}
}

func (s *Store) Companies() store.Repo[models.Company] {
	return pgRepo[models.Company]{s.q, companiesTable}
}

func (s *Store) Tutors() store.Repo[models.CompanyTutor] {
	return pgRepo[models.CompanyTutor]{s.q, tutorsTable}
}

func (s *Store) Years() store.Repo[models.AcademicYear] {
	return pgRepo[models.AcademicYear]{s.q, yearsTable}
}

func (s *Store) Periods() store.Repo[models.Period] {
	return pgRepo[models.Period]{s.q, periodsTable}
}

func (s *Store) Assignments() store.Repo[models.Assignment] {
	return pgRepo[models.Assignment]{s.q, assignmentsTable}
}

func (s *Store) Documents() store.Repo[models.Document] {
	return pgRepo[models.Document]{s.q, documentsTable}
}

// RunAtomic wraps fn in a READ COMMITTED transaction. Inside a transaction
// it just calls fn.
func (s *Store) RunAtomic(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	if s.tx != nil {
		return fn(ctx, s)
	}
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return errdefs.Storage("begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(ctx, &Store{db: s.db, q: tx, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errdefs.Storage("commit", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errdefs.Storage("ping", err)
	}
	return nil
}
