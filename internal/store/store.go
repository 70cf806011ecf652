// Package store defines the storage collaborator consumed by the services.
// Entities reference each other by int64 id; relationships are looked up
// through the repos, never held as live pointers.
package store

import (
	"context"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
)

// Repo is a table of T keyed by id.
//
// Load returns an *errdefs.NotFoundError for a missing id. Save inserts when
// the id is zero (assigning it) and updates otherwise. FindAll returns rows in
// storage iteration order; a nil predicate matches everything.
type Repo[T any] interface {
	Load(ctx context.Context, id int64) (*T, error)
	Save(ctx context.Context, v *T) error
	Delete(ctx context.Context, id int64) error
	FindAll(ctx context.Context, pred func(*T) bool) ([]T, error)
	ExistsWhere(ctx context.Context, pred func(*T) bool) (bool, error)
}

type Store interface {
	Users() Repo[models.User]
	Students() Repo[models.Student]
	Companies() Repo[models.Company]
	Tutors() Repo[models.CompanyTutor]
	Years() Repo[models.AcademicYear]
	Periods() Repo[models.Period]
	Assignments() Repo[models.Assignment]
	Documents() Repo[models.Document]

	// RunAtomic runs fn as one unit: every write made through tx commits, or
	// none does. Calling RunAtomic on tx joins the running unit.
	RunAtomic(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

// Pinger is implemented by stores backed by a server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// All matches every row.
func All[T any](*T) bool { return true }
