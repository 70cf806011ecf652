// Package memstore is the in-process arena implementation of store.Store.
// Atomic units run on a copy of the state under a single writer lock and
// replace the committed state only when they succeed.
package memstore

import (
	"context"
	"sync"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
)

type state struct {
	users       *table[models.User]
	students    *table[models.Student]
	companies   *table[models.Company]
	tutors      *table[models.CompanyTutor]
	years       *table[models.AcademicYear]
	periods     *table[models.Period]
	assignments *table[models.Assignment]
	documents   *table[models.Document]
}

func newState() *state {
	return &state{
		users: newTable("user",
			func(v *models.User) int64 { return v.ID }, func(v *models.User, id int64) { v.ID = id },
			func(v models.User) models.User { v.LastLoginAt = clonePtr(v.LastLoginAt); return v }),
		students: newTable("student",
			func(v *models.Student) int64 { return v.ID }, func(v *models.Student, id int64) { v.ID = id },
			dupStudent),
		companies: newTable("company",
			func(v *models.Company) int64 { return v.ID }, func(v *models.Company, id int64) { v.ID = id },
			nil),
		tutors: newTable("tutor",
			func(v *models.CompanyTutor) int64 { return v.ID }, func(v *models.CompanyTutor, id int64) { v.ID = id },
			func(v models.CompanyTutor) models.CompanyTutor { v.UserID = clonePtr(v.UserID); return v }),
		years: newTable("academic year",
			func(v *models.AcademicYear) int64 { return v.ID }, func(v *models.AcademicYear, id int64) { v.ID = id },
			nil),
		periods: newTable("period",
			func(v *models.Period) int64 { return v.ID }, func(v *models.Period, id int64) { v.ID = id },
			func(v models.Period) models.Period { v.TotalHours = clonePtr(v.TotalHours); return v }),
		assignments: newTable("assignment",
			func(v *models.Assignment) int64 { return v.ID }, func(v *models.Assignment, id int64) { v.ID = id },
			func(v models.Assignment) models.Assignment { v.TotalHours = clonePtr(v.TotalHours); return v }),
		documents: newTable("document",
			func(v *models.Document) int64 { return v.ID }, func(v *models.Document, id int64) { v.ID = id },
			func(v models.Document) models.Document { v.AuthorID = clonePtr(v.AuthorID); return v }),
	}
}

func dupStudent(v models.Student) models.Student {
	v.BirthDate = clonePtr(v.BirthDate)
	v.CourseYear = clonePtr(v.CourseYear)
	v.UserID = clonePtr(v.UserID)
	v.TeacherTutorID = clonePtr(v.TeacherTutorID)
	return v
}

func (s *state) clone() *state {
	return &state{
		users:       s.users.clone(),
		students:    s.students.clone(),
		companies:   s.companies.clone(),
		tutors:      s.tutors.clone(),
		years:       s.years.clone(),
		periods:     s.periods.clone(),
		assignments: s.assignments.clone(),
		documents:   s.documents.clone(),
	}
}

// FaultFunc lets tests make a write fail. Returning nil lets it through.
type FaultFunc func(op, entity string) error

type Option func(*Store)

func WithFault(f FaultFunc) Option {
	return func(s *Store) { s.fault = f }
}

type Store struct {
	mu    sync.Mutex
	state *state
	fault FaultFunc
}

func New(opts ...Option) *Store {
	s := &Store{state: newState()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) lock() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) injected(op, entity string) error {
	if s.fault == nil {
		return nil
	}
	if err := s.fault(op, entity); err != nil {
		return errdefs.Storage(op+" "+entity, err)
	}
	return nil
}

func (s *Store) Users() store.Repo[models.User] {
	return repo[models.User]{s.lock, func() *table[models.User] { return s.state.users }, s.injected}
}

func (s *Store) Students() store.Repo[models.Student] {
	return repo[models.Student]{s.lock, func() *table[models.Student] { return s.state.students }, s.injected}
}

func (s *Store) Companies() store.Repo[models.Company] {
	return repo[models.Company]{s.lock, func() *table[models.Company] { return s.state.companies }, s.injected}
}

func (s *Store) Tutors() store.Repo[models.CompanyTutor] {
	return repo[models.CompanyTutor]{s.lock, func() *table[models.CompanyTutor] { return s.state.tutors }, s.injected}
}

func (s *Store) Years() store.Repo[models.AcademicYear] {
	return repo[models.AcademicYear]{s.lock, func() *table[models.AcademicYear] { return s.state.years }, s.injected}
}

func (s *Store) Periods() store.Repo[models.Period] {
	return repo[models.Period]{s.lock, func() *table[models.Period] { return s.state.periods }, s.injected}
}

func (s *Store) Assignments() store.Repo[models.Assignment] {
	return repo[models.Assignment]{s.lock, func() *table[models.Assignment] { return s.state.assignments }, s.injected}
}

func (s *Store) Documents() store.Repo[models.Document] {
	return repo[models.Document]{s.lock, func() *table[models.Document] { return s.state.documents }, s.injected}
}

// RunAtomic holds the writer lock for the whole unit. fn must use tx, not s.
func (s *Store) RunAtomic(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return errdefs.Storage("begin", err)
	}
	work := s.state.clone()
	if err := fn(ctx, &txStore{state: work, fault: s.injected}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errdefs.Storage("commit", err)
	}
	s.state = work
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

type txStore struct {
	state *state
	fault func(op, entity string) error
}

func noLock() func() { return func() {} }

func (t *txStore) Users() store.Repo[models.User] {
	return repo[models.User]{noLock, func() *table[models.User] { return t.state.users }, t.fault}
}

func (t *txStore) Students() store.Repo[models.Student] {
	return repo[models.Student]{noLock, func() *table[models.Student] { return t.state.students }, t.fault}
}

func (t *txStore) Companies() store.Repo[models.Company] {
	return repo[models.Company]{noLock, func() *table[models.Company] { return t.state.companies }, t.fault}
}

func (t *txStore) Tutors() store.Repo[models.CompanyTutor] {
	return repo[models.CompanyTutor]{noLock, func() *table[models.CompanyTutor] { return t.state.tutors }, t.fault}
}

func (t *txStore) Years() store.Repo[models.AcademicYear] {
	return repo[models.AcademicYear]{noLock, func() *table[models.AcademicYear] { return t.state.years }, t.fault}
}

func (t *txStore) Periods() store.Repo[models.Period] {
	return repo[models.Period]{noLock, func() *table[models.Period] { return t.state.periods }, t.fault}
}

func (t *txStore) Assignments() store.Repo[models.Assignment] {
	return repo[models.Assignment]{noLock, func() *table[models.Assignment] { return t.state.assignments }, t.fault}
}

func (t *txStore) Documents() store.Repo[models.Document] {
	return repo[models.Document]{noLock, func() *table[models.Document] { return t.state.documents }, t.fault}
}

func (t *txStore) RunAtomic(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	return fn(ctx, t)
}
