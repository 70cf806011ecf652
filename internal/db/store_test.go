//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/db"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/testutil/testdb"
)

type fixture struct {
	student models.Student
	company models.Company
	tutor   models.CompanyTutor
	year    models.AcademicYear
	period  models.Period
}

func seed(t *testing.T, ctx context.Context, s store.Store) fixture {
	t.Helper()
	var f fixture
	f.year = models.AcademicYear{Name: "2025-2026", IsActive: true}
	if err := s.Years().Save(ctx, &f.year); err != nil {
		t.Fatal(err)
	}
	hours := 370
	f.period = models.Period{
		AcademicYearID: f.year.ID, Name: "Ordinario 2º", Type: models.PeriodOrdinary,
		StartDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
		TotalHours: &hours,
	}
	if err := s.Periods().Save(ctx, &f.period); err != nil {
		t.Fatal(err)
	}
	f.company = models.Company{Name: "Tecnologías Málaga", TaxID: "B29000001", IsActive: true}
	if err := s.Companies().Save(ctx, &f.company); err != nil {
		t.Fatal(err)
	}
	f.tutor = models.CompanyTutor{CompanyID: f.company.ID, FirstName: "Lucía", LastName: "Pérez", IsActive: true}
	if err := s.Tutors().Save(ctx, &f.tutor); err != nil {
		t.Fatal(err)
	}
	f.student = models.Student{FirstName: "Adrián", LastName: "Iglesias", NationalID: "12345678Z", IsActive: true}
	if err := s.Students().Save(ctx, &f.student); err != nil {
		t.Fatal(err)
	}
	return f
}

func newAssignment(f fixture) models.Assignment {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return models.Assignment{
		State: models.AssignmentActive, StartDate: f.period.StartDate, EndDate: f.period.EndDate,
		TotalHours: f.period.TotalHours, CreatedAt: now, ModifiedAt: now,
		StudentID: f.student.ID, CompanyID: f.company.ID, TutorID: f.tutor.ID,
		PeriodID: f.period.ID, AcademicYearID: f.year.ID,
	}
}

func TestStore_RoundTripAndConstraints(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	s := db.NewStore(h.DB)
	if err := s.Ping(ctx); err != nil {
		t.Fatal(err)
	}
	f := seed(t, ctx, s)

	got, err := s.Periods().Load(ctx, f.period.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalHours == nil || *got.TotalHours != 370 || got.Type != models.PeriodOrdinary {
		t.Fatalf("period round trip: %#v", got)
	}

	dup := models.Company{Name: "Otra", TaxID: "B29000001", IsActive: true}
	err = s.Companies().Save(ctx, &dup)
	var de *errdefs.DuplicateError
	if !errors.As(err, &de) || de.Field != "tax_id" {
		t.Fatalf("want tax_id duplicate, got %v", err)
	}

	a := newAssignment(f)
	if err := s.Assignments().Save(ctx, &a); err != nil {
		t.Fatal(err)
	}
	again := newAssignment(f)
	if err := s.Assignments().Save(ctx, &again); !errors.Is(err, errdefs.ErrDuplicate) {
		t.Fatalf("partial unique index must reject a second live assignment, got %v", err)
	}

	a.State = models.AssignmentCancelled
	if err := s.Assignments().Save(ctx, &a); err != nil {
		t.Fatal(err)
	}
	if err := s.Assignments().Save(ctx, &again); err != nil {
		t.Fatalf("cancelled assignment must free the pair: %v", err)
	}

	if err := s.Companies().Delete(ctx, f.company.ID); !errors.Is(err, errdefs.ErrReferentialIntegrity) {
		t.Fatalf("want referential error, got %v", err)
	}
	if _, err := s.Students().Load(ctx, 9999); !errors.Is(err, errdefs.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestStore_RunAtomicRollsBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	s := db.NewStore(h.DB)
	boom := errors.New("boom")
	err = s.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		y := models.AcademicYear{Name: "2026-2027"}
		if err := tx.Years().Save(ctx, &y); err != nil {
			return err
		}
		return tx.RunAtomic(ctx, func(ctx context.Context, inner store.Store) error {
			return boom
		})
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	years, err := s.Years().FindAll(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(years) != 0 {
		t.Fatalf("rollback left %d years", len(years))
	}
}
