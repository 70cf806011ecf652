// Package lifecycle creates assignments and moves them through
// ACTIVE -> FINALIZED | CANCELLED. Every operation is one atomic unit against
// the store and holds a per-key lock for its duration.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/ctxutil"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/keylock"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/metrics"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/observability"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/validate"
)

// CancellationPrefix starts the line Cancel appends to the notes.
const CancellationPrefix = "CANCELLATION: "

type Engine struct {
	store store.Store
	log   *zap.Logger
	now   func() time.Time
	locks *keylock.Locker[string]
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option { return func(e *Engine) { e.log = l } }

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store: s,
		log:   zap.NewNop(),
		now:   time.Now,
		locks: keylock.New[string](),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

type CreateRequest struct {
	StudentID int64
	CompanyID int64
	TutorID   int64
	PeriodID  int64
	Notes     string
}

// Revision lists the fields an ACTIVE assignment may still change. Nil means
// keep. Student and period are fixed once the assignment exists.
type Revision struct {
	CompanyID      *int64
	TutorID        *int64
	HoursCompleted *int
	Notes          *string
}

func studentKey(id int64) string    { return fmt.Sprintf("student:%d", id) }
func assignmentKey(id int64) string { return fmt.Sprintf("assignment:%d", id) }

func (e *Engine) Create(ctx context.Context, req CreateRequest) (*models.Assignment, error) {
	for _, ref := range []struct {
		field string
		id    int64
	}{{"student", req.StudentID}, {"company", req.CompanyID}, {"tutor", req.TutorID}, {"period", req.PeriodID}} {
		if ref.id <= 0 {
			return nil, e.done(ctx, "create", 0, errdefs.Validation(ref.field, "is required"))
		}
	}

	unlock := e.locks.Lock(studentKey(req.StudentID))
	defer unlock()

	var out *models.Assignment
	err := e.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		student, err := loadRef(ctx, tx.Students(), "student", req.StudentID)
		if err != nil {
			return err
		}
		company, err := loadRef(ctx, tx.Companies(), "company", req.CompanyID)
		if err != nil {
			return err
		}
		tutor, err := loadRef(ctx, tx.Tutors(), "tutor", req.TutorID)
		if err != nil {
			return err
		}
		period, err := loadRef(ctx, tx.Periods(), "period", req.PeriodID)
		if err != nil {
			return err
		}

		switch {
		case !student.IsActive:
			return errdefs.Validation("student", "is not active")
		case !company.IsActive:
			return errdefs.Validation("company", "is not active")
		case !tutor.IsActive:
			return errdefs.Validation("tutor", "is not active")
		}
		if err := validate.ValidateTutorBelongsToCompany(tutor, company.ID); err != nil {
			return err
		}
		if err := validate.CheckAssignmentUnique(ctx, tx, student.ID, period.ID); err != nil {
			return err
		}

		now := e.now()
		a := &models.Assignment{
			State:          models.AssignmentActive,
			StartDate:      period.StartDate,
			EndDate:        period.EndDate,
			TotalHours:     copyInt(period.TotalHours),
			Notes:          strings.TrimSpace(req.Notes),
			CreatedAt:      now,
			ModifiedAt:     now,
			StudentID:      student.ID,
			CompanyID:      company.ID,
			TutorID:        tutor.ID,
			PeriodID:       period.ID,
			AcademicYearID: period.AcademicYearID,
		}
		if err := tx.Assignments().Save(ctx, a); err != nil {
			return errdefs.Storage("save assignment", err)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, e.done(ctx, "create", 0, err,
			zap.Int64("student_id", req.StudentID), zap.Int64("period_id", req.PeriodID))
	}
	e.done(ctx, "create", out.ID, nil,
		zap.Int64("student_id", out.StudentID), zap.Int64("period_id", out.PeriodID))
	return out, nil
}

func (e *Engine) UpdateProgress(ctx context.Context, id int64, hours int) (*models.Assignment, error) {
	return e.mutate(ctx, "update progress", id, func(ctx context.Context, tx store.Store, a *models.Assignment) error {
		return setHours(a, hours)
	})
}

func (e *Engine) Finalize(ctx context.Context, id int64) (*models.Assignment, error) {
	return e.mutate(ctx, "finalize", id, func(ctx context.Context, tx store.Store, a *models.Assignment) error {
		a.State = models.AssignmentFinalized
		return nil
	})
}

// Cancel keeps the existing notes and appends the reason on its own line.
func (e *Engine) Cancel(ctx context.Context, id int64, reason string) (*models.Assignment, error) {
	return e.mutate(ctx, "cancel", id, func(ctx context.Context, tx store.Store, a *models.Assignment) error {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return errdefs.Validation("reason", "is required")
		}
		a.State = models.AssignmentCancelled
		a.Notes = appendLine(a.Notes, CancellationPrefix+reason)
		return nil
	})
}

func (e *Engine) AppendNote(ctx context.Context, id int64, note string) (*models.Assignment, error) {
	return e.mutate(ctx, "edit", id, func(ctx context.Context, tx store.Store, a *models.Assignment) error {
		note = strings.TrimSpace(note)
		if note == "" {
			return errdefs.Validation("note", "is required")
		}
		a.Notes = appendLine(a.Notes, note)
		return nil
	})
}

// Revise changes company, tutor, hours or notes of an ACTIVE assignment. The
// resulting tutor must work for the resulting company.
func (e *Engine) Revise(ctx context.Context, id int64, r Revision) (*models.Assignment, error) {
	return e.mutate(ctx, "edit", id, func(ctx context.Context, tx store.Store, a *models.Assignment) error {
		companyID, tutorID := a.CompanyID, a.TutorID
		if r.CompanyID != nil {
			companyID = *r.CompanyID
		}
		if r.TutorID != nil {
			tutorID = *r.TutorID
		}
		if companyID != a.CompanyID {
			c, err := loadRef(ctx, tx.Companies(), "company", companyID)
			if err != nil {
				return err
			}
			if !c.IsActive {
				return errdefs.Validation("company", "is not active")
			}
		}
		if companyID != a.CompanyID || tutorID != a.TutorID {
			t, err := loadRef(ctx, tx.Tutors(), "tutor", tutorID)
			if err != nil {
				return err
			}
			if tutorID != a.TutorID && !t.IsActive {
				return errdefs.Validation("tutor", "is not active")
			}
			if err := validate.ValidateTutorBelongsToCompany(t, companyID); err != nil {
				return err
			}
		}
		if r.HoursCompleted != nil {
			if err := setHours(a, *r.HoursCompleted); err != nil {
				return err
			}
		}
		if r.Notes != nil {
			a.Notes = strings.TrimSpace(*r.Notes)
		}
		a.CompanyID, a.TutorID = companyID, tutorID
		return nil
	})
}

// Delete removes the assignment together with its documents.
func (e *Engine) Delete(ctx context.Context, id int64) error {
	unlock := e.locks.Lock(assignmentKey(id))
	defer unlock()

	err := e.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		if _, err := tx.Assignments().Load(ctx, id); err != nil {
			return err
		}
		docs, err := tx.Documents().FindAll(ctx, func(d *models.Document) bool { return d.AssignmentID == id })
		if err != nil {
			return err
		}
		for _, d := range docs {
			if err := tx.Documents().Delete(ctx, d.ID); err != nil {
				return errdefs.Storage("delete document", err)
			}
		}
		return errdefs.Storage("delete assignment", tx.Assignments().Delete(ctx, id))
	})
	return e.done(ctx, "delete", id, err)
}

func (e *Engine) Get(ctx context.Context, id int64) (*models.Assignment, error) {
	return e.store.Assignments().Load(ctx, id)
}

// mutate loads the assignment, refuses terminal states, applies fn and saves
// with a fresh modified-at, all inside one unit.
func (e *Engine) mutate(ctx context.Context, op string, id int64,
	fn func(ctx context.Context, tx store.Store, a *models.Assignment) error) (*models.Assignment, error) {
	unlock := e.locks.Lock(assignmentKey(id))
	defer unlock()

	var out *models.Assignment
	err := e.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		a, err := tx.Assignments().Load(ctx, id)
		if err != nil {
			return err
		}
		if a.State.Terminal() {
			return errdefs.InvalidState("assignment", string(a.State), op)
		}
		if err := fn(ctx, tx, a); err != nil {
			return err
		}
		a.ModifiedAt = e.now()
		if err := tx.Assignments().Save(ctx, a); err != nil {
			return errdefs.Storage("save assignment", err)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, e.done(ctx, op, id, err)
	}
	e.done(ctx, op, id, nil, zap.String("state", string(out.State)), zap.Int("hours_completed", out.HoursCompleted))
	return out, nil
}

// done records the outcome of op and returns err unchanged.
func (e *Engine) done(ctx context.Context, op string, id int64, err error, fields ...zap.Field) error {
	kind := errdefs.Kind(err)
	metrics.Transitions.WithLabelValues(op, metrics.Outcome(kind)).Inc()

	fields = append(fields, zap.String("op", op), zap.Int64("assignment_id", id))
	if caller, ok := ctxutil.Caller(ctx); ok {
		fields = append(fields, zap.String("caller", caller))
	}
	switch kind {
	case "none":
		e.log.Info("assignment "+op, fields...)
	case "storage", "internal":
		observability.CaptureOp(op, err)
		e.log.Error("assignment "+op+" failed", append(fields, zap.Error(err))...)
	default:
		e.log.Warn("assignment "+op+" rejected", append(fields, zap.String("kind", kind), zap.Error(err))...)
	}
	return err
}

// setHours records progress. Hours never go below zero or below what was
// already recorded.
func setHours(a *models.Assignment, hours int) error {
	if err := validate.Hours(hours); err != nil {
		return err
	}
	if hours < a.HoursCompleted {
		return errdefs.Validation("hours_completed", fmt.Sprintf("must not decrease (currently %d)", a.HoursCompleted))
	}
	a.HoursCompleted = hours
	return nil
}

// loadRef turns a missing reference into a validation failure on field.
func loadRef[T any](ctx context.Context, r store.Repo[T], field string, id int64) (*T, error) {
	v, err := r.Load(ctx, id)
	if err != nil {
		if errdefs.Kind(err) == "not_found" {
			return nil, errdefs.Validation(field, fmt.Sprintf("%d does not exist", id))
		}
		return nil, err
	}
	return v, nil
}

func appendLine(notes, line string) string {
	if strings.TrimSpace(notes) == "" {
		return line
	}
	return notes + "\n" + line
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
