package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/validate"
)

func (s *Service) Student(ctx context.Context, id int64) (*models.Student, error) {
	return s.store.Students().Load(ctx, id)
}

func (s *Service) CreateStudent(ctx context.Context, st *models.Student) error {
	st.ID = 0
	return s.saveStudent(ctx, "student created", st)
}

func (s *Service) UpdateStudent(ctx context.Context, st *models.Student) error {
	return s.saveStudent(ctx, "student updated", st)
}

func (s *Service) saveStudent(ctx context.Context, op string, st *models.Student) error {
	st.Email = validate.NormalizeEmail(st.Email)
	if err := validate.Student(st); err != nil {
		return err
	}
	err := s.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		if st.ID != 0 {
			if _, err := tx.Students().Load(ctx, st.ID); err != nil {
				return err
			}
		}
		if err := validate.ValidateStudentUniqueness(ctx, tx, st); err != nil {
			return err
		}
		return tx.Students().Save(ctx, st)
	})
	return s.logged(op, err, zap.Int64("student_id", st.ID))
}

// DeleteStudent refuses while the student has assignments; deactivate
// instead.
func (s *Service) DeleteStudent(ctx context.Context, id int64) error {
	err := s.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		if _, err := tx.Students().Load(ctx, id); err != nil {
			return err
		}
		used, err := s.hasAssignments(ctx, tx, func(a *models.Assignment) bool { return a.StudentID == id })
		if err != nil {
			return err
		}
		if used {
			return s.blocked("student", id, "assignments")
		}
		return tx.Students().Delete(ctx, id)
	})
	return s.logged("student deleted", err, zap.Int64("student_id", id))
}

// StudentTeacherTutor follows the weak teacher-tutor reference. It returns
// nil without a reference and a NotFoundError when the user is gone.
func (s *Service) StudentTeacherTutor(ctx context.Context, studentID int64) (*models.User, error) {
	st, err := s.store.Students().Load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if st.TeacherTutorID == nil {
		return nil, nil
	}
	return s.store.Users().Load(ctx, *st.TeacherTutorID)
}
