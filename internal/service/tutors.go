package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/validate"
)

func (s *Service) Tutor(ctx context.Context, id int64) (*models.CompanyTutor, error) {
	return s.store.Tutors().Load(ctx, id)
}

func (s *Service) CreateTutor(ctx context.Context, t *models.CompanyTutor) error {
	t.ID = 0
	return s.saveTutor(ctx, "tutor created", t)
}

// UpdateTutor refuses to deactivate a tutor with an ACTIVE assignment, and to
// move a tutor with any assignment to another company.
func (s *Service) UpdateTutor(ctx context.Context, t *models.CompanyTutor) error {
	return s.saveTutor(ctx, "tutor updated", t)
}

func (s *Service) saveTutor(ctx context.Context, op string, t *models.CompanyTutor) error {
	if err := validate.Tutor(t); err != nil {
		return err
	}
	err := s.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		if _, err := tx.Companies().Load(ctx, t.CompanyID); err != nil {
			return err
		}
		if t.ID != 0 {
			prev, err := tx.Tutors().Load(ctx, t.ID)
			if err != nil {
				return err
			}
			if prev.CompanyID != t.CompanyID {
				used, err := s.hasAssignments(ctx, tx, func(a *models.Assignment) bool { return a.TutorID == t.ID })
				if err != nil {
					return err
				}
				if used {
					return errdefs.Referential("tutor", "assignments with the current company")
				}
			}
			if prev.IsActive && !t.IsActive {
				active, err := s.hasAssignments(ctx, tx, func(a *models.Assignment) bool {
					return a.TutorID == t.ID && a.State == models.AssignmentActive
				})
				if err != nil {
					return err
				}
				if active {
					return errdefs.Referential("tutor", "active assignments")
				}
			}
		}
		if err := validate.ValidateTutorUniqueness(ctx, tx, t); err != nil {
			return err
		}
		return tx.Tutors().Save(ctx, t)
	})
	return s.logged(op, err, zap.Int64("tutor_id", t.ID), zap.Int64("company_id", t.CompanyID))
}

func (s *Service) DeleteTutor(ctx context.Context, id int64) error {
	err := s.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		if _, err := tx.Tutors().Load(ctx, id); err != nil {
			return err
		}
		used, err := s.hasAssignments(ctx, tx, func(a *models.Assignment) bool { return a.TutorID == id })
		if err != nil {
			return err
		}
		if used {
			return s.blocked("tutor", id, "assignments")
		}
		return tx.Tutors().Delete(ctx, id)
	})
	return s.logged("tutor deleted", err, zap.Int64("tutor_id", id))
}
