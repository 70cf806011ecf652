package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/validate"
)

func (s *Service) Period(ctx context.Context, id int64) (*models.Period, error) {
	return s.store.Periods().Load(ctx, id)
}

func (s *Service) CreatePeriod(ctx context.Context, p *models.Period) error {
	p.ID = 0
	return s.savePeriod(ctx, "period created", p)
}

// UpdatePeriod never touches the snapshots already copied into assignments.
func (s *Service) UpdatePeriod(ctx context.Context, p *models.Period) error {
	return s.savePeriod(ctx, "period updated", p)
}

func (s *Service) savePeriod(ctx context.Context, op string, p *models.Period) error {
	p.Name = strings.TrimSpace(p.Name)
	if err := validate.Period(p); err != nil {
		return err
	}
	err := s.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		if _, err := tx.Years().Load(ctx, p.AcademicYearID); err != nil {
			return err
		}
		if p.ID != 0 {
			if _, err := tx.Periods().Load(ctx, p.ID); err != nil {
				return err
			}
		}
		return tx.Periods().Save(ctx, p)
	})
	return s.logged(op, err, zap.Int64("period_id", p.ID), zap.Int64("year_id", p.AcademicYearID))
}

func (s *Service) DeletePeriod(ctx context.Context, id int64) error {
	err := s.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		if _, err := tx.Periods().Load(ctx, id); err != nil {
			return err
		}
		used, err := s.hasAssignments(ctx, tx, func(a *models.Assignment) bool { return a.PeriodID == id })
		if err != nil {
			return err
		}
		if used {
			return s.blocked("period", id, "assignments")
		}
		return tx.Periods().Delete(ctx, id)
	})
	return s.logged("period deleted", err, zap.Int64("period_id", id))
}
