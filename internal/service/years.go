package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/metrics"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/validate"
)

func (s *Service) Year(ctx context.Context, id int64) (*models.AcademicYear, error) {
	return s.store.Years().Load(ctx, id)
}

// CreateYear stores y; when y is marked active the other years are
// deactivated in the same unit.
func (s *Service) CreateYear(ctx context.Context, y *models.AcademicYear) error {
	y.ID = 0
	return s.saveYear(ctx, "academic year created", y)
}

func (s *Service) UpdateYear(ctx context.Context, y *models.AcademicYear) error {
	return s.saveYear(ctx, "academic year updated", y)
}

func (s *Service) saveYear(ctx context.Context, op string, y *models.AcademicYear) error {
	if err := validate.YearName(y.Name); err != nil {
		return err
	}
	id, active := y.ID, y.IsActive
	err := s.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		if y.ID != 0 {
			if _, err := tx.Years().Load(ctx, y.ID); err != nil {
				return err
			}
		}
		if err := validate.ValidateYearNameUnique(ctx, tx, y.Name, y.ID); err != nil {
			return err
		}
		y.IsActive = false
		if err := tx.Years().Save(ctx, y); err != nil {
			return err
		}
		if active {
			if err := sweep(ctx, tx, y.ID); err != nil {
				return err
			}
			y.IsActive = true
		}
		return nil
	})
	if err != nil {
		// Nothing was committed; hand the caller back what it passed in.
		y.ID, y.IsActive = id, active
	}
	return s.logged(op, err, zap.Int64("year_id", y.ID), zap.String("name", y.Name))
}

// ActivateYear makes id the only active academic year. On failure no flag
// changes.
func (s *Service) ActivateYear(ctx context.Context, id int64) error {
	err := s.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		return sweep(ctx, tx, id)
	})
	result := "ok"
	if err != nil {
		result = "failed"
	}
	metrics.YearSweeps.WithLabelValues(result).Inc()
	return s.logged("academic year activated", err, zap.Int64("year_id", id))
}

// sweep deactivates every other year, then activates id. It must run inside
// a unit.
func sweep(ctx context.Context, tx store.Store, id int64) error {
	target, err := tx.Years().Load(ctx, id)
	if err != nil {
		return err
	}
	all, err := tx.Years().FindAll(ctx, func(y *models.AcademicYear) bool { return y.IsActive && y.ID != id })
	if err != nil {
		return err
	}
	for i := range all {
		all[i].IsActive = false
		if err := tx.Years().Save(ctx, &all[i]); err != nil {
			return err
		}
	}
	target.IsActive = true
	return tx.Years().Save(ctx, target)
}

// DeleteYear refuses while periods or assignments belong to the year.
func (s *Service) DeleteYear(ctx context.Context, id int64) error {
	err := s.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		if _, err := tx.Years().Load(ctx, id); err != nil {
			return err
		}
		periods, err := tx.Periods().ExistsWhere(ctx, func(p *models.Period) bool { return p.AcademicYearID == id })
		if err != nil {
			return err
		}
		if periods {
			return s.blocked("academic year", id, "periods")
		}
		used, err := s.hasAssignments(ctx, tx, func(a *models.Assignment) bool { return a.AcademicYearID == id })
		if err != nil {
			return err
		}
		if used {
			return s.blocked("academic year", id, "assignments")
		}
		return tx.Years().Delete(ctx, id)
	})
	return s.logged("academic year deleted", err, zap.Int64("year_id", id))
}
