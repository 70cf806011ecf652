package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/validate"
)

func (s *Service) Company(ctx context.Context, id int64) (*models.Company, error) {
	return s.store.Companies().Load(ctx, id)
}

func (s *Service) CreateCompany(ctx context.Context, c *models.Company) error {
	c.ID = 0
	return s.saveCompany(ctx, "company created", c)
}

func (s *Service) UpdateCompany(ctx context.Context, c *models.Company) error {
	return s.saveCompany(ctx, "company updated", c)
}

func (s *Service) saveCompany(ctx context.Context, op string, c *models.Company) error {
	c.TaxID = validate.NormalizeTaxID(c.TaxID)
	c.Email = validate.NormalizeEmail(c.Email)
	if err := validate.Company(c); err != nil {
		return err
	}
	err := s.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		if c.ID != 0 {
			if _, err := tx.Companies().Load(ctx, c.ID); err != nil {
				return err
			}
		}
		if err := validate.ValidateCompanyUniqueness(ctx, tx, c.TaxID, c.ID); err != nil {
			return err
		}
		if err := validate.ValidateCompanyEmail(ctx, tx, c.Email, c.ID); err != nil {
			return err
		}
		return tx.Companies().Save(ctx, c)
	})
	return s.logged(op, err, zap.Int64("company_id", c.ID), zap.String("tax_id", c.TaxID))
}

// DeleteCompany refuses while any assignment references the company and
// otherwise removes its tutors with it.
func (s *Service) DeleteCompany(ctx context.Context, id int64) error {
	err := s.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		if _, err := tx.Companies().Load(ctx, id); err != nil {
			return err
		}
		used, err := s.hasAssignments(ctx, tx, func(a *models.Assignment) bool { return a.CompanyID == id })
		if err != nil {
			return err
		}
		if used {
			return s.blocked("company", id, "assignments")
		}
		tutors, err := tx.Tutors().FindAll(ctx, func(t *models.CompanyTutor) bool { return t.CompanyID == id })
		if err != nil {
			return err
		}
		for _, t := range tutors {
			if err := tx.Tutors().Delete(ctx, t.ID); err != nil {
				return err
			}
		}
		return tx.Companies().Delete(ctx, id)
	})
	return s.logged("company deleted", err, zap.Int64("company_id", id))
}
