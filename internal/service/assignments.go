package service

import (
	"context"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/lifecycle"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/query"
)

func (s *Service) CreateAssignment(ctx context.Context, req lifecycle.CreateRequest) (*models.Assignment, error) {
	return s.engine.Create(ctx, req)
}

func (s *Service) UpdateProgress(ctx context.Context, id int64, hours int) (*models.Assignment, error) {
	return s.engine.UpdateProgress(ctx, id, hours)
}

func (s *Service) Finalize(ctx context.Context, id int64) (*models.Assignment, error) {
	return s.engine.Finalize(ctx, id)
}

func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*models.Assignment, error) {
	return s.engine.Cancel(ctx, id, reason)
}

func (s *Service) ReviseAssignment(ctx context.Context, id int64, r lifecycle.Revision) (*models.Assignment, error) {
	return s.engine.Revise(ctx, id, r)
}

func (s *Service) AppendNote(ctx context.Context, id int64, note string) (*models.Assignment, error) {
	return s.engine.AppendNote(ctx, id, note)
}

func (s *Service) DeleteAssignment(ctx context.Context, id int64) error {
	return s.engine.Delete(ctx, id)
}

func (s *Service) Assignment(ctx context.Context, id int64) (*models.Assignment, error) {
	return s.engine.Get(ctx, id)
}

func (s *Service) PercentComplete(a *models.Assignment) float64 {
	return lifecycle.PercentComplete(a)
}

// AssignmentRows lists assignments with names resolved and percent filled.
func (s *Service) AssignmentRows(ctx context.Context, f query.Filter) ([]query.AssignmentRow, error) {
	return s.Rows(ctx, f, lifecycle.PercentComplete)
}
