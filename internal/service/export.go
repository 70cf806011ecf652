package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/export"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/query"
)

// ExportAssignments writes the rows matching f to an .xlsx in dir and returns
// its path. The file is named after the filtered year and state.
func (s *Service) ExportAssignments(ctx context.Context, dir string, f query.Filter) (string, error) {
	rows, err := s.AssignmentRows(ctx, f)
	if err != nil {
		return "", s.logged("export assignments", err)
	}
	year := ""
	if f.YearID != 0 {
		y, err := s.Year(ctx, f.YearID)
		if err != nil {
			return "", err
		}
		year = y.Name
	}
	path, err := export.SaveAssignments(dir, export.BuildAssignmentsFilename(year, string(f.State)), rows)
	if err != nil {
		s.log.Error("export assignments failed", zap.Error(err))
		return "", err
	}
	s.log.Info("assignments exported", zap.String("path", path), zap.Int("rows", len(rows)))
	return path, nil
}
