package jobs

import (
	"context"
	"time"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/metrics"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
)

// AssignmentGauges keeps the ACTIVE and overdue gauges in line with the store.
// Overdue means still ACTIVE after its end date.
func AssignmentGauges(s store.Store, now func() time.Time) Job {
	return func(ctx context.Context) error {
		active, err := s.Assignments().FindAll(ctx, func(a *models.Assignment) bool {
			return a.State == models.AssignmentActive
		})
		if err != nil {
			return err
		}
		today := now()
		overdue := 0
		for _, a := range active {
			if !a.EndDate.IsZero() && a.EndDate.Before(today) {
				overdue++
			}
		}
		metrics.ActiveAssignments.Set(float64(len(active)))
		metrics.OverdueAssignments.Set(float64(overdue))
		return nil
	}
}
