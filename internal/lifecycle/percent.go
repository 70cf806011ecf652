package lifecycle

import "github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"

// PercentComplete is 100*done/total, or 0 without a target. Not capped.
func PercentComplete(a *models.Assignment) float64 {
	if a == nil || a.TotalHours == nil || *a.TotalHours == 0 {
		return 0
	}
	return 100 * float64(a.HoursCompleted) / float64(*a.TotalHours)
}
