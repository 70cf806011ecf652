package models

import "time"

type PeriodType string

const (
	PeriodOrdinary      PeriodType = "ORDINARY"
	PeriodExtraordinary PeriodType = "EXTRAORDINARY"
)

func (t PeriodType) Valid() bool {
	return t == PeriodOrdinary || t == PeriodExtraordinary
}

// Period is a dated hours template inside an academic year. Its dates and
// hours are copied into every assignment created against it.
type Period struct {
	ID             int64      `db:"id"`
	AcademicYearID int64      `db:"academic_year_id"`
	Name           string     `db:"name"`
	CohortYear     int        `db:"cohort_year"`
	Type           PeriodType `db:"type"`
	StartDate      time.Time  `db:"start_date"`
	EndDate        time.Time  `db:"end_date"`
	TotalHours     *int       `db:"total_hours"`
}
