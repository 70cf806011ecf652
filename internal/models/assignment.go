package models

import "time"

type AssignmentState string

const (
	AssignmentActive    AssignmentState = "ACTIVE"
	AssignmentFinalized AssignmentState = "FINALIZED"
	AssignmentCancelled AssignmentState = "CANCELLED"
)

func (s AssignmentState) Valid() bool {
	switch s {
	case AssignmentActive, AssignmentFinalized, AssignmentCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s AssignmentState) Terminal() bool {
	return s == AssignmentFinalized || s == AssignmentCancelled
}

// Assignment is one FCT placement. StartDate, EndDate and TotalHours are a
// snapshot of the period taken at creation.
type Assignment struct {
	ID             int64           `db:"id"`
	State          AssignmentState `db:"state"`
	StartDate      time.Time       `db:"start_date"`
	EndDate        time.Time       `db:"end_date"`
	TotalHours     *int            `db:"total_hours"`
	HoursCompleted int             `db:"hours_completed"`
	Notes          string          `db:"notes"`
	CreatedAt      time.Time       `db:"created_at"`
	ModifiedAt     time.Time       `db:"modified_at"`
	StudentID      int64           `db:"student_id"`
	CompanyID      int64           `db:"company_id"`
	TutorID        int64           `db:"tutor_id"`
	PeriodID       int64           `db:"period_id"`
	AcademicYearID int64           `db:"academic_year_id"`
}
