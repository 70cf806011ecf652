package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
)

// blocksPair reports whether a blocks a new assignment for the same
// (student, period). Cancelled assignments never do.
func blocksPair(a *models.Assignment, studentID, periodID int64) bool {
	return a.StudentID == studentID && a.PeriodID == periodID && a.State != models.AssignmentCancelled
}

// CanCreateAssignment reports whether the student has no ACTIVE or FINALIZED
// assignment in the period.
func CanCreateAssignment(ctx context.Context, s store.Store, studentID, periodID int64) (bool, error) {
	taken, err := s.Assignments().ExistsWhere(ctx, func(a *models.Assignment) bool {
		return blocksPair(a, studentID, periodID)
	})
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// CheckAssignmentUnique is CanCreateAssignment as an error.
func CheckAssignmentUnique(ctx context.Context, s store.Store, studentID, periodID int64) error {
	ok, err := CanCreateAssignment(ctx, s, studentID, periodID)
	if err != nil {
		return err
	}
	if !ok {
		return errdefs.Duplicate("student/period", fmt.Sprintf("student %d, period %d", studentID, periodID))
	}
	return nil
}

// ValidateCompanyUniqueness fails when a company other than selfID already
// holds taxID. Comparison ignores case.
func ValidateCompanyUniqueness(ctx context.Context, s store.Store, taxID string, selfID int64) error {
	norm := NormalizeTaxID(taxID)
	taken, err := s.Companies().ExistsWhere(ctx, func(c *models.Company) bool {
		return c.ID != selfID && NormalizeTaxID(c.TaxID) == norm
	})
	if err != nil {
		return err
	}
	if taken {
		return errdefs.Duplicate("tax_id", norm)
	}
	return nil
}

// ValidateCompanyEmail fails when another company uses the same e-mail.
// Empty addresses are never compared.
func ValidateCompanyEmail(ctx context.Context, s store.Store, mail string, selfID int64) error {
	if mail == "" {
		return nil
	}
	taken, err := s.Companies().ExistsWhere(ctx, func(c *models.Company) bool {
		return c.ID != selfID && strings.EqualFold(c.Email, mail)
	})
	if err != nil {
		return err
	}
	if taken {
		return errdefs.Duplicate("email", mail)
	}
	return nil
}

// ValidateTutorBelongsToCompany checks the tutor is employed by companyID.
func ValidateTutorBelongsToCompany(t *models.CompanyTutor, companyID int64) error {
	if t.CompanyID != companyID {
		return errdefs.Referential("tutor", fmt.Sprintf("company %d (tutor belongs to company %d)", companyID, t.CompanyID))
	}
	return nil
}

func ValidateYearNameUnique(ctx context.Context, s store.Store, name string, selfID int64) error {
	taken, err := s.Years().ExistsWhere(ctx, func(y *models.AcademicYear) bool {
		return y.ID != selfID && y.Name == name
	})
	if err != nil {
		return err
	}
	if taken {
		return errdefs.Duplicate("name", name)
	}
	return nil
}

// ValidateStudentUniqueness checks e-mail and, when present, national id.
func ValidateStudentUniqueness(ctx context.Context, s store.Store, st *models.Student) error {
	var dup error
	_, err := s.Students().ExistsWhere(ctx, func(o *models.Student) bool {
		if o.ID == st.ID {
			return false
		}
		switch {
		case st.NationalID != "" && strings.EqualFold(o.NationalID, st.NationalID):
			dup = errdefs.Duplicate("national_id", st.NationalID)
		case st.Email != "" && strings.EqualFold(o.Email, st.Email):
			dup = errdefs.Duplicate("email", st.Email)
		default:
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	return dup
}

func ValidateTutorUniqueness(ctx context.Context, s store.Store, t *models.CompanyTutor) error {
	if t.NationalID == "" {
		return nil
	}
	taken, err := s.Tutors().ExistsWhere(ctx, func(o *models.CompanyTutor) bool {
		return o.ID != t.ID && strings.EqualFold(o.NationalID, t.NationalID)
	})
	if err != nil {
		return err
	}
	if taken {
		return errdefs.Duplicate("national_id", t.NationalID)
	}
	return nil
}

func ValidateUserEmail(ctx context.Context, s store.Store, mail string, selfID int64) error {
	taken, err := s.Users().ExistsWhere(ctx, func(u *models.User) bool {
		return u.ID != selfID && strings.EqualFold(u.Email, mail)
	})
	if err != nil {
		return err
	}
	if taken {
		return errdefs.Duplicate("email", mail)
	}
	return nil
}
