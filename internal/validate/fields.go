// Package validate holds the side-effect free checks run before every write:
// required fields, formats, uniqueness and cross references. Functions that
// need persisted state only read through the store.
package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
)

var (
	emailRe    = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
	yearNameRe = regexp.MustCompile(`^(\d{4})-(\d{4})$`)
)

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errdefs.Validation(field, "is required")
	}
	return nil
}

func email(field, value string, mandatory bool) error {
	if value == "" {
		if mandatory {
			return errdefs.Validation(field, "is required")
		}
		return nil
	}
	if !emailRe.MatchString(value) {
		return errdefs.Validation(field, "is not a valid e-mail address")
	}
	return nil
}

func first(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// NormalizeTaxID upper-cases and trims a tax id before it is compared or stored.
func NormalizeTaxID(taxID string) string {
	return strings.ToUpper(strings.TrimSpace(taxID))
}

func NormalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func Company(c *models.Company) error {
	return first(
		required("name", c.Name),
		required("tax_id", c.TaxID),
		email("email", c.Email, false),
	)
}

func Tutor(t *models.CompanyTutor) error {
	if t.CompanyID == 0 {
		return errdefs.Validation("company", "is required")
	}
	return first(
		required("first_name", t.FirstName),
		email("email", t.Email, false),
	)
}

func Student(s *models.Student) error {
	if s.CourseYear != nil && *s.CourseYear < 1 {
		return errdefs.Validation("course_year", "must be positive")
	}
	return first(
		required("first_name", s.FirstName),
		required("last_name", s.LastName),
		email("email", s.Email, true),
		required("program", s.Program),
		required("group", s.Group),
	)
}

func User(u *models.User) error {
	if !u.Role.Valid() {
		return errdefs.Validation("role", "must be ADMIN, COORDINATOR or TEACHER")
	}
	return first(
		required("first_name", u.FirstName),
		email("email", u.Email, true),
	)
}

// YearName accepts "YYYY-YYYY" where the second year follows the first.
func YearName(name string) error {
	m := yearNameRe.FindStringSubmatch(name)
	if m == nil {
		return errdefs.Validation("name", "must look like 2025-2026")
	}
	from, _ := strconv.Atoi(m[1])
	to, _ := strconv.Atoi(m[2])
	if to != from+1 {
		return errdefs.Validation("name", "years must be consecutive")
	}
	return nil
}

func Period(p *models.Period) error {
	switch {
	case p.AcademicYearID == 0:
		return errdefs.Validation("academic_year", "is required")
	case strings.TrimSpace(p.Name) == "":
		return errdefs.Validation("name", "is required")
	case !p.Type.Valid():
		return errdefs.Validation("type", "must be ORDINARY or EXTRAORDINARY")
	case p.StartDate.IsZero():
		return errdefs.Validation("start_date", "is required")
	case p.EndDate.IsZero():
		return errdefs.Validation("end_date", "is required")
	case p.StartDate.After(p.EndDate):
		return errdefs.Validation("end_date", "must not be before start_date")
	case p.TotalHours != nil && *p.TotalHours < 0:
		return errdefs.Validation("total_hours", "must not be negative")
	case p.CohortYear < 0:
		return errdefs.Validation("cohort_year", "must not be negative")
	}
	return nil
}

// Hours rejects negative progress. Values above the period target are fine.
func Hours(h int) error {
	if h < 0 {
		return errdefs.Validation("hours_completed", "must not be negative")
	}
	return nil
}
