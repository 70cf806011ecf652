// Package query holds the read-only lookups used by the engine, the service
// facade and the CLI. Results keep store iteration order unless a function
// says it sorts.
package query

import (
	"context"
	"sort"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
)

type Service struct {
	store store.Store
}

func New(s store.Store) *Service {
	return &Service{store: s}
}

// Filter narrows assignments. Zero values mean "any".
type Filter struct {
	State     models.AssignmentState
	YearID    int64
	StudentID int64
	CompanyID int64
	TutorID   int64
	PeriodID  int64
	// Search matches the student full name or the company name.
	Search string
}

func (f Filter) match(a *models.Assignment) bool {
	switch {
	case f.State != "" && a.State != f.State:
		return false
	case f.YearID != 0 && a.AcademicYearID != f.YearID:
		return false
	case f.StudentID != 0 && a.StudentID != f.StudentID:
		return false
	case f.CompanyID != 0 && a.CompanyID != f.CompanyID:
		return false
	case f.TutorID != 0 && a.TutorID != f.TutorID:
		return false
	case f.PeriodID != 0 && a.PeriodID != f.PeriodID:
		return false
	}
	return true
}

func (q *Service) FindAssignments(ctx context.Context, f Filter) ([]models.Assignment, error) {
	if f.Search == "" {
		return q.store.Assignments().FindAll(ctx, f.match)
	}
	students, err := q.studentNames(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := q.companyNames(ctx)
	if err != nil {
		return nil, err
	}
	return q.store.Assignments().FindAll(ctx, func(a *models.Assignment) bool {
		return f.match(a) && (contains(students[a.StudentID], f.Search) || contains(companies[a.CompanyID], f.Search))
	})
}

func (q *Service) AssignmentsByState(ctx context.Context, st models.AssignmentState) ([]models.Assignment, error) {
	return q.FindAssignments(ctx, Filter{State: st})
}

// AssignmentsByYear filters by academic year and, when st is set, by state.
func (q *Service) AssignmentsByYear(ctx context.Context, yearID int64, st models.AssignmentState) ([]models.Assignment, error) {
	return q.FindAssignments(ctx, Filter{YearID: yearID, State: st})
}

func (q *Service) AssignmentsByStudent(ctx context.Context, studentID int64) ([]models.Assignment, error) {
	return q.FindAssignments(ctx, Filter{StudentID: studentID})
}

func (q *Service) AssignmentsByCompany(ctx context.Context, companyID int64) ([]models.Assignment, error) {
	return q.FindAssignments(ctx, Filter{CompanyID: companyID})
}

func (q *Service) AssignmentsByTutor(ctx context.Context, tutorID int64) ([]models.Assignment, error) {
	return q.FindAssignments(ctx, Filter{TutorID: tutorID})
}

func (q *Service) AssignmentsByPeriod(ctx context.Context, periodID int64) ([]models.Assignment, error) {
	return q.FindAssignments(ctx, Filter{PeriodID: periodID})
}

func (q *Service) studentNames(ctx context.Context) (map[int64]string, error) {
	all, err := q.store.Students().FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(all))
	for i := range all {
		out[all[i].ID] = all[i].FullName()
	}
	return out, nil
}

func (q *Service) companyNames(ctx context.Context) (map[int64]string, error) {
	all, err := q.store.Companies().FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(all))
	for i := range all {
		out[all[i].ID] = all[i].Name
	}
	return out, nil
}

// Students returns every student sorted by surname, then first name.
func (q *Service) Students(ctx context.Context) ([]models.Student, error) {
	all, err := q.store.Students().FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	sortBySurname(all)
	return all, nil
}

func sortBySurname(list []models.Student) {
	col := newCollator()
	sort.SliceStable(list, func(i, j int) bool {
		if c := col.CompareString(list[i].LastName, list[j].LastName); c != 0 {
			return c < 0
		}
		return col.CompareString(list[i].FirstName, list[j].FirstName) < 0
	})
}

// SearchStudents matches first name, surname or the full name.
func (q *Service) SearchStudents(ctx context.Context, text string) ([]models.Student, error) {
	return q.store.Students().FindAll(ctx, func(s *models.Student) bool {
		return contains(s.FullName(), text) || contains(s.LastName+" "+s.FirstName, text)
	})
}

func (q *Service) StudentsByProgram(ctx context.Context, program string) ([]models.Student, error) {
	return q.store.Students().FindAll(ctx, func(s *models.Student) bool { return Fold(s.Program) == Fold(program) })
}

func (q *Service) ActiveStudents(ctx context.Context) ([]models.Student, error) {
	return q.store.Students().FindAll(ctx, func(s *models.Student) bool { return s.IsActive })
}

func (q *Service) SearchCompanies(ctx context.Context, name string) ([]models.Company, error) {
	return q.store.Companies().FindAll(ctx, func(c *models.Company) bool { return contains(c.Name, name) })
}

func (q *Service) Companies(ctx context.Context) ([]models.Company, error) {
	return q.store.Companies().FindAll(ctx, nil)
}

func (q *Service) ActiveCompanies(ctx context.Context) ([]models.Company, error) {
	return q.store.Companies().FindAll(ctx, func(c *models.Company) bool { return c.IsActive })
}

// CompanyByTaxID returns nil when no company holds the tax id.
func (q *Service) CompanyByTaxID(ctx context.Context, taxID string) (*models.Company, error) {
	return firstOf(q.store.Companies().FindAll(ctx, func(c *models.Company) bool {
		return Fold(c.TaxID) == Fold(taxID)
	}))
}

func (q *Service) TutorsByCompany(ctx context.Context, companyID int64, activeOnly bool) ([]models.CompanyTutor, error) {
	return q.store.Tutors().FindAll(ctx, func(t *models.CompanyTutor) bool {
		return t.CompanyID == companyID && (!activeOnly || t.IsActive)
	})
}

func (q *Service) Years(ctx context.Context) ([]models.AcademicYear, error) {
	return q.store.Years().FindAll(ctx, nil)
}

// ActiveYear returns nil when no year is active.
func (q *Service) ActiveYear(ctx context.Context) (*models.AcademicYear, error) {
	return firstOf(q.store.Years().FindAll(ctx, func(y *models.AcademicYear) bool { return y.IsActive }))
}

func (q *Service) YearByName(ctx context.Context, name string) (*models.AcademicYear, error) {
	return firstOf(q.store.Years().FindAll(ctx, func(y *models.AcademicYear) bool { return y.Name == name }))
}

func (q *Service) PeriodsByYear(ctx context.Context, yearID int64) ([]models.Period, error) {
	return q.store.Periods().FindAll(ctx, func(p *models.Period) bool { return p.AcademicYearID == yearID })
}

func (q *Service) PeriodsByCohort(ctx context.Context, cohort int) ([]models.Period, error) {
	return q.store.Periods().FindAll(ctx, func(p *models.Period) bool { return p.CohortYear == cohort })
}

func (q *Service) PeriodsByType(ctx context.Context, t models.PeriodType) ([]models.Period, error) {
	return q.store.Periods().FindAll(ctx, func(p *models.Period) bool { return p.Type == t })
}

func (q *Service) DocumentsByAssignment(ctx context.Context, assignmentID int64) ([]models.Document, error) {
	return q.store.Documents().FindAll(ctx, func(d *models.Document) bool { return d.AssignmentID == assignmentID })
}

func (q *Service) DocumentsByType(ctx context.Context, t models.DocumentType) ([]models.Document, error) {
	return q.store.Documents().FindAll(ctx, func(d *models.Document) bool { return d.Type == t })
}

func (q *Service) DocumentsByAuthor(ctx context.Context, userID int64) ([]models.Document, error) {
	return q.store.Documents().FindAll(ctx, func(d *models.Document) bool {
		return d.AuthorID != nil && *d.AuthorID == userID
	})
}

func firstOf[T any](list []T, err error) (*T, error) {
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}
