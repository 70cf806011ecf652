package query

import (
	"context"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
)

// AssignmentRow is an assignment with its references resolved to display
// names. A dangling reference leaves the name empty.
type AssignmentRow struct {
	models.Assignment
	Student string
	Company string
	Tutor   string
	Period  string
	Year    string
	Percent float64
}

// Rows resolves the assignments matched by f. percent computes the completion
// column so this package does not depend on the engine.
func (q *Service) Rows(ctx context.Context, f Filter, percent func(*models.Assignment) float64) ([]AssignmentRow, error) {
	list, err := q.FindAssignments(ctx, f)
	if err != nil {
		return nil, err
	}
	students, err := q.studentNames(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := q.companyNames(ctx)
	if err != nil {
		return nil, err
	}
	tutors, err := names(ctx, q.store.Tutors().FindAll, func(t *models.CompanyTutor) (int64, string) { return t.ID, t.FullName() })
	if err != nil {
		return nil, err
	}
	periods, err := names(ctx, q.store.Periods().FindAll, func(p *models.Period) (int64, string) { return p.ID, p.Name })
	if err != nil {
		return nil, err
	}
	years, err := names(ctx, q.store.Years().FindAll, func(y *models.AcademicYear) (int64, string) { return y.ID, y.Name })
	if err != nil {
		return nil, err
	}

	rows := make([]AssignmentRow, 0, len(list))
	for i := range list {
		a := list[i]
		rows = append(rows, AssignmentRow{
			Assignment: a,
			Student:    students[a.StudentID],
			Company:    companies[a.CompanyID],
			Tutor:      tutors[a.TutorID],
			Period:     periods[a.PeriodID],
			Year:       years[a.AcademicYearID],
			Percent:    percent(&a),
		})
	}
	return rows, nil
}

func names[T any](ctx context.Context, findAll func(context.Context, func(*T) bool) ([]T, error), key func(*T) (int64, string)) (map[int64]string, error) {
	all, err := findAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(all))
	for i := range all {
		id, name := key(&all[i])
		out[id] = name
	}
	return out, nil
}

// Counts feeds the dashboard.
type Counts struct {
	ActiveAssignments int
	Companies         int
	Students          int
	Teachers          int
}

func (q *Service) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	active, err := q.store.Assignments().FindAll(ctx, func(a *models.Assignment) bool { return a.State == models.AssignmentActive })
	if err != nil {
		return c, err
	}
	companies, err := q.store.Companies().FindAll(ctx, nil)
	if err != nil {
		return c, err
	}
	students, err := q.store.Students().FindAll(ctx, nil)
	if err != nil {
		return c, err
	}
	teachers, err := q.store.Users().FindAll(ctx, func(u *models.User) bool { return u.Role == models.Teacher })
	if err != nil {
		return c, err
	}
	c.ActiveAssignments = len(active)
	c.Companies = len(companies)
	c.Students = len(students)
	c.Teachers = len(teachers)
	return c, nil
}
