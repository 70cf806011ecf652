package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/query"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store/memstore"
)

func seed(t *testing.T) (*memstore.Store, *query.Service) {
	t.Helper()
	ctx := context.Background()
	s := memstore.New()

	for _, st := range []models.Student{
		{FirstName: "Óscar", LastName: "Zamora", IsActive: true, Program: "DAM"},
		{FirstName: "Lucía", LastName: "Álvarez", IsActive: true, Program: "DAW"},
		{FirstName: "Ana", LastName: "Peña", IsActive: false, Program: "dam"},
		{FirstName: "Bruno", LastName: "Alonso", IsActive: true, Program: "ASIR"},
	} {
		require.NoError(t, s.Students().Save(ctx, &st))
	}
	for _, c := range []models.Company{
		{Name: "Informática Málaga SL", TaxID: "B11111111", IsActive: true},
		{Name: "Globex", TaxID: "b22222222", IsActive: false},
	} {
		require.NoError(t, s.Companies().Save(ctx, &c))
	}
	for _, a := range []models.Assignment{
		{StudentID: 1, CompanyID: 1, PeriodID: 1, AcademicYearID: 1, TutorID: 1, State: models.AssignmentActive},
		{StudentID: 2, CompanyID: 2, PeriodID: 1, AcademicYearID: 1, TutorID: 2, State: models.AssignmentFinalized},
		{StudentID: 3, CompanyID: 1, PeriodID: 2, AcademicYearID: 2, TutorID: 1, State: models.AssignmentCancelled},
		{StudentID: 4, CompanyID: 2, PeriodID: 2, AcademicYearID: 2, TutorID: 2, State: models.AssignmentActive},
	} {
		require.NoError(t, s.Assignments().Save(ctx, &a))
	}
	return s, query.New(s)
}

func ids(list []models.Assignment) []int64 {
	out := []int64{}
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestFindAssignments(t *testing.T) {
	ctx := context.Background()
	_, q := seed(t)

	got, err := q.AssignmentsByState(ctx, models.AssignmentActive)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4}, ids(got))

	got, err = q.AssignmentsByYear(ctx, 2, "")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, ids(got))

	got, err = q.AssignmentsByYear(ctx, 2, models.AssignmentActive)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, ids(got))

	got, err = q.AssignmentsByCompany(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(got))

	got, err = q.AssignmentsByTutor(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, ids(got))

	got, err = q.AssignmentsByStudent(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(got))

	got, err = q.AssignmentsByPeriod(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(got))
}

func TestSearchFoldsCaseAndAccents(t *testing.T) {
	ctx := context.Background()
	_, q := seed(t)

	got, err := q.FindAssignments(ctx, query.Filter{Search: "malaga"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(got))

	got, err = q.FindAssignments(ctx, query.Filter{Search: "PENA"})
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(got))

	got, err = q.FindAssignments(ctx, query.Filter{Search: "globex", State: models.AssignmentActive})
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, ids(got))

	students, err := q.SearchStudents(ctx, "alvarez lucia")
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Lucía", students[0].FirstName)

	companies, err := q.SearchCompanies(ctx, "INFORMATICA")
	require.NoError(t, err)
	require.Len(t, companies, 1)
}

func TestStudentsSortedBySurname(t *testing.T) {
	ctx := context.Background()
	_, q := seed(t)

	list, err := q.Students(ctx)
	require.NoError(t, err)
	var surnames []string
	for _, s := range list {
		surnames = append(surnames, s.LastName)
	}
	assert.Equal(t, []string{"Alonso", "Álvarez", "Peña", "Zamora"}, surnames)

	dam, err := q.StudentsByProgram(ctx, "DAM")
	require.NoError(t, err)
	assert.Len(t, dam, 2)

	active, err := q.ActiveStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 3)
}

func TestLookups(t *testing.T) {
	ctx := context.Background()
	s, q := seed(t)

	c, err := q.CompanyByTaxID(ctx, "B22222222")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Globex", c.Name)

	none, err := q.CompanyByTaxID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, none)

	y := models.AcademicYear{Name: "2025-2026", IsActive: true}
	require.NoError(t, s.Years().Save(ctx, &y))
	active, err := q.ActiveYear(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, y.ID, active.ID)

	counts, err := q.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, query.Counts{ActiveAssignments: 2, Companies: 2, Students: 4}, counts)
}

func TestRowsResolveNames(t *testing.T) {
	ctx := context.Background()
	_, q := seed(t)

	rows, err := q.Rows(ctx, query.Filter{StudentID: 1}, func(*models.Assignment) float64 { return 42 })
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Óscar Zamora", rows[0].Student)
	assert.Equal(t, "Informática Málaga SL", rows[0].Company)
	assert.Equal(t, "", rows[0].Tutor, "dangling tutor reference stays empty")
	assert.Equal(t, 42.0, rows[0].Percent)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "pena", query.Fold("  Peña "))
	assert.Equal(t, "informatica", query.Fold("INFORMÁTICA"))
}
