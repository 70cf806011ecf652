package validate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store/memstore"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/validate"
)

func TestCanCreateAssignment(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	a := models.Assignment{StudentID: 1, PeriodID: 2, State: models.AssignmentActive}
	require.NoError(t, s.Assignments().Save(ctx, &a))

	t.Run("ActiveBlocks", func(t *testing.T) {
		ok, err := validate.CanCreateAssignment(ctx, s, 1, 2)
		require.NoError(t, err)
		assert.False(t, ok)

		err = validate.CheckAssignmentUnique(ctx, s, 1, 2)
		assert.True(t, errors.Is(err, errdefs.ErrDuplicate))
	})

	t.Run("FinalizedBlocks", func(t *testing.T) {
		a.State = models.AssignmentFinalized
		require.NoError(t, s.Assignments().Save(ctx, &a))
		ok, err := validate.CanCreateAssignment(ctx, s, 1, 2)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("CancelledDoesNotBlock", func(t *testing.T) {
		a.State = models.AssignmentCancelled
		require.NoError(t, s.Assignments().Save(ctx, &a))
		ok, err := validate.CanCreateAssignment(ctx, s, 1, 2)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("OtherPeriodFree", func(t *testing.T) {
		ok, err := validate.CanCreateAssignment(ctx, s, 1, 3)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestValidateCompanyUniqueness(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	c := models.Company{Name: "Acme", TaxID: "B12345678", Email: "info@acme.es"}
	require.NoError(t, s.Companies().Save(ctx, &c))

	err := validate.ValidateCompanyUniqueness(ctx, s, " b12345678 ", 0)
	var dup *errdefs.DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "tax_id", dup.Field)
	assert.Equal(t, "B12345678", dup.Value)

	assert.NoError(t, validate.ValidateCompanyUniqueness(ctx, s, "B12345678", c.ID), "own row is not a duplicate")
	assert.NoError(t, validate.ValidateCompanyUniqueness(ctx, s, "A00000000", 0))

	assert.ErrorIs(t, validate.ValidateCompanyEmail(ctx, s, "INFO@acme.es", 0), errdefs.ErrDuplicate)
	assert.NoError(t, validate.ValidateCompanyEmail(ctx, s, "", 0))
}

func TestValidateTutorBelongsToCompany(t *testing.T) {
	tutor := &models.CompanyTutor{ID: 4, CompanyID: 1}
	assert.NoError(t, validate.ValidateTutorBelongsToCompany(tutor, 1))
	assert.ErrorIs(t, validate.ValidateTutorBelongsToCompany(tutor, 2), errdefs.ErrReferentialIntegrity)
}

func TestYearName(t *testing.T) {
	assert.NoError(t, validate.YearName("2025-2026"))
	for _, bad := range []string{"", "2025/2026", "2025-2027", "25-26", "2026-2025"} {
		assert.ErrorIs(t, validate.YearName(bad), errdefs.ErrValidation, bad)
	}

	ctx := context.Background()
	s := memstore.New()
	y := models.AcademicYear{Name: "2025-2026"}
	require.NoError(t, s.Years().Save(ctx, &y))
	assert.ErrorIs(t, validate.ValidateYearNameUnique(ctx, s, "2025-2026", 0), errdefs.ErrDuplicate)
	assert.NoError(t, validate.ValidateYearNameUnique(ctx, s, "2025-2026", y.ID))
}

func TestPeriod(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	hours := 400
	ok := models.Period{AcademicYearID: 1, Name: "Ordinario", Type: models.PeriodOrdinary,
		StartDate: start, EndDate: start.AddDate(0, 3, 14), TotalHours: &hours}
	assert.NoError(t, validate.Period(&ok))

	reversed := ok
	reversed.EndDate = start.AddDate(0, 0, -1)
	var ve *errdefs.ValidationError
	require.True(t, errors.As(validate.Period(&reversed), &ve))
	assert.Equal(t, "end_date", ve.Field)

	negative := ok
	minus := -1
	negative.TotalHours = &minus
	assert.ErrorIs(t, validate.Period(&negative), errdefs.ErrValidation)

	noHours := ok
	noHours.TotalHours = nil
	assert.NoError(t, validate.Period(&noHours))

	badType := ok
	badType.Type = "SUMMER"
	assert.ErrorIs(t, validate.Period(&badType), errdefs.ErrValidation)
}

func TestStudentFieldsAndUniqueness(t *testing.T) {
	s := &models.Student{FirstName: "Ana", LastName: "Ruiz", Email: "ana@ies.es", Program: "DAM", Group: "2A"}
	assert.NoError(t, validate.Student(s))

	bad := *s
	bad.Email = "not-an-email"
	assert.ErrorIs(t, validate.Student(&bad), errdefs.ErrValidation)

	ctx := context.Background()
	st := memstore.New()
	existing := models.Student{FirstName: "Eva", LastName: "Gil", Email: "eva@ies.es", NationalID: "11111111H"}
	require.NoError(t, st.Students().Save(ctx, &existing))

	clash := *s
	clash.NationalID = "11111111h"
	var dup *errdefs.DuplicateError
	require.True(t, errors.As(validate.ValidateStudentUniqueness(ctx, st, &clash), &dup))
	assert.Equal(t, "national_id", dup.Field)

	sameMail := *s
	sameMail.Email = "EVA@ies.es"
	require.True(t, errors.As(validate.ValidateStudentUniqueness(ctx, st, &sameMail), &dup))
	assert.Equal(t, "email", dup.Field)

	assert.NoError(t, validate.ValidateStudentUniqueness(ctx, st, &existing))
}

func TestHours(t *testing.T) {
	assert.NoError(t, validate.Hours(0))
	assert.NoError(t, validate.Hours(1000))
	assert.ErrorIs(t, validate.Hours(-1), errdefs.ErrValidation)
}
