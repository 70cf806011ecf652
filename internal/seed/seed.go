// Package seed loads the demonstration data set into an empty store.
package seed

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/auth"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/service"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
)

// Demo credentials printed after a successful seed.
var Credentials = []struct{ Email, Password string }{
	{"admin@gestionfct.com", "admin123"},
	{"docente@gestionfct.com", "docente123"},
	{"docente2@gestionfct.com", "docente123"},
}

type userSpec struct {
	first, last, email, password string
	role                         models.Role
}

type companySpec struct {
	company models.Company
	tutor   models.CompanyTutor
}

// Run inserts the demo data in one unit when the store holds no users.
// It reports whether anything was written.
func Run(ctx context.Context, s store.Store, log *zap.Logger, opts ...service.Option) (bool, error) {
	if log == nil {
		log = zap.NewNop()
	}
	seeded := false
	err := s.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		has, err := tx.Users().ExistsWhere(ctx, store.All[models.User])
		if err != nil || has {
			return err
		}
		if err := load(ctx, tx, opts); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		log.Error("seed failed", zap.Error(err))
		return false, err
	}
	if seeded {
		log.Info("demo data loaded")
	} else {
		log.Info("store already has data, seed skipped")
	}
	return seeded, nil
}

func load(ctx context.Context, tx store.Store, opts []service.Option) error {
	svc := service.New(tx, opts...)
	users := auth.New(tx)

	var teachers []int64
	for _, u := range []userSpec{
		{"Admin", "Sistema", Credentials[0].Email, Credentials[0].Password, models.Admin},
		{"Luis", "García Pérez", Credentials[1].Email, Credentials[1].Password, models.Teacher},
		{"María", "López Fernández", Credentials[2].Email, Credentials[2].Password, models.Teacher},
	} {
		m := models.User{FirstName: u.first, LastName: u.last, Email: u.email, Role: u.role, IsActive: true}
		if err := users.Register(ctx, &m, u.password); err != nil {
			return err
		}
		if u.role == models.Teacher {
			teachers = append(teachers, m.ID)
		}
	}

	previous := models.AcademicYear{Name: "2024-2025", Description: "Curso académico anterior"}
	if err := svc.CreateYear(ctx, &previous); err != nil {
		return err
	}
	current := models.AcademicYear{Name: "2025-2026", Description: "Curso académico actual", IsActive: true}
	if err := svc.CreateYear(ctx, &current); err != nil {
		return err
	}

	for _, c := range []companySpec{
		{
			models.Company{Name: "TechSolutions S.L.", TaxID: "B12345678", Address: "Calle Tecnología 123", City: "Gijón",
				PostalCode: "33201", Province: "Asturias", Phone: "985123456", Email: "info@techsolutions.com",
				ContactPerson: "Carlos Martínez", Sector: "Desarrollo de Software"},
			models.CompanyTutor{FirstName: "Carlos", LastName: "Martínez Ruiz", NationalID: "12345678A",
				Phone: "666111222", Email: "carlos@techsolutions.com", JobTitle: "Director Técnico"},
		},
		{
			models.Company{Name: "DataCenter Asturias", TaxID: "B87654321", Address: "Polígono Industrial Norte", City: "Avilés",
				PostalCode: "33400", Province: "Asturias", Phone: "985654321", Email: "contacto@datacenter.com",
				ContactPerson: "Ana García", Sector: "Servicios TI"},
			models.CompanyTutor{FirstName: "Ana", LastName: "García Sánchez", NationalID: "87654321B",
				Phone: "666333444", Email: "ana@datacenter.com", JobTitle: "Jefa de Proyectos"},
		},
		{
			models.Company{Name: "WebDev Pro", TaxID: "A11223344", Address: "Av. de la Constitución 45", City: "Oviedo",
				PostalCode: "33001", Province: "Asturias", Phone: "985111222", Email: "hola@webdevpro.es",
				ContactPerson: "Pedro López", Sector: "Desarrollo Web"},
			models.CompanyTutor{FirstName: "Pedro", LastName: "López Álvarez", NationalID: "11223344C",
				Phone: "666555666", Email: "pedro@webdevpro.es", JobTitle: "CTO"},
		},
	} {
		c.company.IsActive = true
		if err := svc.CreateCompany(ctx, &c.company); err != nil {
			return err
		}
		c.tutor.CompanyID = c.company.ID
		c.tutor.IsActive = true
		if err := svc.CreateTutor(ctx, &c.tutor); err != nil {
			return err
		}
	}

	for _, p := range []struct {
		name   string
		cohort int
		typ    models.PeriodType
		start  time.Time
		end    time.Time
		hours  int
	}{
		{"FCT Ordinaria 2º DAM", 2, models.PeriodOrdinary, day(2026, 3, 1), day(2026, 6, 15), 400},
		{"FCT Extraordinaria 2º DAM", 2, models.PeriodExtraordinary, day(2026, 6, 16), day(2026, 9, 15), 400},
		{"FCT Ordinaria 1º DAM", 1, models.PeriodOrdinary, day(2026, 5, 1), day(2026, 6, 30), 200},
	} {
		hours := p.hours
		m := models.Period{AcademicYearID: current.ID, Name: p.name, CohortYear: p.cohort, Type: p.typ,
			StartDate: p.start, EndDate: p.end, TotalHours: &hours}
		if err := svc.CreatePeriod(ctx, &m); err != nil {
			return err
		}
	}

	second := 2
	for _, st := range []struct {
		first, last, nid, phone, email, program, group string
		teacher                                         int64
	}{
		{"Juan", "Pérez González", "11111111A", "666001001", "juan@alumno.es", "DAM", "2A", teachers[0]},
		{"María", "Rodríguez López", "22222222B", "666002002", "maria@alumno.es", "DAM", "2A", teachers[0]},
		{"Pedro", "Fernández García", "33333333C", "666003003", "pedro@alumno.es", "DAW", "2B", teachers[1]},
		{"Laura", "Martínez Sánchez", "44444444D", "666004004", "laura@alumno.es", "DAM", "2A", teachers[0]},
		{"Carlos", "Gómez Ruiz", "55555555E", "666005005", "carlos@alumno.es", "ASIR", "2A", teachers[1]},
	} {
		course, teacher := second, st.teacher
		m := models.Student{FirstName: st.first, LastName: st.last, NationalID: st.nid, Phone: st.phone,
			Email: st.email, Program: st.program, Group: st.group, CourseYear: &course,
			IsActive: true, TeacherTutorID: &teacher}
		if err := svc.CreateStudent(ctx, &m); err != nil {
			return err
		}
	}
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
