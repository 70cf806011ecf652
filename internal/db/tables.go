package db

import "github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"

var usersTable = &tableSpec[models.User]{
	entity:  "user",
	table:   "users",
	columns: []string{"first_name", "last_name", "email", "password_hash", "phone", "role", "is_active", "created_at", "last_login_at"},
	id:      func(v *models.User) int64 { return v.ID },
	setID:   func(v *models.User, id int64) { v.ID = id },
	values: func(v *models.User) []any {
		return []any{v.FirstName, v.LastName, v.Email, v.PasswordHash, v.Phone, string(v.Role), v.IsActive, v.CreatedAt, v.LastLoginAt}
	},
	fields: func(v *models.User) []any {
		return []any{&v.FirstName, &v.LastName, &v.Email, &v.PasswordHash, &v.Phone, &v.Role, &v.IsActive, &v.CreatedAt, &v.LastLoginAt}
	},
}

var studentsTable = &tableSpec[models.Student]{
	entity: "student",
	table:  "students",
	columns: []string{"first_name", "last_name", "national_id", "birth_date", "phone", "email", "address",
		"program", "group_name", "course_year", "is_active", "user_id", "teacher_tutor_id"},
	id:    func(v *models.Student) int64 { return v.ID },
	setID: func(v *models.Student, id int64) { v.ID = id },
	values: func(v *models.Student) []any {
		return []any{v.FirstName, v.LastName, v.NationalID, v.BirthDate, v.Phone, v.Email, v.Address,
			v.Program, v.Group, v.CourseYear, v.IsActive, v.UserID, v.TeacherTutorID}
	},
	fields: func(v *models.Student) []any {
		return []any{&v.FirstName, &v.LastName, &v.NationalID, &v.BirthDate, &v.Phone, &v.Email, &v.Address,
			&v.Program, &v.Group, &v.CourseYear, &v.IsActive, &v.UserID, &v.TeacherTutorID}
	},
}

var companiesTable = &tableSpec[models.Company]{
	entity: "company",
	table:  "companies",
	columns: []string{"name", "tax_id", "address", "city", "postal_code", "province", "phone", "email",
		"contact_person", "sector", "is_active", "notes"},
	id:    func(v *models.Company) int64 { return v.ID },
	setID: func(v *models.Company, id int64) { v.ID = id },
	values: func(v *models.Company) []any {
		return []any{v.Name, v.TaxID, v.Address, v.City, v.PostalCode, v.Province, v.Phone, v.Email,
			v.ContactPerson, v.Sector, v.IsActive, v.Notes}
	},
	fields: func(v *models.Company) []any {
		return []any{&v.Name, &v.TaxID, &v.Address, &v.City, &v.PostalCode, &v.Province, &v.Phone, &v.Email,
			&v.ContactPerson, &v.Sector, &v.IsActive, &v.Notes}
	},
}

var tutorsTable = &tableSpec[models.CompanyTutor]{
	entity:  "tutor",
	table:   "company_tutors",
	columns: []string{"company_id", "first_name", "last_name", "national_id", "phone", "email", "job_title", "is_active", "user_id"},
	id:      func(v *models.CompanyTutor) int64 { return v.ID },
	setID:   func(v *models.CompanyTutor, id int64) { v.ID = id },
	values: func(v *models.CompanyTutor) []any {
		return []any{v.CompanyID, v.FirstName, v.LastName, v.NationalID, v.Phone, v.Email, v.JobTitle, v.IsActive, v.UserID}
	},
	fields: func(v *models.CompanyTutor) []any {
		return []any{&v.CompanyID, &v.FirstName, &v.LastName, &v.NationalID, &v.Phone, &v.Email, &v.JobTitle, &v.IsActive, &v.UserID}
	},
}

var yearsTable = &tableSpec[models.AcademicYear]{
	entity:  "academic year",
	table:   "academic_years",
	columns: []string{"name", "description", "is_active"},
	id:      func(v *models.AcademicYear) int64 { return v.ID },
	setID:   func(v *models.AcademicYear, id int64) { v.ID = id },
	values:  func(v *models.AcademicYear) []any { return []any{v.Name, v.Description, v.IsActive} },
	fields:  func(v *models.AcademicYear) []any { return []any{&v.Name, &v.Description, &v.IsActive} },
}

var periodsTable = &tableSpec[models.Period]{
	entity:  "period",
	table:   "periods",
	columns: []string{"academic_year_id", "name", "cohort_year", "type", "start_date", "end_date", "total_hours"},
	id:      func(v *models.Period) int64 { return v.ID },
	setID:   func(v *models.Period, id int64) { v.ID = id },
	values: func(v *models.Period) []any {
		return []any{v.AcademicYearID, v.Name, v.CohortYear, string(v.Type), v.StartDate, v.EndDate, v.TotalHours}
	},
	fields: func(v *models.Period) []any {
		return []any{&v.AcademicYearID, &v.Name, &v.CohortYear, &v.Type, &v.StartDate, &v.EndDate, &v.TotalHours}
	},
}

var assignmentsTable = &tableSpec[models.Assignment]{
	entity: "assignment",
	table:  "assignments",
	columns: []string{"state", "start_date", "end_date", "total_hours", "hours_completed", "notes", "created_at", "modified_at",
		"student_id", "company_id", "tutor_id", "period_id", "academic_year_id"},
	id:    func(v *models.Assignment) int64 { return v.ID },
	setID: func(v *models.Assignment, id int64) { v.ID = id },
	values: func(v *models.Assignment) []any {
		return []any{string(v.State), v.StartDate, v.EndDate, v.TotalHours, v.HoursCompleted, v.Notes, v.CreatedAt, v.ModifiedAt,
			v.StudentID, v.CompanyID, v.TutorID, v.PeriodID, v.AcademicYearID}
	},
	fields: func(v *models.Assignment) []any {
		return []any{&v.State, &v.StartDate, &v.EndDate, &v.TotalHours, &v.HoursCompleted, &v.Notes, &v.CreatedAt, &v.ModifiedAt,
			&v.StudentID, &v.CompanyID, &v.TutorID, &v.PeriodID, &v.AcademicYearID}
	},
}

var documentsTable = &tableSpec[models.Document]{
	entity: "document",
	table:  "documents",
	columns: []string{"assignment_id", "author_id", "name", "stored_name", "path", "type", "content_type",
		"size", "description", "uploaded_at"},
	id:    func(v *models.Document) int64 { return v.ID },
	setID: func(v *models.Document, id int64) { v.ID = id },
	values: func(v *models.Document) []any {
		return []any{v.AssignmentID, v.AuthorID, v.Name, v.StoredName, v.Path, string(v.Type), v.ContentType,
			v.Size, v.Description, v.UploadedAt}
	},
	fields: func(v *models.Document) []any {
		return []any{&v.AssignmentID, &v.AuthorID, &v.Name, &v.StoredName, &v.Path, &v.Type, &v.ContentType,
			&v.Size, &v.Description, &v.UploadedAt}
	},
}
