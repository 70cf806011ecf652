package models

import (
	"strings"
	"time"
)

type Student struct {
	ID         int64      `db:"id"`
	FirstName  string     `db:"first_name"`
	LastName   string     `db:"last_name"`
	NationalID string     `db:"national_id"`
	BirthDate  *time.Time `db:"birth_date"`
	Phone      string     `db:"phone"`
	Email      string     `db:"email"`
	Address    string     `db:"address"`
	Program    string     `db:"program"` // ciclo: DAM, DAW, ASIR...
	Group      string     `db:"group_name"`
	CourseYear *int       `db:"course_year"`
	IsActive   bool       `db:"is_active"`
	// UserID is the optional login account; TeacherTutorID is a weak reference
	// to the teacher in charge and may dangle.
	UserID         *int64 `db:"user_id"`
	TeacherTutorID *int64 `db:"teacher_tutor_id"`
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
