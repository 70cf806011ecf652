package models

type AcademicYear struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"` // "2025-2026"
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
}
