package models

import (
	"strings"
	"time"
)

type Role string

const (
	Admin       Role = "ADMIN"
	Coordinator Role = "COORDINATOR"
	Teacher     Role = "TEACHER"
)

func (r Role) Valid() bool {
	switch r {
	case Admin, Coordinator, Teacher:
		return true
	}
	return false
}

type User struct {
	ID           int64      `db:"id"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Phone        string     `db:"phone"`
	Role         Role       `db:"role"`
	IsActive     bool       `db:"is_active"`
	CreatedAt    time.Time  `db:"created_at"`
	LastLoginAt  *time.Time `db:"last_login_at"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
