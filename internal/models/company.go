package models

import "strings"

type Company struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	TaxID         string `db:"tax_id"`
	Address       string `db:"address"`
	City          string `db:"city"`
	PostalCode    string `db:"postal_code"`
	Province      string `db:"province"`
	Phone         string `db:"phone"`
	Email         string `db:"email"`
	ContactPerson string `db:"contact_person"`
	Sector        string `db:"sector"`
	IsActive      bool   `db:"is_active"`
	Notes         string `db:"notes"`
}

// FullAddress renders "address, postal city (province)", skipping empty parts.
func (c Company) FullAddress() string {
	var sb strings.Builder
	sb.WriteString(c.Address)
	if c.PostalCode != "" {
		if sb.Len() > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.PostalCode)
	}
	if c.City != "" {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(c.City)
	}
	if c.Province != "" {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString("(" + c.Province + ")")
	}
	return sb.String()
}

// CompanyTutor is the company-side supervisor. It belongs to exactly one company.
type CompanyTutor struct {
	ID         int64  `db:"id"`
	CompanyID  int64  `db:"company_id"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	NationalID string `db:"national_id"`
	Phone      string `db:"phone"`
	Email      string `db:"email"`
	JobTitle   string `db:"job_title"`
	IsActive   bool   `db:"is_active"`
	UserID     *int64 `db:"user_id"`
}

func (t CompanyTutor) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}
