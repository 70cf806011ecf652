package models

import (
	"fmt"
	"strings"
	"time"
)

type DocumentType string

const (
	DocAttachment DocumentType = "ATTACHMENT"
	DocReport     DocumentType = "REPORT"
	DocEvaluation DocumentType = "EVALUATION"
	DocMemoir     DocumentType = "MEMOIR"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocAttachment, DocReport, DocEvaluation, DocMemoir:
		return true
	}
	return false
}

// Document is stored by reference: Path points at the uploaded file.
// AuthorID is a weak reference to a User.
type Document struct {
	ID           int64        `db:"id"`
	AssignmentID int64        `db:"assignment_id"`
	AuthorID     *int64       `db:"author_id"`
	Name         string       `db:"name"`
	StoredName   string       `db:"stored_name"`
	Path         string       `db:"path"`
	Type         DocumentType `db:"type"`
	ContentType  string       `db:"content_type"`
	Size         int64        `db:"size"`
	Description  string       `db:"description"`
	UploadedAt   time.Time    `db:"uploaded_at"`
}

func (d Document) FormattedSize() string {
	switch {
	case d.Size <= 0:
		return "0 B"
	case d.Size < 1024:
		return fmt.Sprintf("%d B", d.Size)
	case d.Size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(d.Size)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(d.Size)/(1024*1024))
}

// Extension returns the upper-cased extension of Name without the dot.
func (d Document) Extension() string {
	i := strings.LastIndex(d.Name, ".")
	if i <= 0 {
		return ""
	}
	return strings.ToUpper(d.Name[i+1:])
}
