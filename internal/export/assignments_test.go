package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/query"
)

func TestSaveAssignments(t *testing.T) {
	total := 400
	rows := []query.AssignmentRow{
		{
			Assignment: models.Assignment{
				State: models.AssignmentActive, HoursCompleted: 380, TotalHours: &total,
				StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
			},
			Student: "Ana Ruiz", Company: "Acme", Tutor: "Lucía Pérez", Period: "Ordinario", Year: "2025-2026",
			Percent: 95,
		},
		{
			Assignment: models.Assignment{State: models.AssignmentCancelled},
			Student:    "Leo Sanz", Company: "Globex",
		},
	}

	dir := t.TempDir()
	path, err := SaveAssignments(dir, BuildAssignmentsFilename("2025-2026", ""), rows)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "FCT - 2025-2026.xlsx" {
		t.Fatalf("file name = %q", filepath.Base(path))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := f.GetRows(AssignmentsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(got))
	}
	if got[0][0] != "Student" || got[0][10] != "Percent" {
		t.Fatalf("header = %v", got[0])
	}
	if got[1][0] != "Ana Ruiz" || got[1][6] != "2026-03-01" || got[1][8] != "380" || got[1][9] != "400" || got[1][10] != "95" {
		t.Fatalf("first row = %v", got[1])
	}
	if got[2][5] != "CANCELLED" || got[2][9] != "" {
		t.Fatalf("second row = %v", got[2])
	}
}

func TestColumnName(t *testing.T) {
	for n, want := range map[int]string{1: "A", 11: "K", 26: "Z", 27: "AA", 52: "AZ"} {
		if got := columnName(n); got != want {
			t.Errorf("columnName(%d) = %q, want %q", n, got, want)
		}
	}
}
