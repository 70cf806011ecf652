package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/query"
)

const AssignmentsSheet = "FCT"

var assignmentHeader = []string{
	"Student", "Company", "Tutor", "Period", "Year", "State",
	"Start", "End", "Hours", "Total hours", "Percent",
}

// AssignmentsWorkbook builds one sheet with a row per assignment. Hours and
// percent are numeric cells; an unset total is left blank.
func AssignmentsWorkbook(rows []query.AssignmentRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", AssignmentsSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for i, h := range assignmentHeader {
		if err := f.SetCellStr(AssignmentsSheet, cell(i+1, 1), h); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("header %s: %w", h, err)
		}
	}
	for r, row := range rows {
		line := r + 2
		values := []any{
			row.Student, row.Company, row.Tutor, row.Period, row.Year, string(row.State),
			row.StartDate.Format("2006-01-02"), row.EndDate.Format("2006-01-02"),
			row.HoursCompleted, nil, math.Round(row.Percent*10) / 10,
		}
		if row.TotalHours != nil {
			values[9] = *row.TotalHours
		}
		for c, v := range values {
			if v == nil {
				continue
			}
			if err := f.SetCellValue(AssignmentsSheet, cell(c+1, line), v); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("set %s: %w", cell(c+1, line), err)
			}
		}
	}
	if err := ApplyDefaultExcelFormatting(f, AssignmentsSheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// SaveAssignments writes the workbook into dir under name and returns the
// full path.
func SaveAssignments(dir, name string, rows []query.AssignmentRow) (string, error) {
	f, err := AssignmentsWorkbook(rows)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}
