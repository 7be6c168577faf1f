// file: internals/features/academic/export/report_workbook.go
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"academic_backend/internals/features/academic/service"
)

const ReportSheet = "Report"

var reportHeader = []any{"Course", "Grades", "Average", "Letter"}

// ReportWorkbook renders one report card as an xlsx file: a header row and
// one row per course, grades joined with ", ".
func ReportWorkbook(card *service.ReportCard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// rename the default sheet instead of adding a second one
	if err := f.SetSheetName(f.GetSheetName(0), ReportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(ReportSheet, "A1", &reportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(ReportSheet, "A1", "D1", style)
	}

	for i, e := range card.Report {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{e.Course, joinGrades(e.Grades), e.Average, e.Letter}
		if err := f.SetSheetRow(ReportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(ReportSheet, "A", "A", 28)
	_ = f.SetColWidth(ReportSheet, "B", "B", 24)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportFilename is the attachment name offered for a student's report.
func ReportFilename(card *service.ReportCard) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, card.Student)
	if name == "" {
		name = card.StudentID.String()
	}
	return "report_" + name + ".xlsx"
}

func joinGrades(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ", ")
}
