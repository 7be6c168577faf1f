package export

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"academic_backend/internals/features/academic/service"
)

func readRows(t *testing.T, raw []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ReportSheet}, f.GetSheetList())
	rows, err := f.GetRows(ReportSheet)
	require.NoError(t, err)
	return rows
}

func TestReportWorkbook(t *testing.T) {
	card := &service.ReportCard{
		StudentID: uuid.New(),
		Student:   "Alice",
		Report: []service.ReportEntry{
			{Course: "Math", Grades: []int{95, 85}, Average: 90, Letter: "A-"},
			{Course: "Physics", Grades: []int{70}, Average: 70, Letter: "C-"},
			{Course: "Art", Grades: []int{}, Average: 0, Letter: "F"},
		},
	}

	raw, err := ReportWorkbook(card)
	require.NoError(t, err)

	rows := readRows(t, raw)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Course", "Grades", "Average", "Letter"}, rows[0])
	assert.Equal(t, []string{"Math", "95, 85", "90", "A-"}, rows[1])
	assert.Equal(t, []string{"Physics", "70", "70", "C-"}, rows[2])
	assert.Equal(t, []string{"Art", "", "0", "F"}, rows[3])
}

func TestReportWorkbookEmpty(t *testing.T) {
	raw, err := ReportWorkbook(&service.ReportCard{StudentID: uuid.New(), Student: "Bob", Report: []service.ReportEntry{}})
	require.NoError(t, err)

	rows := readRows(t, raw)
	require.Len(t, rows, 1)
	assert.Equal(t, "Course", rows[0][0])
}

func TestReportFilename(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "report_Alice_Smith.xlsx", ReportFilename(&service.ReportCard{StudentID: id, Student: "Alice Smith"}))
	assert.Equal(t, "report_"+id.String()+".xlsx", ReportFilename(&service.ReportCard{StudentID: id, Student: "Ñ/"}))
}
