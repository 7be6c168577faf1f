package academic

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "academic_backend/internals/databases"
	"academic_backend/internals/features/academic/model"
	"academic_backend/internals/features/academic/service"
)

func newService(t *testing.T, name string) *service.GradingService {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+name+"?mode=memory&cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))
	return service.NewGradingService(db, nil)
}

func TestSeedAcademicFromJSON(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, "seed_fixture")

	require.NoError(t, SeedAcademicFromJSON(ctx, svc, "data_academic.json"))
	// second run reuses rows and skips existing enrollments
	require.NoError(t, SeedAcademicFromJSON(ctx, svc, "data_academic.json"))

	var students, enrollments, grades int64
	require.NoError(t, svc.DB.Model(&model.StudentModel{}).Count(&students).Error)
	require.NoError(t, svc.DB.Model(&model.EnrollmentModel{}).Count(&enrollments).Error)
	require.NoError(t, svc.DB.Model(&model.GradeModel{}).Count(&grades).Error)
	assert.EqualValues(t, 3, students)
	assert.EqualValues(t, 5, enrollments)
	assert.EqualValues(t, 8, grades)

	var bob model.StudentModel
	require.NoError(t, svc.DB.Where("student_name = ?", "Bob").Take(&bob).Error)
	card, err := svc.GetReportCard(ctx, &bob)
	require.NoError(t, err)
	require.Len(t, card.Report, 2)
	assert.Equal(t, "History", card.Report[0].Course)
	assert.Equal(t, []int{96, 89, 78}, card.Report[0].Grades)
	assert.Equal(t, 88, card.Report[0].Average)
	assert.Equal(t, "B+", card.Report[0].Letter)
	assert.Equal(t, "Math", card.Report[1].Course)
	assert.Equal(t, 86, card.Report[1].Average)
}

func TestSeedRejectsBadFixtures(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cases := map[string]string{
		"unknown_student": `{"students":[],"courses":["Math"],"enrollments":[{"student":"Zed","course":"Math"}]}`,
		"bad_letter":      `{"students":["A"],"courses":["Math"],"enrollments":[{"student":"A","course":"Math","grades":["Q"]}]}`,
		"fractional":      `{"students":["A"],"courses":["Math"],"enrollments":[{"student":"A","course":"Math","grades":[90.5]}]}`,
		"not_json":        `{`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			svc := newService(t, "seed_bad_"+name)
			assert.Error(t, SeedAcademicFromJSON(ctx, svc, path))
		})
	}

	assert.Error(t, SeedAcademicFromJSON(ctx, newService(t, "seed_missing"), filepath.Join(dir, "missing.json")))
}
