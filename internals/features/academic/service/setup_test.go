package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "academic_backend/internals/databases"
	"academic_backend/internals/features/academic/model"
)

// newTestDB opens a private in-memory sqlite database with FKs enabled and
// the academic schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// newFileDB opens a WAL-mode sqlite file with a connection pool, so
// concurrent transactions run on separate connections and contend on the
// database locks.
func newFileDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "academic.db")
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", path)

	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(8)
	sqlDB.SetMaxIdleConns(8)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

type fixture struct {
	svc *GradingService
	db  *gorm.DB
	ctx context.Context
}

func newFixture(t *testing.T, cache ReportCache) *fixture {
	db := newTestDB(t)
	return &fixture{svc: NewGradingService(db, cache), db: db, ctx: context.Background()}
}

func (f *fixture) student(t *testing.T, name string) *model.StudentModel {
	t.Helper()
	s, err := f.svc.CreateStudent(f.ctx, name)
	require.NoError(t, err)
	return s
}

func (f *fixture) course(t *testing.T, name string) *model.CourseModel {
	t.Helper()
	c, err := f.svc.CreateCourse(f.ctx, name)
	require.NoError(t, err)
	return c
}

func (f *fixture) enroll(t *testing.T, s *model.StudentModel, c *model.CourseModel) *model.EnrollmentModel {
	t.Helper()
	e, err := f.svc.Enroll(f.ctx, s, c)
	require.NoError(t, err)
	return e
}

func (f *fixture) grade(t *testing.T, s *model.StudentModel, c *model.CourseModel, values ...int) {
	t.Helper()
	for _, v := range values {
		v := v
		_, err := f.svc.AddGrade(f.ctx, s, c, &v, nil)
		require.NoError(t, err)
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }
