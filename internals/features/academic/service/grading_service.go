// file: internals/features/academic/service/grading_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"academic_backend/internals/features/academic/model"
	"academic_backend/internals/features/academic/scale"
	helper "academic_backend/internals/helpers"
)

// GradingService owns every write and aggregate read on the academic tables.
// Each method runs as one transaction; the store's unique index is the only
// guard against duplicate enrollments.
type GradingService struct {
	DB    *gorm.DB
	Cache ReportCache
}

func NewGradingService(db *gorm.DB, cache ReportCache) *GradingService {
	if cache == nil {
		cache = NoopReportCache{}
	}
	return &GradingService{DB: db, Cache: cache}
}

func (s *GradingService) tx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.DB.WithContext(ctx).Transaction(fn)
}

// invalidate drops cached reports after a committed write. A failed drop is
// only logged: GetReportCard rejects any entry whose stamp no longer matches.
func (s *GradingService) invalidate(ctx context.Context, studentIDs ...uuid.UUID) {
	if err := s.Cache.Invalidate(ctx, studentIDs...); err != nil {
		log.Printf("[REDIS] %v", err)
	}
}

/* ============================ STUDENTS / COURSES ============================ */

func (s *GradingService) CreateStudent(ctx context.Context, name string) (*model.StudentModel, error) {
	m := &model.StudentModel{StudentName: name}
	if err := s.tx(ctx, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(m).Error
	}); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	log.Printf("[GRADING] student created id=%s name=%q", m.StudentID, m.StudentName)
	return m, nil
}

func (s *GradingService) CreateCourse(ctx context.Context, name string) (*model.CourseModel, error) {
	m := &model.CourseModel{CourseName: name}
	if err := s.tx(ctx, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(m).Error
	}); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	log.Printf("[GRADING] course created id=%s name=%q", m.CourseID, m.CourseName)
	return m, nil
}

// GetStudent returns gorm.ErrRecordNotFound for unknown ids.
func (s *GradingService) GetStudent(ctx context.Context, id uuid.UUID) (*model.StudentModel, error) {
	var m model.StudentModel
	if err := s.DB.WithContext(ctx).First(&m, "student_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// GetCourse returns gorm.ErrRecordNotFound for unknown ids.
func (s *GradingService) GetCourse(ctx context.Context, id uuid.UUID) (*model.CourseModel, error) {
	var m model.CourseModel
	if err := s.DB.WithContext(ctx).First(&m, "course_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GradingService) ListStudents(ctx context.Context, p helper.Paging) ([]model.StudentModel, int64, error) {
	var (
		rows  []model.StudentModel
		total int64
	)
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&model.StudentModel{}).Count(&total).Error; err != nil {
			return err
		}
		return tx.Order("student_name ASC").Order("student_id ASC").
			Offset(p.Offset).Limit(p.Limit).
			Find(&rows).Error
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}
	return rows, total, nil
}

func (s *GradingService) ListCourses(ctx context.Context, p helper.Paging) ([]model.CourseModel, int64, error) {
	var (
		rows  []model.CourseModel
		total int64
	)
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&model.CourseModel{}).Count(&total).Error; err != nil {
			return err
		}
		return tx.Order("course_name ASC").Order("course_id ASC").
			Offset(p.Offset).Limit(p.Limit).
			Find(&rows).Error
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}
	return rows, total, nil
}

// DeleteStudent removes the student; enrollments and grades go with it
// through ON DELETE CASCADE.
func (s *GradingService) DeleteStudent(ctx context.Context, student *model.StudentModel) error {
	err := s.tx(ctx, func(tx *gorm.DB) error {
		res := tx.Delete(&model.StudentModel{}, "student_id = ?", student.StudentID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, student.StudentID)
	log.Printf("[GRADING] student deleted id=%s", student.StudentID)
	return nil
}

func (s *GradingService) DeleteCourse(ctx context.Context, course *model.CourseModel) error {
	var affected []uuid.UUID
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&model.EnrollmentModel{}).
			Where("enrollment_course_id = ?", course.CourseID).
			Pluck("enrollment_student_id", &affected).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.CourseModel{}, "course_id = ?", course.CourseID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, affected...)
	log.Printf("[GRADING] course deleted id=%s (students affected=%d)", course.CourseID, len(affected))
	return nil
}

/* ============================ ENROLLMENT ============================ */

// Enroll inserts the (student, course) pair. A duplicate is detected from the
// unique index at insert time, never by a prior lookup.
func (s *GradingService) Enroll(ctx context.Context, student *model.StudentModel, course *model.CourseModel) (*model.EnrollmentModel, error) {
	m := &model.EnrollmentModel{
		EnrollmentStudentID: student.StudentID,
		EnrollmentCourseID:  course.CourseID,
	}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(m).Error
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			log.Printf("[GRADING] duplicate enrollment student=%s course=%s", student.StudentID, course.CourseID)
			return nil, newDomainError(ErrAlreadyEnrolled,
				fmt.Sprintf("%s is already enrolled in %s", student.StudentName, course.CourseName), err)
		}
		return nil, fmt.Errorf("enroll: %w", err)
	}
	s.invalidate(ctx, student.StudentID)
	log.Printf("[GRADING] enrolled id=%s student=%s course=%s", m.EnrollmentID, student.StudentID, course.CourseID)
	return m, nil
}

func (s *GradingService) GetStudentCourses(ctx context.Context, student *model.StudentModel) ([]model.CourseModel, error) {
	courses := make([]model.CourseModel, 0)
	err := s.DB.WithContext(ctx).
		Model(&model.CourseModel{}).
		Joins("JOIN enrollments ON enrollments.enrollment_course_id = courses.course_id").
		Where("enrollments.enrollment_student_id = ?", student.StudentID).
		Order("courses.course_name ASC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("student courses: %w", err)
	}
	return courses, nil
}

func (s *GradingService) GetCourseStudents(ctx context.Context, course *model.CourseModel) ([]model.StudentModel, error) {
	students := make([]model.StudentModel, 0)
	err := s.DB.WithContext(ctx).
		Model(&model.StudentModel{}).
		Joins("JOIN enrollments ON enrollments.enrollment_student_id = students.student_id").
		Where("enrollments.enrollment_course_id = ?", course.CourseID).
		Order("students.student_name ASC").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("course students: %w", err)
	}
	return students, nil
}

func findEnrollment(tx *gorm.DB, student *model.StudentModel, course *model.CourseModel) (*model.EnrollmentModel, error) {
	var e model.EnrollmentModel
	err := tx.Where("enrollment_student_id = ? AND enrollment_course_id = ?", student.StudentID, course.CourseID).
		Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newDomainError(ErrNotEnrolled,
			fmt.Sprintf("%s is not enrolled in %s", student.StudentName, course.CourseName), nil)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

/* ============================ GRADES ============================ */

// resolveGradeValue applies the input rules: exactly one of value/letter,
// letters become their band maximum, result must lie in [0,100].
func resolveGradeValue(value *int, letter *string) (int, error) {
	if value != nil && letter != nil {
		return 0, newDomainError(ErrInvalidGrade, "Provide either value or letter, not both", nil)
	}
	if value == nil && letter == nil {
		return 0, newDomainError(ErrInvalidGrade, "Provide either value or letter", nil)
	}

	var v int
	if letter != nil {
		lv, err := scale.LetterToValue(*letter)
		if err != nil {
			return 0, newDomainError(ErrInvalidGrade, fmt.Sprintf("Invalid letter grade: %s", *letter), err)
		}
		v = lv
	} else {
		v = *value
	}

	if !scale.InRange(v) {
		return 0, newDomainError(ErrInvalidGrade,
			fmt.Sprintf("Grade value must be between %d and %d, got %d", scale.MinValue, scale.MaxValue, v), nil)
	}
	return v, nil
}

func (s *GradingService) AddGrade(ctx context.Context, student *model.StudentModel, course *model.CourseModel, value *int, letter *string) (*model.GradeModel, error) {
	v, err := resolveGradeValue(value, letter)
	if err != nil {
		return nil, err
	}

	var g *model.GradeModel
	err = s.tx(ctx, func(tx *gorm.DB) error {
		e, err := findEnrollment(tx, student, course)
		if err != nil {
			return err
		}
		g = &model.GradeModel{GradeEnrollmentID: e.EnrollmentID, GradeValue: v}
		return tx.Omit(clause.Associations).Create(g).Error
	})
	if err != nil {
		if IsDomainError(err) {
			log.Printf("[GRADING] add grade rejected student=%s course=%s: %v", student.StudentID, course.CourseID, err)
			return nil, err
		}
		return nil, fmt.Errorf("add grade: %w", err)
	}
	s.invalidate(ctx, student.StudentID)
	log.Printf("[GRADING] grade added id=%s value=%d student=%s course=%s", g.GradeID, g.GradeValue, student.StudentID, course.CourseID)
	return g, nil
}

func gradeValues(tx *gorm.DB, enrollmentID uuid.UUID) ([]int, error) {
	values := make([]int, 0)
	err := tx.Model(&model.GradeModel{}).
		Where("grade_enrollment_id = ?", enrollmentID).
		Order("grade_created_at ASC").Order("grade_id ASC").
		Pluck("grade_value", &values).Error
	return values, err
}

// GetGrades lists grade values in the order they were recorded.
func (s *GradingService) GetGrades(ctx context.Context, student *model.StudentModel, course *model.CourseModel) ([]int, error) {
	var values []int
	err := s.tx(ctx, func(tx *gorm.DB) error {
		e, err := findEnrollment(tx, student, course)
		if err != nil {
			return err
		}
		values, err = gradeValues(tx, e.EnrollmentID)
		return err
	})
	if err != nil {
		if IsDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("get grades: %w", err)
	}
	return values, nil
}

func (s *GradingService) GetGradesAsLetters(ctx context.Context, student *model.StudentModel, course *model.CourseModel) ([]string, error) {
	values, err := s.GetGrades(ctx, student, course)
	if err != nil {
		return nil, err
	}
	letters := make([]string, 0, len(values))
	for _, v := range values {
		l, err := scale.ValueToLetter(v)
		if err != nil {
			return nil, err
		}
		letters = append(letters, l)
	}
	return letters, nil
}

// GetAverage is the half-to-even rounded mean; 0 when there are no grades.
func (s *GradingService) GetAverage(ctx context.Context, student *model.StudentModel, course *model.CourseModel) (int, error) {
	values, err := s.GetGrades(ctx, student, course)
	if err != nil {
		return 0, err
	}
	return scale.Average(values), nil
}

func (s *GradingService) GetAverageLetter(ctx context.Context, student *model.StudentModel, course *model.CourseModel) (string, error) {
	avg, err := s.GetAverage(ctx, student, course)
	if err != nil {
		return "", err
	}
	return scale.ValueToLetter(avg)
}
