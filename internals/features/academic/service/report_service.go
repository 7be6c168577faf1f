package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"academic_backend/internals/features/academic/model"
	"academic_backend/internals/features/academic/scale"
)

type ReportEntry struct {
	CourseID uuid.UUID `json:"course_id"`
	Course   string    `json:"course"`
	Grades   []int     `json:"grades"`
	Average  int       `json:"average"`
	Letter   string    `json:"letter"`
}

type ReportCard struct {
	StudentID uuid.UUID     `json:"student_id"`
	Student   string        `json:"student"`
	Report    []ReportEntry `json:"report"`
}

// ReportStamp summarises everything a student's report is built from.
// Enrollments are only inserted or deleted and grades are immutable, so any
// write that changes the report changes at least one field.
type ReportStamp struct {
	Enrollments    int64  `json:"enrollments" gorm:"column:enrollments"`
	LastEnrollment string `json:"last_enrollment" gorm:"column:last_enrollment"`
	Grades         int64  `json:"grades" gorm:"column:grades"`
	GradeSum       int64  `json:"grade_sum" gorm:"column:grade_sum"`
	LastGrade      string `json:"last_grade" gorm:"column:last_grade"`
}

type reportEnrollmentRow struct {
	EnrollmentID uuid.UUID
	CourseID     uuid.UUID
	CourseName   string
}

type reportGradeRow struct {
	GradeEnrollmentID uuid.UUID
	GradeValue        int
}

func reportStamp(tx *gorm.DB, studentID uuid.UUID) (ReportStamp, error) {
	var st ReportStamp
	if err := tx.Raw(
		`SELECT COUNT(*) AS enrollments,
		        COALESCE(MAX(CAST(enrollment_id AS TEXT)), '') AS last_enrollment
		   FROM enrollments
		  WHERE enrollment_student_id = ?`, studentID,
	).Scan(&st).Error; err != nil {
		return st, err
	}

	var g ReportStamp
	if err := tx.Raw(
		`SELECT COUNT(*) AS grades,
		        COALESCE(SUM(grades.grade_value), 0) AS grade_sum,
		        COALESCE(MAX(CAST(grades.grade_id AS TEXT)), '') AS last_grade
		   FROM grades
		   JOIN enrollments ON enrollments.enrollment_id = grades.grade_enrollment_id
		  WHERE enrollments.enrollment_student_id = ?`, studentID,
	).Scan(&g).Error; err != nil {
		return st, err
	}
	st.Grades, st.GradeSum, st.LastGrade = g.Grades, g.GradeSum, g.LastGrade
	return st, nil
}

// GetReportCard builds one entry per enrollment, sorted by course name.
// Courses without grades are still listed with average 0 ("F").
//
// The stamp is read before the card is built: a write landing in between
// makes the cached card newer than its stamp, which only costs a rebuild.
func (s *GradingService) GetReportCard(ctx context.Context, student *model.StudentModel) (*ReportCard, error) {
	db := s.DB.WithContext(ctx)
	stamp, err := reportStamp(db, student.StudentID)
	if err != nil {
		return nil, fmt.Errorf("report stamp: %w", err)
	}

	if cached, ok := s.Cache.Get(ctx, student.StudentID); ok {
		if cached.Stamp == stamp {
			return cached.Card, nil
		}
		log.Printf("[GRADING] cached report for student=%s is stale, rebuilding", student.StudentID)
	}

	card, err := s.buildReportCard(ctx, student)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, &CachedReport{Stamp: stamp, Card: card})
	log.Printf("[GRADING] report card student=%s courses=%d", student.StudentID, len(card.Report))
	return card, nil
}

func (s *GradingService) buildReportCard(ctx context.Context, student *model.StudentModel) (*ReportCard, error) {
	var (
		enrollments []reportEnrollmentRow
		grades      []reportGradeRow
	)
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := tx.Table("enrollments").
			Select("enrollments.enrollment_id, courses.course_id, courses.course_name").
			Joins("JOIN courses ON courses.course_id = enrollments.enrollment_course_id").
			Where("enrollments.enrollment_student_id = ?", student.StudentID).
			Order("courses.course_name ASC").Order("enrollments.enrollment_id ASC").
			Scan(&enrollments).Error; err != nil {
			return err
		}
		if len(enrollments) == 0 {
			return nil
		}
		ids := make([]uuid.UUID, 0, len(enrollments))
		for _, e := range enrollments {
			ids = append(ids, e.EnrollmentID)
		}
		return tx.Model(&model.GradeModel{}).
			Select("grade_enrollment_id, grade_value").
			Where("grade_enrollment_id IN ?", ids).
			Order("grade_created_at ASC").Order("grade_id ASC").
			Scan(&grades).Error
	})
	if err != nil {
		return nil, fmt.Errorf("report card: %w", err)
	}

	byEnrollment := make(map[uuid.UUID][]int, len(enrollments))
	for _, g := range grades {
		byEnrollment[g.GradeEnrollmentID] = append(byEnrollment[g.GradeEnrollmentID], g.GradeValue)
	}

	card := &ReportCard{
		StudentID: student.StudentID,
		Student:   student.StudentName,
		Report:    make([]ReportEntry, 0, len(enrollments)),
	}
	for _, e := range enrollments {
		values := byEnrollment[e.EnrollmentID]
		if values == nil {
			values = []int{}
		}
		avg := scale.Average(values)
		letter, err := scale.ValueToLetter(avg)
		if err != nil {
			return nil, err
		}
		card.Report = append(card.Report, ReportEntry{
			CourseID: e.CourseID,
			Course:   e.CourseName,
			Grades:   values,
			Average:  avg,
			Letter:   letter,
		})
	}
	return card, nil
}
