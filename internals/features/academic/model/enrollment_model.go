// file: internals/features/academic/model/enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollmentModel links one student to one course. The pair is unique
// (uq_enrollments_student_course); duplicates are rejected by the store.
type EnrollmentModel struct {
	EnrollmentID        uuid.UUID `gorm:"type:uuid;primaryKey;column:enrollment_id" json:"enrollment_id"`
	EnrollmentStudentID uuid.UUID `gorm:"type:uuid;not null;column:enrollment_student_id;uniqueIndex:uq_enrollments_student_course,priority:1" json:"enrollment_student_id"`
	EnrollmentCourseID  uuid.UUID `gorm:"type:uuid;not null;column:enrollment_course_id;uniqueIndex:uq_enrollments_student_course,priority:2;index:idx_enrollments_course" json:"enrollment_course_id"`
	EnrollmentCreatedAt time.Time `gorm:"not null;autoCreateTime;column:enrollment_created_at" json:"enrollment_created_at"`

	// belongs-to: FKs live on this table, deleting a student or course cascades here
	EnrollmentStudent *StudentModel `gorm:"foreignKey:EnrollmentStudentID;references:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	EnrollmentCourse  *CourseModel  `gorm:"foreignKey:EnrollmentCourseID;references:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

func (m *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		id, err := newID()
		if err != nil {
			return err
		}
		m.EnrollmentID = id
	}
	return nil
}
