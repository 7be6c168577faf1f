// file: internals/features/academic/model/grade_model.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"academic_backend/internals/features/academic/scale"
)

// GradeModel is immutable once created. Listing order is
// (grade_created_at, grade_id); ids are UUIDv7 so ties keep insertion order.
type GradeModel struct {
	GradeID           uuid.UUID `gorm:"type:uuid;primaryKey;column:grade_id" json:"grade_id"`
	GradeEnrollmentID uuid.UUID `gorm:"type:uuid;not null;column:grade_enrollment_id;index:idx_grades_enrollment_created,priority:1" json:"grade_enrollment_id"`
	GradeValue        int       `gorm:"not null;column:grade_value;check:chk_grades_value,grade_value BETWEEN 0 AND 100" json:"grade_value"`
	GradeCreatedAt    time.Time `gorm:"not null;autoCreateTime;column:grade_created_at;index:idx_grades_enrollment_created,priority:2" json:"grade_created_at"`

	GradeEnrollment *EnrollmentModel `gorm:"foreignKey:GradeEnrollmentID;references:EnrollmentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (GradeModel) TableName() string { return "grades" }

func (m *GradeModel) BeforeCreate(tx *gorm.DB) error {
	// Mirror CHECK: 0 <= grade_value <= 100
	if !scale.InRange(m.GradeValue) {
		return fmt.Errorf("grade_value must be between %d and %d", scale.MinValue, scale.MaxValue)
	}
	if m.GradeID == uuid.Nil {
		id, err := newID()
		if err != nil {
			return err
		}
		m.GradeID = id
	}
	return nil
}
