// file: internals/features/academic/model/course_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseModel struct {
	CourseID        uuid.UUID `gorm:"type:uuid;primaryKey;column:course_id" json:"course_id"`
	CourseName      string    `gorm:"type:varchar(255);not null;column:course_name" json:"course_name"`
	CourseCreatedAt time.Time `gorm:"not null;autoCreateTime;column:course_created_at" json:"course_created_at"`
}

func (CourseModel) TableName() string { return "courses" }

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		id, err := newID()
		if err != nil {
			return err
		}
		m.CourseID = id
	}
	return nil
}

func (m *CourseModel) BeforeSave(tx *gorm.DB) error {
	m.CourseName = strings.TrimSpace(m.CourseName)
	if m.CourseName == "" {
		return errors.New("course_name is required")
	}
	return nil
}
