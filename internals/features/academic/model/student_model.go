// file: internals/features/academic/model/student_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID        uuid.UUID `gorm:"type:uuid;primaryKey;column:student_id" json:"student_id"`
	StudentName      string    `gorm:"type:varchar(255);not null;column:student_name" json:"student_name"`
	StudentCreatedAt time.Time `gorm:"not null;autoCreateTime;column:student_created_at" json:"student_created_at"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		id, err := newID()
		if err != nil {
			return err
		}
		m.StudentID = id
	}
	return nil
}

func (m *StudentModel) BeforeSave(tx *gorm.DB) error {
	m.StudentName = strings.TrimSpace(m.StudentName)
	if m.StudentName == "" {
		return errors.New("student_name is required")
	}
	return nil
}
