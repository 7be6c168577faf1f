package model

import "github.com/google/uuid"

// newID returns a time-ordered UUIDv7.
func newID() (uuid.UUID, error) { return uuid.NewV7() }

// All returns every model in migration order (parents first).
func All() []any {
	return []any{
		&StudentModel{},
		&CourseModel{},
		&EnrollmentModel{},
		&GradeModel{},
	}
}
