// file: internals/features/academic/dto/academic_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	"academic_backend/internals/features/academic/model"
	"academic_backend/internals/features/academic/service"
)

/* =========================
   REQUESTS
========================= */

type CreateStudentRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateCourseRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateEnrollmentRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	CourseID  string `json:"course_id" validate:"required,uuid"`
}

// CreateGradeRequest: exactly one of Value / Letter; the service enforces it.
type CreateGradeRequest struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	CourseID  string  `json:"course_id" validate:"required,uuid"`
	Value     *int    `json:"value"`
	Letter    *string `json:"letter"`
}

func (r *CreateStudentRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }
func (r *CreateCourseRequest) Normalize()  { r.Name = strings.TrimSpace(r.Name) }

func (r *CreateEnrollmentRequest) Normalize() {
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.CourseID = strings.TrimSpace(r.CourseID)
}

func (r *CreateGradeRequest) Normalize() {
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.CourseID = strings.TrimSpace(r.CourseID)
	if r.Letter != nil {
		l := strings.TrimSpace(*r.Letter)
		r.Letter = &l
	}
}

/* =========================
   RESPONSES
========================= */

type StudentResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CourseResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type EnrollmentResponse struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"student_id"`
	CourseID  uuid.UUID `json:"course_id"`
}

type GradeResponse struct {
	ID    uuid.UUID `json:"id"`
	Value int       `json:"value"`
}

type StudentCoursesResponse struct {
	Courses []CourseResponse `json:"courses"`
}

type CourseStudentsResponse struct {
	Students []StudentResponse `json:"students"`
}

type GradesResponse struct {
	Grades []int `json:"grades"`
}

type GradeLettersResponse struct {
	Grades []string `json:"grades"`
}

type AverageResponse struct {
	Average int    `json:"average"`
	Letter  string `json:"letter"`
}

type ReportEntryResponse struct {
	Course  string `json:"course"`
	Grades  []int  `json:"grades"`
	Average int    `json:"average"`
	Letter  string `json:"letter"`
}

type ReportCardResponse struct {
	Student string                `json:"student"`
	Report  []ReportEntryResponse `json:"report"`
}

type DeletedResponse struct {
	ID      uuid.UUID `json:"id"`
	Deleted bool      `json:"deleted"`
}

/* =========================
   MAPPERS
========================= */

func FromStudentModel(m *model.StudentModel) StudentResponse {
	return StudentResponse{ID: m.StudentID, Name: m.StudentName}
}

func FromCourseModel(m *model.CourseModel) CourseResponse {
	return CourseResponse{ID: m.CourseID, Name: m.CourseName}
}

func FromEnrollmentModel(m *model.EnrollmentModel) EnrollmentResponse {
	return EnrollmentResponse{ID: m.EnrollmentID, StudentID: m.EnrollmentStudentID, CourseID: m.EnrollmentCourseID}
}

func FromGradeModel(m *model.GradeModel) GradeResponse {
	return GradeResponse{ID: m.GradeID, Value: m.GradeValue}
}

func FromStudentModels(rows []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromStudentModel(&rows[i]))
	}
	return out
}

func FromCourseModels(rows []model.CourseModel) []CourseResponse {
	out := make([]CourseResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromCourseModel(&rows[i]))
	}
	return out
}

func FromReportCard(card *service.ReportCard) ReportCardResponse {
	entries := make([]ReportEntryResponse, 0, len(card.Report))
	for _, e := range card.Report {
		grades := e.Grades
		if grades == nil {
			grades = []int{}
		}
		entries = append(entries, ReportEntryResponse{
			Course:  e.Course,
			Grades:  grades,
			Average: e.Average,
			Letter:  e.Letter,
		})
	}
	return ReportCardResponse{Student: card.Student, Report: entries}
}
