// file: internals/features/academic/controller/academic_handlers.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"academic_backend/internals/features/academic/dto"
	"academic_backend/internals/features/academic/export"
	"academic_backend/internals/features/academic/scale"
	helper "academic_backend/internals/helpers"
)

/* =========================
   STUDENTS
========================= */

// POST /students
func (ctl *AcademicController) CreateStudent(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if !ctl.parseBody(c, &req) {
		return nil
	}
	log.Printf("[GRADING] id=%s creating student name=%q", reqID(c), req.Name)

	s, err := ctl.Svc.CreateStudent(c.UserContext(), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonCreated(c, dto.FromStudentModel(s))
}

// GET /students?page=&per_page=
func (ctl *AcademicController) ListStudents(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Svc.ListStudents(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonList(c, dto.FromStudentModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /students/:id
func (ctl *AcademicController) GetStudent(c *fiber.Ctx) error {
	s, ok := ctl.loadStudent(c, c.Params("id"))
	if !ok {
		return nil
	}
	return helper.JsonOK(c, dto.FromStudentModel(s))
}

// DELETE /students/:id
func (ctl *AcademicController) DeleteStudent(c *fiber.Ctx) error {
	s, ok := ctl.loadStudent(c, c.Params("id"))
	if !ok {
		return nil
	}
	if err := ctl.Svc.DeleteStudent(c.UserContext(), s); err != nil {
		return writeError(c, err)
	}
	return helper.JsonOK(c, dto.DeletedResponse{ID: s.StudentID, Deleted: true})
}

// GET /students/:id/courses
func (ctl *AcademicController) StudentCourses(c *fiber.Ctx) error {
	s, ok := ctl.loadStudent(c, c.Params("id"))
	if !ok {
		return nil
	}
	courses, err := ctl.Svc.GetStudentCourses(c.UserContext(), s)
	if err != nil {
		return writeError(c, err)
	}
	log.Printf("[GRADING] id=%s student=%s courses=%d", reqID(c), s.StudentID, len(courses))
	return helper.JsonOK(c, dto.StudentCoursesResponse{Courses: dto.FromCourseModels(courses)})
}

/* =========================
   COURSES
========================= */

// POST /courses
func (ctl *AcademicController) CreateCourse(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if !ctl.parseBody(c, &req) {
		return nil
	}
	log.Printf("[GRADING] id=%s creating course name=%q", reqID(c), req.Name)

	m, err := ctl.Svc.CreateCourse(c.UserContext(), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonCreated(c, dto.FromCourseModel(m))
}

// GET /courses?page=&per_page=
func (ctl *AcademicController) ListCourses(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Svc.ListCourses(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonList(c, dto.FromCourseModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /courses/:id
func (ctl *AcademicController) GetCourse(c *fiber.Ctx) error {
	m, ok := ctl.loadCourse(c, c.Params("id"))
	if !ok {
		return nil
	}
	return helper.JsonOK(c, dto.FromCourseModel(m))
}

// DELETE /courses/:id
func (ctl *AcademicController) DeleteCourse(c *fiber.Ctx) error {
	m, ok := ctl.loadCourse(c, c.Params("id"))
	if !ok {
		return nil
	}
	if err := ctl.Svc.DeleteCourse(c.UserContext(), m); err != nil {
		return writeError(c, err)
	}
	return helper.JsonOK(c, dto.DeletedResponse{ID: m.CourseID, Deleted: true})
}

// GET /courses/:id/students
func (ctl *AcademicController) CourseStudents(c *fiber.Ctx) error {
	m, ok := ctl.loadCourse(c, c.Params("id"))
	if !ok {
		return nil
	}
	students, err := ctl.Svc.GetCourseStudents(c.UserContext(), m)
	if err != nil {
		return writeError(c, err)
	}
	log.Printf("[GRADING] id=%s course=%s students=%d", reqID(c), m.CourseID, len(students))
	return helper.JsonOK(c, dto.CourseStudentsResponse{Students: dto.FromStudentModels(students)})
}

/* =========================
   ENROLLMENTS
========================= */

// POST /enrollments
func (ctl *AcademicController) CreateEnrollment(c *fiber.Ctx) error {
	var req dto.CreateEnrollmentRequest
	if !ctl.parseBody(c, &req) {
		return nil
	}
	s, m, ok := ctl.loadPair(c, req.StudentID, req.CourseID)
	if !ok {
		return nil
	}

	e, err := ctl.Svc.Enroll(c.UserContext(), s, m)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonCreated(c, dto.FromEnrollmentModel(e))
}

/* =========================
   GRADES
========================= */

// POST /grades
func (ctl *AcademicController) CreateGrade(c *fiber.Ctx) error {
	var req dto.CreateGradeRequest
	if !ctl.parseBody(c, &req) {
		return nil
	}
	s, m, ok := ctl.loadPair(c, req.StudentID, req.CourseID)
	if !ok {
		return nil
	}

	g, err := ctl.Svc.AddGrade(c.UserContext(), s, m, req.Value, req.Letter)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonCreated(c, dto.FromGradeModel(g))
}

// GET /students/:id/courses/:course_id/grades
func (ctl *AcademicController) StudentCourseGrades(c *fiber.Ctx) error {
	s, m, ok := ctl.loadPair(c, c.Params("id"), c.Params("course_id"))
	if !ok {
		return nil
	}
	grades, err := ctl.Svc.GetGrades(c.UserContext(), s, m)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonOK(c, dto.GradesResponse{Grades: grades})
}

// GET /students/:id/courses/:course_id/grades/letters
func (ctl *AcademicController) StudentCourseGradeLetters(c *fiber.Ctx) error {
	s, m, ok := ctl.loadPair(c, c.Params("id"), c.Params("course_id"))
	if !ok {
		return nil
	}
	letters, err := ctl.Svc.GetGradesAsLetters(c.UserContext(), s, m)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonOK(c, dto.GradeLettersResponse{Grades: letters})
}

// GET /students/:id/courses/:course_id/average
func (ctl *AcademicController) StudentCourseAverage(c *fiber.Ctx) error {
	s, m, ok := ctl.loadPair(c, c.Params("id"), c.Params("course_id"))
	if !ok {
		return nil
	}
	avg, err := ctl.Svc.GetAverage(c.UserContext(), s, m)
	if err != nil {
		return writeError(c, err)
	}
	letter, err := scale.ValueToLetter(avg)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonOK(c, dto.AverageResponse{Average: avg, Letter: letter})
}

/* =========================
   REPORT
========================= */

// GET /students/:id/report
func (ctl *AcademicController) StudentReport(c *fiber.Ctx) error {
	s, ok := ctl.loadStudent(c, c.Params("id"))
	if !ok {
		return nil
	}
	card, err := ctl.Svc.GetReportCard(c.UserContext(), s)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonOK(c, dto.FromReportCard(card))
}

// GET /students/:id/report.xlsx
func (ctl *AcademicController) StudentReportXLSX(c *fiber.Ctx) error {
	s, ok := ctl.loadStudent(c, c.Params("id"))
	if !ok {
		return nil
	}
	card, err := ctl.Svc.GetReportCard(c.UserContext(), s)
	if err != nil {
		return writeError(c, err)
	}
	raw, err := export.ReportWorkbook(card)
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(export.ReportFilename(card))
	return c.Status(fiber.StatusOK).Send(raw)
}
