package route

import (
	"github.com/gofiber/fiber/v2"

	"academic_backend/internals/features/academic/controller"
	"academic_backend/internals/features/academic/dto"
	"academic_backend/internals/features/academic/service"
)

func AcademicRoutes(r fiber.Router, svc *service.GradingService) {
	ctl := controller.NewAcademicController(svc, dto.NewValidator())

	students := r.Group("/students")
	students.Post("/", ctl.CreateStudent)
	students.Get("/", ctl.ListStudents)
	students.Get("/:id", ctl.GetStudent)
	students.Delete("/:id", ctl.DeleteStudent)
	students.Get("/:id/courses", ctl.StudentCourses)
	students.Get("/:id/courses/:course_id/grades", ctl.StudentCourseGrades)
	students.Get("/:id/courses/:course_id/grades/letters", ctl.StudentCourseGradeLetters)
	students.Get("/:id/courses/:course_id/average", ctl.StudentCourseAverage)
	students.Get("/:id/report", ctl.StudentReport)
	students.Get("/:id/report.xlsx", ctl.StudentReportXLSX)

	courses := r.Group("/courses")
	courses.Post("/", ctl.CreateCourse)
	courses.Get("/", ctl.ListCourses)
	courses.Get("/:id", ctl.GetCourse)
	courses.Delete("/:id", ctl.DeleteCourse)
	courses.Get("/:id/students", ctl.CourseStudents)

	r.Post("/enrollments", ctl.CreateEnrollment)
	r.Post("/grades", ctl.CreateGrade)
}
