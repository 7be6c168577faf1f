// file: internals/features/academic/controller/academic_controller.go
package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academic_backend/internals/features/academic/dto"
	"academic_backend/internals/features/academic/model"
	"academic_backend/internals/features/academic/service"
	helper "academic_backend/internals/helpers"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

type AcademicController struct {
	Svc      *service.GradingService
	Validate *validator.Validate
}

func NewAcademicController(svc *service.GradingService, v *validator.Validate) *AcademicController {
	if v == nil {
		v = dto.NewValidator()
	}
	return &AcademicController{Svc: svc, Validate: v}
}

/* =======================================================
   HELPERS
   ======================================================= */

func reqID(c *fiber.Ctx) string {
	if id, ok := c.Locals("reqid").(string); ok {
		return id
	}
	return "-"
}

// writeError is the single mapping from service errors to HTTP responses.
func writeError(c *fiber.Ctx, err error) error {
	var de *service.DomainError
	if errors.As(err, &de) {
		switch {
		case errors.Is(err, service.ErrAlreadyEnrolled):
			return helper.JsonError(c, http.StatusConflict, de.Message)
		case errors.Is(err, service.ErrNotEnrolled):
			return helper.JsonError(c, http.StatusNotFound, de.Message)
		case errors.Is(err, service.ErrInvalidGrade):
			return helper.JsonError(c, http.StatusBadRequest, de.Message)
		}
	}

	status, msg := helper.MapDBError(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] id=%s %s %s: %v", reqID(c), c.Method(), c.Path(), err)
	}
	return helper.JsonError(c, status, msg)
}

// parseBody decodes and validates the JSON body. On false the response has
// already been written.
func (ctl *AcademicController) parseBody(c *fiber.Ctx, out interface{ Normalize() }) bool {
	if err := c.BodyParser(out); err != nil {
		_ = helper.JsonError(c, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	out.Normalize()
	if err := ctl.Validate.Struct(out); err != nil {
		_ = helper.ValidationError(c, err)
		return false
	}
	return true
}

// Path ids that are not UUIDs cannot name a row, so they are a 404 like any
// unknown id.
func (ctl *AcademicController) loadStudent(c *fiber.Ctx, raw string) (*model.StudentModel, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = helper.JsonError(c, http.StatusNotFound, "Student not found")
		return nil, false
	}
	s, err := ctl.Svc.GetStudent(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = helper.JsonError(c, http.StatusNotFound, "Student not found")
		} else {
			_ = writeError(c, err)
		}
		return nil, false
	}
	return s, true
}

func (ctl *AcademicController) loadCourse(c *fiber.Ctx, raw string) (*model.CourseModel, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = helper.JsonError(c, http.StatusNotFound, "Course not found")
		return nil, false
	}
	m, err := ctl.Svc.GetCourse(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = helper.JsonError(c, http.StatusNotFound, "Course not found")
		} else {
			_ = writeError(c, err)
		}
		return nil, false
	}
	return m, true
}

// loadPair resolves student then course, reporting the first one missing.
func (ctl *AcademicController) loadPair(c *fiber.Ctx, studentID, courseID string) (*model.StudentModel, *model.CourseModel, bool) {
	s, ok := ctl.loadStudent(c, studentID)
	if !ok {
		return nil, nil, false
	}
	m, ok := ctl.loadCourse(c, courseID)
	if !ok {
		return nil, nil, false
	}
	return s, m, true
}
