package academic

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"academic_backend/internals/features/academic/model"
	"academic_backend/internals/features/academic/service"
)

// AcademicSeed is the fixture layout; grades mix numbers and letters.
type AcademicSeed struct {
	Students    []string         `json:"students"`
	Courses     []string         `json:"courses"`
	Enrollments []EnrollmentSeed `json:"enrollments"`
}

type EnrollmentSeed struct {
	Student string `json:"student"`
	Course  string `json:"course"`
	Grades  []any  `json:"grades"`
}

// SeedAcademicFromJSON replays the fixture through the grading service so
// every grade rule applies. Rows that already exist by name are reused and
// duplicate enrollments are skipped.
func SeedAcademicFromJSON(ctx context.Context, svc *service.GradingService, filePath string) error {
	log.Println("[SEED] reading", filePath)

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed AcademicSeed
	if err := sonic.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}

	students := make(map[string]*model.StudentModel, len(seed.Students))
	for _, name := range seed.Students {
		s, err := findOrCreateStudent(ctx, svc, name)
		if err != nil {
			return err
		}
		students[name] = s
	}

	courses := make(map[string]*model.CourseModel, len(seed.Courses))
	for _, name := range seed.Courses {
		c, err := findOrCreateCourse(ctx, svc, name)
		if err != nil {
			return err
		}
		courses[name] = c
	}

	for _, e := range seed.Enrollments {
		s, ok := students[e.Student]
		if !ok {
			return fmt.Errorf("enrollment references unknown student %q", e.Student)
		}
		c, ok := courses[e.Course]
		if !ok {
			return fmt.Errorf("enrollment references unknown course %q", e.Course)
		}

		if _, err := svc.Enroll(ctx, s, c); err != nil {
			if errors.Is(err, service.ErrAlreadyEnrolled) {
				log.Printf("[SEED] %v, skipping", err)
				continue
			}
			return err
		}

		for _, g := range e.Grades {
			value, letter, err := gradeInput(g)
			if err != nil {
				return fmt.Errorf("%s/%s: %w", e.Student, e.Course, err)
			}
			if _, err := svc.AddGrade(ctx, s, c, value, letter); err != nil {
				return fmt.Errorf("%s/%s: %w", e.Student, e.Course, err)
			}
		}
		log.Printf("[SEED] %s enrolled in %s with %d grades", e.Student, e.Course, len(e.Grades))
	}
	return nil
}

func gradeInput(g any) (*int, *string, error) {
	switch v := g.(type) {
	case float64:
		if v != float64(int(v)) {
			return nil, nil, fmt.Errorf("grade %v is not an integer", v)
		}
		n := int(v)
		return &n, nil, nil
	case string:
		return nil, &v, nil
	default:
		return nil, nil, fmt.Errorf("unsupported grade %v (%T)", g, g)
	}
}

func findOrCreateStudent(ctx context.Context, svc *service.GradingService, name string) (*model.StudentModel, error) {
	var existing model.StudentModel
	err := svc.DB.WithContext(ctx).Where("student_name = ?", name).Take(&existing).Error
	if err == nil {
		log.Printf("[SEED] student %q exists, reusing", name)
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return svc.CreateStudent(ctx, name)
}

func findOrCreateCourse(ctx context.Context, svc *service.GradingService, name string) (*model.CourseModel, error) {
	var existing model.CourseModel
	err := svc.DB.WithContext(ctx).Where("course_name = ?", name).Take(&existing).Error
	if err == nil {
		log.Printf("[SEED] course %q exists, reusing", name)
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return svc.CreateCourse(ctx, name)
}
