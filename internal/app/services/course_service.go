package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/okandemir/librarium/internal/app/models"
	"github.com/okandemir/librarium/internal/app/models/dto"
	"github.com/okandemir/librarium/internal/app/repositories"
	"github.com/okandemir/librarium/internal/pkg/apperrors"
	"github.com/okandemir/librarium/internal/pkg/helpers"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context, nameFilter string, year *int, page, size int) ([]*models.Course, int64, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

type courseServiceImpl struct {
	courseRepo *repositories.CourseRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
	}
}

// validateCourse checks the fields shared by create and update
func validateCourse(name string, year int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if year < 1 || year > 4 {
		return "", fmt.Errorf("%w: year must be between 1 and 4", apperrors.ErrValidationFailed)
	}
	return name, nil
}

func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	name, err := validateCourse(req.Name, req.Year)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Year:        req.Year,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

func (s *courseServiceImpl) ListCourses(ctx context.Context, nameFilter string, year *int, page, size int) ([]*models.Course, int64, error) {
	if year != nil && (*year < 1 || *year > 4) {
		return nil, 0, fmt.Errorf("%w: year must be between 1 and 4", apperrors.ErrValidationFailed)
	}
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	return s.courseRepo.List(ctx, strings.TrimSpace(nameFilter), year, offset, limit)
}

func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	name, err := validateCourse(req.Name, req.Year)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Year:        req.Year,
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return s.courseRepo.GetByID(ctx, id)
}

func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	return s.courseRepo.Delete(ctx, id)
}
