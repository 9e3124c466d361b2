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
	"github.com/okandemir/librarium/internal/pkg/logger"
	"github.com/okandemir/librarium/internal/pkg/validation"
)

// StudentService defines the interface for student profile operations
type StudentService interface {
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	ListStudents(ctx context.Context, search string, page, size int) ([]*models.Student, int64, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
	courseRepo  *repositories.CourseRepository
	tokenRepo   *repositories.TokenRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo *repositories.StudentRepository, courseRepo *repositories.CourseRepository, tokenRepo *repositories.TokenRepository) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		tokenRepo:   tokenRepo,
	}
}

func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if student.CourseID != nil {
		course, err := s.courseRepo.GetByID(ctx, *student.CourseID)
		if err == nil {
			student.Course = course
		}
	}

	return student, nil
}

func (s *studentServiceImpl) ListStudents(ctx context.Context, search string, page, size int) ([]*models.Student, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	return s.studentRepo.List(ctx, strings.TrimSpace(search), offset, limit)
}

// UpdateStudent applies a partial update. Only the fields present in
// the request change; the rest keep their stored values.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if !validation.CompiledPatterns.Username.MatchString(username) {
			return nil, fmt.Errorf("%w: invalid username format", apperrors.ErrValidationFailed)
		}
		student.Username = username
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validation.CompiledPatterns.Email.MatchString(email) {
			return nil, fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
		}
		student.Email = email
	}
	if req.PhoneNumber != nil {
		phone := strings.TrimSpace(*req.PhoneNumber)
		if !validation.CompiledPatterns.Phone.MatchString(phone) {
			return nil, fmt.Errorf("%w: invalid phone number format", apperrors.ErrValidationFailed)
		}
		student.PhoneNumber = phone
	}
	if req.CourseID != nil {
		if _, err := s.courseRepo.GetByID(ctx, *req.CourseID); err != nil {
			return nil, err
		}
		student.CourseID = req.CourseID
	}
	deactivated := false
	if req.IsActive != nil {
		deactivated = student.IsActive && !*req.IsActive
		student.IsActive = *req.IsActive
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	// A deactivated account must not keep usable refresh tokens
	if deactivated {
		if err := s.tokenRepo.RevokeAllStudentTokens(ctx, id); err != nil {
			logger.Warn().Err(err).Int64("studentId", id).Msg("Failed to revoke tokens for deactivated student")
		}
	}

	return s.studentRepo.GetByID(ctx, id)
}

func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.tokenRepo.RevokeAllStudentTokens(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("studentId", id).Msg("Failed to revoke tokens for deleted student")
	}
	return s.studentRepo.Delete(ctx, id)
}
