package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okandemir/librarium/internal/app/models"
	"github.com/okandemir/librarium/internal/app/models/dto"
	"github.com/okandemir/librarium/internal/app/repositories"
	"github.com/okandemir/librarium/internal/pkg/apperrors"
	"github.com/okandemir/librarium/internal/pkg/auth"
	"github.com/okandemir/librarium/internal/pkg/logger"
	"github.com/okandemir/librarium/internal/pkg/validation"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterStudentRequest) (*models.Student, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authServiceImpl struct {
	studentRepo *repositories.StudentRepository
	courseRepo  *repositories.CourseRepository
	tokenRepo   *repositories.TokenRepository
	jwtService  *auth.JWTService
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	studentRepo *repositories.StudentRepository,
	courseRepo *repositories.CourseRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
) AuthService {
	return &authServiceImpl{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		tokenRepo:   tokenRepo,
		jwtService:  jwtService,
	}
}

// Register creates a new student account. Registration is open; new
// accounts are always plain students, never admins.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterStudentRequest) (*models.Student, error) {
	if err := s.validateRegistration(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	exists, err := s.studentRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	exists, err = s.studentRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	if req.CourseID != nil {
		if _, err := s.courseRepo.GetByID(ctx, *req.CourseID); err != nil {
			return nil, err
		}
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := &models.Student{
		Username:         username,
		Email:            email,
		Password:         hashedPassword,
		CourseID:         req.CourseID,
		EnrollmentNumber: strings.ToUpper(strings.TrimSpace(req.EnrollmentNumber)),
		PhoneNumber:      strings.TrimSpace(req.PhoneNumber),
		IsActive:         true,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	logger.Info().Int64("studentID", student.ID).Str("username", student.Username).Msg("Student registered")

	return student, nil
}

// Login verifies credentials and hands out an access/refresh pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(student.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !student.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	tokens, err := s.issueTokens(ctx, student)
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.UpdateLastLogin(ctx, student.ID, time.Now()); err != nil {
		logger.Warn().Err(err).Int64("studentID", student.ID).Msg("Failed to record last login")
	}

	return tokens, nil
}

// RefreshToken rotates a refresh token: the presented token is revoked
// and a fresh pair is issued
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	studentID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !student.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, student)
}

// Logout revokes the presented refresh token. Access tokens simply
// expire; there is no server-side access token state.
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokenRepo.RevokeToken(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, student *models.Student) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(student)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	err = s.tokenRepo.CreateToken(ctx, refreshToken, student.ID, s.jwtService.GetRefreshTokenExpiry())
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
	}, nil
}

func (s *authServiceImpl) validateRegistration(req *dto.RegisterStudentRequest) error {
	if !validation.CompiledPatterns.Username.MatchString(strings.TrimSpace(req.Username)) {
		return fmt.Errorf("%w: username must be 3-30 letters, digits, dots or underscores", apperrors.ErrValidationFailed)
	}
	if !validation.CompiledPatterns.Email.MatchString(strings.ToLower(strings.TrimSpace(req.Email))) {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}
	if len(req.Password) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}
	if !validation.CompiledPatterns.Enrollment.MatchString(strings.ToUpper(strings.TrimSpace(req.EnrollmentNumber))) {
		return fmt.Errorf("%w: invalid enrollment number format", apperrors.ErrValidationFailed)
	}
	if !validation.CompiledPatterns.Phone.MatchString(strings.TrimSpace(req.PhoneNumber)) {
		return fmt.Errorf("%w: invalid phone number format", apperrors.ErrValidationFailed)
	}
	return nil
}
