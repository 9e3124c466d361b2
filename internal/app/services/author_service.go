package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okandemir/librarium/internal/app/models"
	"github.com/okandemir/librarium/internal/app/models/dto"
	"github.com/okandemir/librarium/internal/app/repositories"
	"github.com/okandemir/librarium/internal/pkg/apperrors"
	"github.com/okandemir/librarium/internal/pkg/helpers"
	"github.com/okandemir/librarium/internal/pkg/validation"
)

// AuthorService defines the interface for author-related operations
type AuthorService interface {
	CreateAuthor(ctx context.Context, req *dto.CreateAuthorRequest) (*models.Author, error)
	GetAuthorByID(ctx context.Context, id int64) (*models.Author, error)
	ListAuthors(ctx context.Context, nameFilter string, page, size int) ([]*models.Author, int64, error)
	UpdateAuthor(ctx context.Context, id int64, req *dto.UpdateAuthorRequest) (*models.Author, error)
	DeleteAuthor(ctx context.Context, id int64) error
}

// authorServiceImpl implements the AuthorService interface
type authorServiceImpl struct {
	authorRepo *repositories.AuthorRepository
}

// NewAuthorService creates a new author service instance
func NewAuthorService(authorRepo *repositories.AuthorRepository) AuthorService {
	return &authorServiceImpl{
		authorRepo: authorRepo,
	}
}

func (s *authorServiceImpl) CreateAuthor(ctx context.Context, req *dto.CreateAuthorRequest) (*models.Author, error) {
	author, err := authorFromRequest(req.Name, req.Email, req.BirthDate, req.Nationality)
	if err != nil {
		return nil, err
	}

	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, err
	}

	return author, nil
}

func (s *authorServiceImpl) GetAuthorByID(ctx context.Context, id int64) (*models.Author, error) {
	return s.authorRepo.GetByID(ctx, id)
}

func (s *authorServiceImpl) ListAuthors(ctx context.Context, nameFilter string, page, size int) ([]*models.Author, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	return s.authorRepo.List(ctx, strings.TrimSpace(nameFilter), offset, limit)
}

func (s *authorServiceImpl) UpdateAuthor(ctx context.Context, id int64, req *dto.UpdateAuthorRequest) (*models.Author, error) {
	author, err := authorFromRequest(req.Name, req.Email, req.BirthDate, req.Nationality)
	if err != nil {
		return nil, err
	}
	author.ID = id

	if err := s.authorRepo.Update(ctx, author); err != nil {
		return nil, err
	}

	return s.authorRepo.GetByID(ctx, id)
}

func (s *authorServiceImpl) DeleteAuthor(ctx context.Context, id int64) error {
	return s.authorRepo.Delete(ctx, id)
}

// authorFromRequest validates request fields and builds the model
func authorFromRequest(name, email string, birthDate, nationality *string) (*models.Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	if !validation.CompiledPatterns.Email.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}

	author := &models.Author{
		Name:        name,
		Email:       strings.ToLower(strings.TrimSpace(email)),
		Nationality: nationality,
	}

	if birthDate != nil && *birthDate != "" {
		parsed, err := helpers.ParseDate(*birthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: birthDate must use the YYYY-MM-DD format", apperrors.ErrValidationFailed)
		}
		if parsed.After(time.Now()) {
			return nil, fmt.Errorf("%w: birthDate cannot be in the future", apperrors.ErrValidationFailed)
		}
		author.BirthDate = &parsed
	}

	return author, nil
}
