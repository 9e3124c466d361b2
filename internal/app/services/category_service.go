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

// CategoryService defines the interface for category-related operations
type CategoryService interface {
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context, nameFilter string, page, size int) ([]*models.Category, int64, error)
	UpdateCategory(ctx context.Context, id int64, req *dto.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryServiceImpl struct {
	categoryRepo *repositories.CategoryRepository
}

// NewCategoryService creates a new category service instance
func NewCategoryService(categoryRepo *repositories.CategoryRepository) CategoryService {
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	category := &models.Category{
		Name:        name,
		Description: req.Description,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *categoryServiceImpl) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context, nameFilter string, page, size int) ([]*models.Category, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	return s.categoryRepo.List(ctx, strings.TrimSpace(nameFilter), offset, limit)
}

func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, id int64, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	category := &models.Category{
		ID:          id,
		Name:        name,
		Description: req.Description,
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return s.categoryRepo.GetByID(ctx, id)
}

func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}
