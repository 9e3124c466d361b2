package services

import (
	"context"
	"fmt"
	"time"

	"github.com/okandemir/librarium/internal/app/models"
	"github.com/okandemir/librarium/internal/app/models/dto"
	"github.com/okandemir/librarium/internal/app/repositories"
	"github.com/okandemir/librarium/internal/pkg/apperrors"
	"github.com/okandemir/librarium/internal/pkg/helpers"
)

// FineService defines the interface for fine records. Amounts come
// from outside the system; nothing here computes them.
type FineService interface {
	CreateFine(ctx context.Context, req *dto.CreateFineRequest) (*models.Fine, error)
	GetFineByID(ctx context.Context, id int64) (*models.Fine, error)
	ListFines(ctx context.Context, issuedBookID *int64, page, size int) ([]*models.Fine, int64, error)
}

type fineServiceImpl struct {
	fineRepo *repositories.FineRepository
	loanRepo *repositories.LoanRepository
}

// NewFineService creates a new fine service instance
func NewFineService(fineRepo *repositories.FineRepository, loanRepo *repositories.LoanRepository) FineService {
	return &fineServiceImpl{
		fineRepo: fineRepo,
		loanRepo: loanRepo,
	}
}

func (s *fineServiceImpl) CreateFine(ctx context.Context, req *dto.CreateFineRequest) (*models.Fine, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidationFailed)
	}

	if _, err := s.loanRepo.GetByID(ctx, req.IssuedBookID); err != nil {
		return nil, err
	}

	fine := &models.Fine{
		IssuedBookID: req.IssuedBookID,
		Amount:       req.Amount,
		Date:         time.Now().UTC(),
	}

	if err := s.fineRepo.Create(ctx, fine); err != nil {
		return nil, err
	}

	return fine, nil
}

func (s *fineServiceImpl) GetFineByID(ctx context.Context, id int64) (*models.Fine, error) {
	return s.fineRepo.GetByID(ctx, id)
}

func (s *fineServiceImpl) ListFines(ctx context.Context, issuedBookID *int64, page, size int) ([]*models.Fine, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	return s.fineRepo.List(ctx, issuedBookID, offset, limit)
}
