package services

import (
	"context"
	"fmt"
	"time"

	"github.com/okandemir/librarium/internal/app/models"
	"github.com/okandemir/librarium/internal/app/repositories"
	"github.com/okandemir/librarium/internal/pkg/apperrors"
	"github.com/okandemir/librarium/internal/pkg/helpers"
	"github.com/okandemir/librarium/internal/pkg/logger"
)

// LoanPeriodDays is the fixed loan period. A book issued today is due
// this many days from the issue date.
const LoanPeriodDays = 10

// LendingService defines the interface for issuing and returning books
type LendingService interface {
	IssueBook(ctx context.Context, studentID, bookID int64) (*models.IssuedBook, error)
	ReturnBook(ctx context.Context, loanID int64) (*models.IssuedBook, error)
	GetLoanByID(ctx context.Context, id int64) (*models.IssuedBook, error)
	ListLoans(ctx context.Context, filter repositories.LoanFilter, page, size int) ([]*models.IssuedBook, int64, error)
}

type lendingServiceImpl struct {
	store    repositories.LendingStore
	loanRepo *repositories.LoanRepository

	// now is swappable in tests
	now func() time.Time
}

// NewLendingService creates a new lending service instance
func NewLendingService(store repositories.LendingStore, loanRepo *repositories.LoanRepository) LendingService {
	return &lendingServiceImpl{
		store:    store,
		loanRepo: loanRepo,
		now:      time.Now,
	}
}

// IssueBook lends one copy of a book to a student. The quantity check,
// the duplicate-loan check, the decrement and the loan insert all
// happen inside one transaction with the book row locked, so two
// students racing for the last copy cannot both succeed.
func (s *lendingServiceImpl) IssueBook(ctx context.Context, studentID, bookID int64) (*models.IssuedBook, error) {
	if studentID <= 0 {
		return nil, fmt.Errorf("%w: missing student identity", apperrors.ErrValidationFailed)
	}

	var loan *models.IssuedBook
	err := s.store.WithinTransaction(ctx, func(tx repositories.LendingTx) error {
		book, err := tx.BookForUpdate(ctx, bookID)
		if err != nil {
			return err
		}

		if book.Quantity <= 0 {
			return fmt.Errorf("%w: %q", apperrors.ErrBookUnavailable, book.Title)
		}

		active, err := tx.HasActiveLoan(ctx, studentID, bookID)
		if err != nil {
			return err
		}
		if active {
			return apperrors.ErrLoanAlreadyActive
		}

		if err := tx.AdjustBookQuantity(ctx, bookID, -1); err != nil {
			return err
		}

		issueDate := helpers.Today(s.now())
		loan = &models.IssuedBook{
			StudentID: studentID,
			BookID:    bookID,
			IssueDate: issueDate,
			DueDate:   issueDate.AddDate(0, 0, LoanPeriodDays),
		}
		return tx.CreateLoan(ctx, loan)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("studentID", studentID).
		Int64("bookID", bookID).
		Time("dueDate", loan.DueDate).
		Msg("Book issued")

	return loan, nil
}

// ReturnBook closes a loan and puts the copy back on the shelf. Any
// authenticated caller may return any loan, matching the front-desk
// flow where whoever hands the book over closes it. Returning an
// already-returned loan is a conflict and changes nothing.
func (s *lendingServiceImpl) ReturnBook(ctx context.Context, loanID int64) (*models.IssuedBook, error) {
	var loan *models.IssuedBook
	err := s.store.WithinTransaction(ctx, func(tx repositories.LendingTx) error {
		var err error
		loan, err = tx.LoanForUpdate(ctx, loanID)
		if err != nil {
			return err
		}

		if loan.IsReturned {
			return apperrors.ErrLoanAlreadyReturned
		}

		returnedAt := helpers.Today(s.now())
		if err := tx.MarkReturned(ctx, loanID, returnedAt); err != nil {
			return err
		}
		loan.IsReturned = true
		loan.ReturnDate = &returnedAt

		return tx.AdjustBookQuantity(ctx, loan.BookID, +1)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("loanID", loanID).
		Int64("bookID", loan.BookID).
		Msg("Book returned")

	return loan, nil
}

func (s *lendingServiceImpl) GetLoanByID(ctx context.Context, id int64) (*models.IssuedBook, error) {
	return s.loanRepo.GetByID(ctx, id)
}

func (s *lendingServiceImpl) ListLoans(ctx context.Context, filter repositories.LoanFilter, page, size int) ([]*models.IssuedBook, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	return s.loanRepo.List(ctx, filter, offset, limit)
}
