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

// BookService defines the interface for book-related operations
type BookService interface {
	CreateBook(ctx context.Context, req *dto.CreateBookRequest) (*models.Book, error)
	GetBookByID(ctx context.Context, id int64) (*models.Book, error)
	ListBooks(ctx context.Context, filter repositories.BookFilter, page, size int) ([]*models.Book, int64, error)
	UpdateBook(ctx context.Context, id int64, req *dto.UpdateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

type bookServiceImpl struct {
	bookRepo     *repositories.BookRepository
	authorRepo   *repositories.AuthorRepository
	categoryRepo *repositories.CategoryRepository
}

// NewBookService creates a new book service instance
func NewBookService(bookRepo *repositories.BookRepository, authorRepo *repositories.AuthorRepository, categoryRepo *repositories.CategoryRepository) BookService {
	return &bookServiceImpl{
		bookRepo:     bookRepo,
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *bookServiceImpl) CreateBook(ctx context.Context, req *dto.CreateBookRequest) (*models.Book, error) {
	book, err := s.bookFromRequest(ctx, req.AuthorID, req.CategoryID, req.Title, req.PublicationDate, req.Quantity, req.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	return s.bookRepo.GetByID(ctx, book.ID)
}

func (s *bookServiceImpl) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

func (s *bookServiceImpl) ListBooks(ctx context.Context, filter repositories.BookFilter, page, size int) ([]*models.Book, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	return s.bookRepo.List(ctx, filter, offset, limit)
}

func (s *bookServiceImpl) UpdateBook(ctx context.Context, id int64, req *dto.UpdateBookRequest) (*models.Book, error) {
	book, err := s.bookFromRequest(ctx, req.AuthorID, req.CategoryID, req.Title, req.PublicationDate, req.Quantity, req.ImageURL)
	if err != nil {
		return nil, err
	}
	book.ID = id

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	return s.bookRepo.GetByID(ctx, id)
}

func (s *bookServiceImpl) DeleteBook(ctx context.Context, id int64) error {
	return s.bookRepo.Delete(ctx, id)
}

// bookFromRequest validates request fields and resolves referenced
// author and category before building the model
func (s *bookServiceImpl) bookFromRequest(ctx context.Context, authorID, categoryID int64, title, publicationDate string, quantity *int, imageURL *string) (*models.Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}

	pubDate, err := helpers.ParseDate(publicationDate)
	if err != nil {
		return nil, fmt.Errorf("%w: publicationDate must use the YYYY-MM-DD format", apperrors.ErrValidationFailed)
	}

	if _, err := s.authorRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	book := &models.Book{
		AuthorID:        authorID,
		CategoryID:      categoryID,
		Title:           title,
		PublicationDate: pubDate,
		Quantity:        1,
		ImageURL:        imageURL,
	}
	if quantity != nil {
		if *quantity < 0 {
			return nil, fmt.Errorf("%w: quantity cannot be negative", apperrors.ErrValidationFailed)
		}
		book.Quantity = *quantity
	}

	return book, nil
}
