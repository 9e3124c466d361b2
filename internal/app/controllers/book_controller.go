package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/okandemir/librarium/internal/app/models/dto"
	"github.com/okandemir/librarium/internal/app/repositories"
	"github.com/okandemir/librarium/internal/app/services"
	"github.com/okandemir/librarium/internal/middleware"
	"github.com/okandemir/librarium/internal/pkg/helpers"
)

// BookController handles book-related operations
type BookController struct {
	bookService services.BookService
}

// NewBookController creates a new BookController
func NewBookController(bookService services.BookService) *BookController {
	return &BookController{
		bookService: bookService,
	}
}

// CreateBook handles book creation
// @Summary Create a new book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBookRequest true "Book information"
// @Success 201 {object} dto.APIResponse "Book created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown author/category"
// @Router /books [post]
func (c *BookController) CreateBook(ctx *gin.Context) {
	var req dto.CreateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	book, err := c.bookService.CreateBook(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Book created successfully", book))
}

// GetBookByID retrieves a book by ID
// @Summary Get book details
// @Description Retrieves a book with its author and category populated
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} dto.APIResponse "Book retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Router /books/{id} [get]
func (c *BookController) GetBookByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "book")
	if !ok {
		return
	}

	book, err := c.bookService.GetBookByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(book))
}

// ListBooks retrieves a paginated, filterable list of books
// @Summary List books
// @Description Lists books with substring filters on title, author and category, date range and minimum quantity filters, and pagination
// @Tags books
// @Produce json
// @Param title query string false "Filter by title substring"
// @Param author query string false "Filter by author name substring"
// @Param category query string false "Filter by category name substring"
// @Param publishedFrom query string false "Publication date lower bound (YYYY-MM-DD)"
// @Param publishedTo query string false "Publication date upper bound (YYYY-MM-DD)"
// @Param minQuantity query int false "Minimum copies on the shelf"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Books retrieved successfully"
// @Router /books [get]
func (c *BookController) ListBooks(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := repositories.BookFilter{
		Title:    ctx.Query("title"),
		Author:   ctx.Query("author"),
		Category: ctx.Query("category"),
	}

	if from := ctx.Query("publishedFrom"); from != "" {
		parsed, err := helpers.ParseDate(from)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid publishedFrom date").
				WithDetails("Date must use the YYYY-MM-DD format")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.PublishedFrom = &parsed
	}
	if to := ctx.Query("publishedTo"); to != "" {
		parsed, err := helpers.ParseDate(to)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid publishedTo date").
				WithDetails("Date must use the YYYY-MM-DD format")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.PublishedTo = &parsed
	}
	if minStr := ctx.Query("minQuantity"); minStr != "" {
		min, err := strconv.Atoi(minStr)
		if err != nil || min < 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid minQuantity").
				WithDetails("minQuantity must be a non-negative number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.MinQuantity = &min
	}

	books, total, err := c.bookService.ListBooks(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      books,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateBook handles book updates
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param request body dto.UpdateBookRequest true "Book information"
// @Success 200 {object} dto.APIResponse "Book updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Router /books/{id} [put]
func (c *BookController) UpdateBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "book")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	book, err := c.bookService.UpdateBook(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Book updated successfully", book))
}

// DeleteBook handles book deletion
// @Summary Delete a book
// @Description Deletes a book. Books with loan history cannot be deleted.
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} dto.APIResponse "Book deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 409 {object} dto.ErrorResponse "Book has loan records"
// @Router /books/{id} [delete]
func (c *BookController) DeleteBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "book")
	if !ok {
		return
	}

	if err := c.bookService.DeleteBook(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Book deleted successfully", nil))
}
