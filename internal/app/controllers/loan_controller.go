package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okandemir/librarium/internal/app/models/dto"
	"github.com/okandemir/librarium/internal/app/repositories"
	"github.com/okandemir/librarium/internal/app/services"
	"github.com/okandemir/librarium/internal/middleware"
	"github.com/okandemir/librarium/internal/pkg/helpers"
)

// LoanController handles issuing and returning books
type LoanController struct {
	lendingService services.LendingService
}

// NewLoanController creates a new LoanController
func NewLoanController(lendingService services.LendingService) *LoanController {
	return &LoanController{
		lendingService: lendingService,
	}
}

// IssueBook lends a book to the authenticated student
// @Summary Issue a book
// @Description Issues one copy of the given book to the authenticated student. The due date is ten days from the issue date.
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.IssueBookRequest true "Book to issue"
// @Success 201 {object} dto.APIResponse "Book issued successfully"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 409 {object} dto.ErrorResponse "No copies available or book already on loan to this student"
// @Router /loans [post]
func (c *LoanController) IssueBook(ctx *gin.Context) {
	caller := middleware.CallerFromContext(ctx)

	var req dto.IssueBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	loan, err := c.lendingService.IssueBook(ctx.Request.Context(), caller.StudentID, req.BookID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Book issued successfully", loan))
}

// ReturnBook closes a loan
// @Summary Return a book
// @Description Marks the loan as returned and puts the copy back on the shelf
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} dto.APIResponse "Book returned successfully"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan already returned"
// @Router /loans/{id}/return [post]
func (c *LoanController) ReturnBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "loan")
	if !ok {
		return
	}

	loan, err := c.lendingService.ReturnBook(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Book returned successfully", loan))
}

// GetLoanByID retrieves a loan with its student and book
// @Summary Get loan details
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} dto.APIResponse "Loan retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Router /loans/{id} [get]
func (c *LoanController) GetLoanByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "loan")
	if !ok {
		return
	}

	loan, err := c.lendingService.GetLoanByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	caller := middleware.CallerFromContext(ctx)
	if !caller.IsAdmin() && loan.StudentID != caller.StudentID {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("You can only view your own loans")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(loan))
}

// ListLoans retrieves a paginated, filterable list of loans. Students
// see only their own loans; admins see everything.
// @Summary List loans
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param student query string false "Filter by borrower username substring (admin only)"
// @Param book query string false "Filter by book title substring"
// @Param active query bool false "Only unreturned loans"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Loans retrieved successfully"
// @Router /loans [get]
func (c *LoanController) ListLoans(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	caller := middleware.CallerFromContext(ctx)

	filter := repositories.LoanFilter{
		Book:       ctx.Query("book"),
		ActiveOnly: ctx.Query("active") == "true",
	}
	if caller.IsAdmin() {
		filter.Student = ctx.Query("student")
	} else {
		// Non-admins are scoped to their own loans
		filter.StudentID = caller.StudentID
	}

	loans, total, err := c.lendingService.ListLoans(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      loans,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}
