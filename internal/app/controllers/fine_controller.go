package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/okandemir/librarium/internal/app/models/dto"
	"github.com/okandemir/librarium/internal/app/services"
	"github.com/okandemir/librarium/internal/middleware"
	"github.com/okandemir/librarium/internal/pkg/helpers"
)

// FineController handles fine records (admin only)
type FineController struct {
	fineService services.FineService
}

// NewFineController creates a new FineController
func NewFineController(fineService services.FineService) *FineController {
	return &FineController{
		fineService: fineService,
	}
}

// CreateFine records a fine against a loan
// @Summary Record a fine
// @Description Records an externally decided fine amount against a loan
// @Tags fines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFineRequest true "Fine information"
// @Success 201 {object} dto.APIResponse "Fine recorded successfully"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Router /fines [post]
func (c *FineController) CreateFine(ctx *gin.Context) {
	var req dto.CreateFineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fine, err := c.fineService.CreateFine(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Fine recorded successfully", fine))
}

// GetFineByID retrieves a fine by ID
// @Summary Get fine details
// @Tags fines
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fine ID"
// @Success 200 {object} dto.APIResponse "Fine retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Fine not found"
// @Router /fines/{id} [get]
func (c *FineController) GetFineByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "fine")
	if !ok {
		return
	}

	fine, err := c.fineService.GetFineByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(fine))
}

// ListFines retrieves a paginated list of fines
// @Summary List fines
// @Tags fines
// @Produce json
// @Security BearerAuth
// @Param issuedBookId query int false "Limit to a single loan"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Fines retrieved successfully"
// @Router /fines [get]
func (c *FineController) ListFines(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	var issuedBookID *int64
	if idStr := ctx.Query("issuedBookId"); idStr != "" {
		parsed, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || parsed < 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid issuedBookId").
				WithDetails("issuedBookId must be a positive number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		issuedBookID = &parsed
	}

	fines, total, err := c.fineService.ListFines(ctx.Request.Context(), issuedBookID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      fines,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}
