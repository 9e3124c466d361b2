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

// AuthorController handles author-related operations
type AuthorController struct {
	authorService services.AuthorService
}

// NewAuthorController creates a new AuthorController
func NewAuthorController(authorService services.AuthorService) *AuthorController {
	return &AuthorController{
		authorService: authorService,
	}
}

// parseIDParam parses the :id path parameter shared by all controllers
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" ID").
			WithDetails(name + " ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateAuthor handles author creation
// @Summary Create a new author
// @Tags authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAuthorRequest true "Author information"
// @Success 201 {object} dto.APIResponse "Author created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Author already exists"
// @Router /authors [post]
func (c *AuthorController) CreateAuthor(ctx *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	author, err := c.authorService.CreateAuthor(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Author created successfully", author))
}

// GetAuthorByID retrieves an author by ID
// @Summary Get author details
// @Tags authors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Success 200 {object} dto.APIResponse "Author retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Author not found"
// @Router /authors/{id} [get]
func (c *AuthorController) GetAuthorByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "author")
	if !ok {
		return
	}

	author, err := c.authorService.GetAuthorByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(author))
}

// ListAuthors retrieves a paginated list of authors
// @Summary List authors
// @Description Lists authors with optional name substring filtering and pagination
// @Tags authors
// @Produce json
// @Security BearerAuth
// @Param name query string false "Filter by name substring"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Authors retrieved successfully"
// @Router /authors [get]
func (c *AuthorController) ListAuthors(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	nameFilter := ctx.Query("name")

	authors, total, err := c.authorService.ListAuthors(ctx.Request.Context(), nameFilter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      authors,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateAuthor handles author updates
// @Summary Update an author
// @Tags authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Param request body dto.UpdateAuthorRequest true "Author information"
// @Success 200 {object} dto.APIResponse "Author updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Author not found"
// @Router /authors/{id} [put]
func (c *AuthorController) UpdateAuthor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "author")
	if !ok {
		return
	}

	var req dto.UpdateAuthorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	author, err := c.authorService.UpdateAuthor(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Author updated successfully", author))
}

// DeleteAuthor handles author deletion
// @Summary Delete an author
// @Tags authors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Success 200 {object} dto.APIResponse "Author deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Author not found"
// @Router /authors/{id} [delete]
func (c *AuthorController) DeleteAuthor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "author")
	if !ok {
		return
	}

	if err := c.authorService.DeleteAuthor(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Author deleted successfully", nil))
}
