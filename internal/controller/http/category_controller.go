package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/middleware"
)

// CategoryController handles category endpoints
type CategoryController struct {
	categoryService service.CategoryService
	authMiddleware  *middleware.AuthMiddleware
}

// NewCategoryController creates a new CategoryController instance
func NewCategoryController(categoryService service.CategoryService, authMiddleware *middleware.AuthMiddleware) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
		authMiddleware:  authMiddleware,
	}
}

// RegisterRoutes registers the category routes
func (c *CategoryController) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("", c.List)
		categories.GET("/tree", c.Tree)
		categories.GET("/menu", c.Menu)
		categories.GET("/slug/:slug", c.GetBySlug)
		categories.GET("/:id", c.GetByID)
	}

	admin := router.Group("/admin/categories")
	admin.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
	{
		admin.POST("", c.Create)
		admin.PUT("/:id", c.Update)
		admin.DELETE("/:id", c.Delete)
	}
}

// List retrieves categories with pagination
// @Summary List categories
// @Tags Categories
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} response.ApiResponse[[]entity.Category]
// @Router /api/v1/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	categories, total, err := c.categoryService.List(ctx.Request.Context(), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewPaged(categories, page, limit, total))
}

// Tree returns the full nested category tree
// @Summary Get the category tree
// @Tags Categories
// @Produce json
// @Success 200 {object} response.ApiResponse[[]entity.CategoryNode]
// @Router /api/v1/categories/tree [get]
func (c *CategoryController) Tree(ctx *gin.Context) {
	tree, err := c.categoryService.Tree(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(tree))
}

// Menu returns the navigation menu tree
// @Summary Get the menu tree
// @Tags Categories
// @Produce json
// @Success 200 {object} response.ApiResponse[[]entity.CategoryNode]
// @Router /api/v1/categories/menu [get]
func (c *CategoryController) Menu(ctx *gin.Context) {
	menu, err := c.categoryService.Menu(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(menu))
}

// GetBySlug retrieves a category by slug
// @Summary Get a category by slug
// @Tags Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} response.ApiResponse[entity.Category]
// @Router /api/v1/categories/slug/{slug} [get]
func (c *CategoryController) GetBySlug(ctx *gin.Context) {
	category, err := c.categoryService.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(category))
}

// GetByID retrieves a category by ID
// @Summary Get a category
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.ApiResponse[entity.Category]
// @Router /api/v1/categories/{id} [get]
func (c *CategoryController) GetByID(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	category, err := c.categoryService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(category))
}

// Create creates a category (admin)
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateCategoryRequest true "Category"
// @Success 201 {object} response.ApiResponse[entity.Category]
// @Router /api/v1/admin/categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	var req request.CreateCategoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	category, err := c.categoryService.Create(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response.NewSuccess(category, "category created"))
}

// Update updates a category (admin)
// @Summary Update a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body request.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} response.ApiResponse[entity.Category]
// @Router /api/v1/admin/categories/{id} [put]
func (c *CategoryController) Update(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req request.UpdateCategoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	category, err := c.categoryService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(category, "category updated"))
}

// Delete removes a category (admin)
// @Summary Delete a category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/admin/categories/{id} [delete]
func (c *CategoryController) Delete(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.categoryService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "category deleted"))
}
