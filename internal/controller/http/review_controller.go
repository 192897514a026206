package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/middleware"
)

// ReviewController handles product review endpoints
type ReviewController struct {
	reviewService  service.ReviewService
	authMiddleware *middleware.AuthMiddleware
}

// NewReviewController creates a new ReviewController instance
func NewReviewController(reviewService service.ReviewService, authMiddleware *middleware.AuthMiddleware) *ReviewController {
	return &ReviewController{
		reviewService:  reviewService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the review routes
func (c *ReviewController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/products/:id/reviews", c.ListByProduct)

	reviews := router.Group("/reviews")
	reviews.Use(c.authMiddleware.Authenticate())
	{
		reviews.POST("", c.Create)
		reviews.PUT("/:id", c.Update)
		reviews.DELETE("/:id", c.Delete)
	}

	admin := router.Group("/admin/reviews")
	admin.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
	{
		admin.GET("", c.List)
		admin.PUT("/:id/moderate", c.Moderate)
	}
}

// ListByProduct returns approved reviews for a product
// @Summary List product reviews
// @Tags Reviews
// @Produce json
// @Param id path string true "Product ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} response.ApiResponse[[]entity.Review]
// @Router /api/v1/products/{id}/reviews [get]
func (c *ReviewController) ListByProduct(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	page, limit := pagination(ctx)

	reviews, total, err := c.reviewService.ListByProduct(ctx.Request.Context(), id, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewPaged(reviews, page, limit, total))
}

// Create submits a review
// @Summary Submit a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateReviewRequest true "Review"
// @Success 201 {object} response.ApiResponse[entity.Review]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/reviews [post]
func (c *ReviewController) Create(ctx *gin.Context) {
	var req request.CreateReviewRequest
	if !bindJSON(ctx, &req) {
		return
	}

	review, err := c.reviewService.Create(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response.NewSuccess(review, "review submitted"))
}

// Update edits the caller's own review
// @Summary Update own review
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body request.UpdateReviewRequest true "Fields to update"
// @Success 200 {object} response.ApiResponse[entity.Review]
// @Router /api/v1/reviews/{id} [put]
func (c *ReviewController) Update(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req request.UpdateReviewRequest
	if !bindJSON(ctx, &req) {
		return
	}

	review, err := c.reviewService.Update(ctx.Request.Context(), id, middleware.CurrentUser(ctx).ID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(review, "review updated"))
}

// Delete removes a review; admins may delete any
// @Summary Delete a review
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/reviews/{id} [delete]
func (c *ReviewController) Delete(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.reviewService.Delete(ctx.Request.Context(), id, middleware.CurrentUser(ctx)); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "review deleted"))
}

// List returns reviews by moderation status (admin)
// @Summary List reviews
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param status query string false "Moderation status" default(pending)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} response.ApiResponse[[]entity.Review]
// @Router /api/v1/admin/reviews [get]
func (c *ReviewController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	status := entity.ReviewStatus(ctx.DefaultQuery("status", string(entity.ReviewPending)))

	reviews, total, err := c.reviewService.List(ctx.Request.Context(), status, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewPaged(reviews, page, limit, total))
}

// Moderate approves or rejects a review (admin)
// @Summary Moderate a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body request.ModerateReviewRequest true "Decision"
// @Success 200 {object} response.ApiResponse[entity.Review]
// @Router /api/v1/admin/reviews/{id}/moderate [put]
func (c *ReviewController) Moderate(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req request.ModerateReviewRequest
	if !bindJSON(ctx, &req) {
		return
	}

	review, err := c.reviewService.Moderate(ctx.Request.Context(), id, entity.ReviewStatus(req.Status))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(review, "review moderated"))
}
