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

// PaymentController handles payment endpoints
type PaymentController struct {
	paymentService service.PaymentService
	authMiddleware *middleware.AuthMiddleware
}

// NewPaymentController creates a new PaymentController instance
func NewPaymentController(paymentService service.PaymentService, authMiddleware *middleware.AuthMiddleware) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the payment routes
func (c *PaymentController) RegisterRoutes(router *gin.RouterGroup) {
	payments := router.Group("/payments")
	{
		// gateways call back without a bearer token
		payments.POST("/callback", c.Callback)

		authed := payments.Group("")
		authed.Use(c.authMiddleware.Authenticate())
		{
			authed.POST("/initiate", c.Initiate)
			authed.GET("/order/:id", c.GetByOrder)
		}
	}

	admin := router.Group("/admin/payments")
	admin.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
	{
		admin.GET("", c.List)
		admin.POST("/:id/refund", c.Refund)
	}
}

// Initiate starts a payment for an order
// @Summary Initiate a payment
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.InitiatePaymentRequest true "Order and method"
// @Success 201 {object} response.ApiResponse[response.PaymentInitResponse]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/payments/initiate [post]
func (c *PaymentController) Initiate(ctx *gin.Context) {
	var req request.InitiatePaymentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.paymentService.Initiate(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response.NewSuccess(result, "payment initiated"))
}

// Callback processes a normalized gateway callback
// @Summary Payment gateway callback
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request.PaymentCallbackRequest true "Callback payload"
// @Success 200 {object} response.ApiResponse[entity.Payment]
// @Router /api/v1/payments/callback [post]
func (c *PaymentController) Callback(ctx *gin.Context) {
	var req request.PaymentCallbackRequest
	if !bindJSON(ctx, &req) {
		return
	}

	payment, err := c.paymentService.HandleCallback(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(payment))
}

// GetByOrder lists payment attempts for an order
// @Summary List payments for an order
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} response.ApiResponse[[]entity.Payment]
// @Router /api/v1/payments/order/{id} [get]
func (c *PaymentController) GetByOrder(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	payments, err := c.paymentService.GetByOrder(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(payments))
}

// List returns payments by status (admin)
// @Summary List payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} response.ApiResponse[[]entity.Payment]
// @Router /api/v1/admin/payments [get]
func (c *PaymentController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	status := entity.PaymentStatus(ctx.Query("status"))

	payments, total, err := c.paymentService.List(ctx.Request.Context(), status, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewPaged(payments, page, limit, total))
}

// Refund marks a completed payment refunded (admin)
// @Summary Refund a payment
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body request.RefundRequest true "Refund reason"
// @Success 200 {object} response.ApiResponse[entity.Payment]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/admin/payments/{id}/refund [post]
func (c *PaymentController) Refund(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req request.RefundRequest
	if !bindJSON(ctx, &req) {
		return
	}

	payment, err := c.paymentService.Refund(ctx.Request.Context(), id, req.Reason)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(payment, "payment refunded"))
}
