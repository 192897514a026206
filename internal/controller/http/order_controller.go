package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/middleware"
)

// OrderController handles order endpoints
type OrderController struct {
	orderService   service.OrderService
	authMiddleware *middleware.AuthMiddleware
}

// NewOrderController creates a new OrderController instance
func NewOrderController(orderService service.OrderService, authMiddleware *middleware.AuthMiddleware) *OrderController {
	return &OrderController{
		orderService:   orderService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the order routes
func (c *OrderController) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	orders.Use(c.authMiddleware.Authenticate())
	{
		orders.POST("", c.Create)
		orders.GET("", c.ListMine)
		orders.GET("/number/:number", c.GetByNumber)
		orders.GET("/:id", c.GetByID)
		orders.POST("/:id/cancel", c.Cancel)
	}

	admin := router.Group("/admin/orders")
	admin.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
	{
		admin.GET("", c.List)
		admin.PUT("/:id/status", c.UpdateStatus)
	}
}

// Create places an order from the caller's cart
// @Summary Place an order
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateOrderRequest true "Order details"
// @Success 201 {object} response.ApiResponse[entity.Order]
// @Failure 400 {object} response.ApiResponse[any]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
	var req request.CreateOrderRequest
	if !bindJSON(ctx, &req) {
		return
	}

	order, err := c.orderService.Create(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response.NewSuccess(order, "order placed"))
}

// ListMine returns the caller's order history
// @Summary List own orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} response.ApiResponse[[]entity.Order]
// @Router /api/v1/orders [get]
func (c *OrderController) ListMine(ctx *gin.Context) {
	page, limit := pagination(ctx)
	orders, total, err := c.orderService.ListMine(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewPaged(orders, page, limit, total))
}

// GetByID returns one order; customers only see their own
// @Summary Get an order
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} response.ApiResponse[entity.Order]
// @Router /api/v1/orders/{id} [get]
func (c *OrderController) GetByID(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	order, err := c.orderService.GetByID(ctx.Request.Context(), id, middleware.CurrentUser(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(order))
}

// GetByNumber returns one order by its order number
// @Summary Get an order by number
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param number path string true "Order number"
// @Success 200 {object} response.ApiResponse[entity.Order]
// @Router /api/v1/orders/number/{number} [get]
func (c *OrderController) GetByNumber(ctx *gin.Context) {
	order, err := c.orderService.GetByNumber(ctx.Request.Context(), ctx.Param("number"), middleware.CurrentUser(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(order))
}

// Cancel cancels the caller's pending or confirmed order
// @Summary Cancel an order
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} response.ApiResponse[entity.Order]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/orders/{id}/cancel [post]
func (c *OrderController) Cancel(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	order, err := c.orderService.Cancel(ctx.Request.Context(), id, middleware.CurrentUser(ctx).ID, ctx.Query("reason"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(order, "order cancelled"))
}

// List returns all orders with filters (admin)
// @Summary List orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param payment_status query string false "Filter by payment status"
// @Param order_number query string false "Exact order number"
// @Param from query string false "Created from (RFC3339 or YYYY-MM-DD)"
// @Param to query string false "Created before"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} response.ApiResponse[[]entity.Order]
// @Router /api/v1/admin/orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	var query request.OrderQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	filter := dao.OrderFilter{
		Status:        entity.OrderStatus(query.Status),
		PaymentStatus: entity.PaymentState(query.PaymentStatus),
		OrderNumber:   query.OrderNumber,
	}
	if t, err := parseQueryDate(query.From); err == nil && query.From != "" {
		filter.From = &t
	}
	if t, err := parseQueryDate(query.To); err == nil && query.To != "" {
		filter.To = &t
	}

	orders, total, err := c.orderService.List(ctx.Request.Context(), filter, query.Page, query.Limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewPaged(orders, query.Page, query.Limit, total))
}

// UpdateStatus moves an order through the state machine (admin)
// @Summary Update order status
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body request.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} response.ApiResponse[entity.Order]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/admin/orders/{id}/status [put]
func (c *OrderController) UpdateStatus(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req request.UpdateOrderStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	adminID := middleware.CurrentUser(ctx).ID
	order, err := c.orderService.UpdateStatus(ctx.Request.Context(), id, entity.OrderStatus(req.Status), req.Note, &adminID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(order, "status updated"))
}

func parseQueryDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
