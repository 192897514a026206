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

// ShippingController handles shipping zone, rate and shipment endpoints
type ShippingController struct {
	shippingService service.ShippingService
	authMiddleware  *middleware.AuthMiddleware
}

// NewShippingController creates a new ShippingController instance
func NewShippingController(shippingService service.ShippingService, authMiddleware *middleware.AuthMiddleware) *ShippingController {
	return &ShippingController{
		shippingService: shippingService,
		authMiddleware:  authMiddleware,
	}
}

// RegisterRoutes registers the shipping routes
func (c *ShippingController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/shipping/quote", c.Quote)

	orders := router.Group("/orders")
	orders.Use(c.authMiddleware.Authenticate())
	{
		orders.GET("/:id/shipment", c.GetShipmentByOrder)
	}

	admin := router.Group("/admin/shipping")
	admin.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
	{
		admin.GET("/zones", c.ListZones)
		admin.POST("/zones", c.CreateZone)
		admin.PUT("/zones/:id", c.UpdateZone)
		admin.DELETE("/zones/:id", c.DeleteZone)

		admin.GET("/zones/:id/rates", c.ListRates)
		admin.POST("/rates", c.CreateRate)
		admin.PUT("/rates/:id", c.UpdateRate)
		admin.DELETE("/rates/:id", c.DeleteRate)

		admin.GET("/shipments", c.ListShipments)
		admin.POST("/shipments", c.CreateShipment)
		admin.PUT("/shipments/:id/status", c.UpdateShipmentStatus)
	}
}

// Quote prices shipping options for a delivery area
// @Summary Get shipping quotes for an area
// @Tags Shipping
// @Accept json
// @Produce json
// @Param request body request.ShippingQuoteRequest true "Area and order total"
// @Success 200 {object} response.ApiResponse[[]response.ShippingQuote]
// @Router /api/v1/shipping/quote [post]
func (c *ShippingController) Quote(ctx *gin.Context) {
	var req request.ShippingQuoteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	quotes, err := c.shippingService.Quote(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(quotes))
}

// GetShipmentByOrder returns the shipment attached to an order
// @Summary Get the shipment for an order
// @Tags Shipping
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} response.ApiResponse[entity.Shipment]
// @Router /api/v1/orders/{id}/shipment [get]
func (c *ShippingController) GetShipmentByOrder(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	shipment, err := c.shippingService.GetShipmentByOrder(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(shipment))
}

// ListZones returns all shipping zones
// @Summary List shipping zones (admin)
// @Tags Shipping
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]entity.ShippingZone]
// @Router /api/v1/admin/shipping/zones [get]
func (c *ShippingController) ListZones(ctx *gin.Context) {
	zones, err := c.shippingService.ListZones(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(zones))
}

// CreateZone creates a shipping zone
// @Summary Create a shipping zone (admin)
// @Tags Shipping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateShippingZoneRequest true "Zone details"
// @Success 201 {object} response.ApiResponse[entity.ShippingZone]
// @Router /api/v1/admin/shipping/zones [post]
func (c *ShippingController) CreateZone(ctx *gin.Context) {
	var req request.CreateShippingZoneRequest
	if !bindJSON(ctx, &req) {
		return
	}

	zone, err := c.shippingService.CreateZone(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response.NewSuccess(zone, "shipping zone created"))
}

// UpdateZone updates a shipping zone
// @Summary Update a shipping zone (admin)
// @Tags Shipping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Zone ID"
// @Param request body request.UpdateShippingZoneRequest true "Fields to update"
// @Success 200 {object} response.ApiResponse[entity.ShippingZone]
// @Router /api/v1/admin/shipping/zones/{id} [put]
func (c *ShippingController) UpdateZone(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateShippingZoneRequest
	if !bindJSON(ctx, &req) {
		return
	}

	zone, err := c.shippingService.UpdateZone(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(zone, "shipping zone updated"))
}

// DeleteZone deletes a shipping zone
// @Summary Delete a shipping zone (admin)
// @Tags Shipping
// @Produce json
// @Security BearerAuth
// @Param id path string true "Zone ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/admin/shipping/zones/{id} [delete]
func (c *ShippingController) DeleteZone(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.shippingService.DeleteZone(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "shipping zone deleted"))
}

// ListRates returns the rates for a zone
// @Summary List the rates of a zone (admin)
// @Tags Shipping
// @Produce json
// @Security BearerAuth
// @Param id path string true "Zone ID"
// @Success 200 {object} response.ApiResponse[[]entity.ShippingRate]
// @Router /api/v1/admin/shipping/zones/{id}/rates [get]
func (c *ShippingController) ListRates(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	rates, err := c.shippingService.ListRates(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(rates))
}

// CreateRate creates a shipping rate
// @Summary Create a shipping rate (admin)
// @Tags Shipping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateShippingRateRequest true "Rate details"
// @Success 201 {object} response.ApiResponse[entity.ShippingRate]
// @Router /api/v1/admin/shipping/rates [post]
func (c *ShippingController) CreateRate(ctx *gin.Context) {
	var req request.CreateShippingRateRequest
	if !bindJSON(ctx, &req) {
		return
	}

	rate, err := c.shippingService.CreateRate(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response.NewSuccess(rate, "shipping rate created"))
}

// UpdateRate updates a shipping rate
// @Summary Update a shipping rate (admin)
// @Tags Shipping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rate ID"
// @Param request body request.UpdateShippingRateRequest true "Fields to update"
// @Success 200 {object} response.ApiResponse[entity.ShippingRate]
// @Router /api/v1/admin/shipping/rates/{id} [put]
func (c *ShippingController) UpdateRate(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateShippingRateRequest
	if !bindJSON(ctx, &req) {
		return
	}

	rate, err := c.shippingService.UpdateRate(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(rate, "shipping rate updated"))
}

// DeleteRate deletes a shipping rate
// @Summary Delete a shipping rate (admin)
// @Tags Shipping
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rate ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/admin/shipping/rates/{id} [delete]
func (c *ShippingController) DeleteRate(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.shippingService.DeleteRate(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "shipping rate deleted"))
}

// ListShipments returns shipments with pagination
// @Summary List shipments (admin)
// @Tags Shipping
// @Produce json
// @Security BearerAuth
// @Param status query string false "Shipment status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PagedResponse[entity.Shipment]
// @Router /api/v1/admin/shipping/shipments [get]
func (c *ShippingController) ListShipments(ctx *gin.Context) {
	page, limit := pagination(ctx)
	status := entity.ShipmentStatus(ctx.Query("status"))

	shipments, total, err := c.shippingService.ListShipments(ctx.Request.Context(), status, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewPaged(shipments, page, limit, total))
}

// CreateShipment creates a shipment for an order
// @Summary Create a shipment (admin)
// @Tags Shipping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateShipmentRequest true "Shipment details"
// @Success 201 {object} response.ApiResponse[entity.Shipment]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/admin/shipping/shipments [post]
func (c *ShippingController) CreateShipment(ctx *gin.Context) {
	var req request.CreateShipmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	shipment, err := c.shippingService.CreateShipment(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response.NewSuccess(shipment, "shipment created"))
}

// UpdateShipmentStatus appends a tracking event to a shipment
// @Summary Update shipment status (admin)
// @Tags Shipping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment ID"
// @Param request body request.UpdateShipmentStatusRequest true "Status and tracking note"
// @Success 200 {object} response.ApiResponse[entity.Shipment]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/admin/shipping/shipments/{id}/status [put]
func (c *ShippingController) UpdateShipmentStatus(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req request.UpdateShipmentStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	adminID := middleware.CurrentUser(ctx).ID
	shipment, err := c.shippingService.UpdateShipmentStatus(ctx.Request.Context(), id, &req, &adminID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(shipment, "shipment updated"))
}
