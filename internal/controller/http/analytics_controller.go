package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/middleware"
)

// AnalyticsController handles the admin analytics endpoints
type AnalyticsController struct {
	analyticsService service.AnalyticsService
	authMiddleware   *middleware.AuthMiddleware
}

// NewAnalyticsController creates a new AnalyticsController instance
func NewAnalyticsController(analyticsService service.AnalyticsService, authMiddleware *middleware.AuthMiddleware) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
		authMiddleware:   authMiddleware,
	}
}

// RegisterRoutes registers the analytics routes
func (c *AnalyticsController) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin/analytics")
	admin.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
	{
		admin.GET("/dashboard", c.Dashboard)
		admin.GET("/revenue-by-category", c.RevenueByCategory)
		admin.GET("/orders/export", c.ExportOrders)
	}
}

// Dashboard returns the aggregated storefront dashboard
// @Summary Get the analytics dashboard (admin)
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[response.Dashboard]
// @Router /api/v1/admin/analytics/dashboard [get]
func (c *AnalyticsController) Dashboard(ctx *gin.Context) {
	dashboard, err := c.analyticsService.Dashboard(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(dashboard))
}

// RevenueByCategory returns revenue grouped by category over a window
// @Summary Get revenue by category (admin)
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param from query string false "Window start (RFC3339 or YYYY-MM-DD)"
// @Param to query string false "Window end (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} response.ApiResponse[[]dao.CategoryRevenue]
// @Router /api/v1/admin/analytics/revenue-by-category [get]
func (c *AnalyticsController) RevenueByCategory(ctx *gin.Context) {
	revenue, err := c.analyticsService.RevenueByCategory(ctx.Request.Context(), ctx.Query("from"), ctx.Query("to"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(revenue))
}

// ExportOrders streams orders in the window as a CSV download
// @Summary Export orders as CSV (admin)
// @Tags Analytics
// @Produce text/csv
// @Security BearerAuth
// @Param from query string false "Window start (RFC3339 or YYYY-MM-DD)"
// @Param to query string false "Window end (RFC3339 or YYYY-MM-DD)"
// @Success 200 {file} file
// @Router /api/v1/admin/analytics/orders/export [get]
func (c *AnalyticsController) ExportOrders(ctx *gin.Context) {
	csvBytes, err := c.analyticsService.ExportOrdersCSV(ctx.Request.Context(), ctx.Query("from"), ctx.Query("to"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	filename := fmt.Sprintf("orders-%s.csv", time.Now().Format("20060102-150405"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", csvBytes)
}
