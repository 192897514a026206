package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/middleware"
)

// NotificationController handles notification endpoints
type NotificationController struct {
	notificationService service.NotificationService
	authMiddleware      *middleware.AuthMiddleware
}

// NewNotificationController creates a new NotificationController instance
func NewNotificationController(notificationService service.NotificationService, authMiddleware *middleware.AuthMiddleware) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		authMiddleware:      authMiddleware,
	}
}

// RegisterRoutes registers the notification routes
func (c *NotificationController) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	notifications.Use(c.authMiddleware.Authenticate())
	{
		notifications.GET("", c.List)
		notifications.GET("/unread-count", c.UnreadCount)
		notifications.PUT("/read-all", c.MarkAllRead)
		notifications.PUT("/:id/read", c.MarkRead)
	}

	admin := router.Group("/admin/notifications")
	admin.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
	{
		admin.GET("", c.AdminList)
	}
}

// List returns the caller's notifications
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PagedResponse[entity.Notification]
// @Router /api/v1/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)

	notifications, total, err := c.notificationService.ListForUser(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewPaged(notifications, page, limit, total))
}

// UnreadCount returns the number of unread notifications
// @Summary Count unread notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[response.UnreadCount]
// @Router /api/v1/notifications/unread-count [get]
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	count, err := c.notificationService.UnreadCount(ctx.Request.Context(), middleware.CurrentUser(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(response.UnreadCount{Count: count}))
}

// MarkAllRead marks every notification of the caller as read
// @Summary Mark all notifications read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	if _, err := c.notificationService.MarkAllRead(ctx.Request.Context(), middleware.CurrentUser(ctx)); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "notifications marked read"))
}

// MarkRead marks a single notification as read
// @Summary Mark a notification read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.ApiResponse[any]
// @Failure 403 {object} response.ApiResponse[any]
// @Router /api/v1/notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx.Request.Context(), id, middleware.CurrentUser(ctx)); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "notification marked read"))
}

// AdminList returns the admin notification feed
// @Summary List admin notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PagedResponse[entity.Notification]
// @Router /api/v1/admin/notifications [get]
func (c *NotificationController) AdminList(ctx *gin.Context) {
	page, limit := pagination(ctx)

	notifications, total, err := c.notificationService.ListForAdmin(ctx.Request.Context(), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewPaged(notifications, page, limit, total))
}
