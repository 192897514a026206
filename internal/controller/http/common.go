// Package http contains the gin controllers for the REST API.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	apperrors "github.com/velora/velora-commerce-go/pkg/errors"
)

const msgValidationFailed = "validation failed"

// errorStatuses maps service sentinels to HTTP statuses. Controllers consult
// this table for errors their switch does not name.
var errorStatuses = map[error]int{
	service.ErrUserNotFound:         http.StatusNotFound,
	service.ErrUserAlreadyExists:    http.StatusConflict,
	service.ErrInvalidCredentials:   http.StatusUnauthorized,
	service.ErrAccountBlocked:       http.StatusForbidden,
	service.ErrInvalidToken:         http.StatusUnauthorized,
	service.ErrCategoryNotFound:     http.StatusNotFound,
	service.ErrCategoryHasChildren:  http.StatusConflict,
	service.ErrCategoryTooDeep:      http.StatusBadRequest,
	service.ErrCategoryCycle:        http.StatusBadRequest,
	service.ErrProductNotFound:      http.StatusNotFound,
	service.ErrVariantNotFound:      http.StatusNotFound,
	service.ErrOutOfStock:           http.StatusConflict,
	service.ErrBackorderBlocked:     http.StatusConflict,
	service.ErrCartEmpty:            http.StatusBadRequest,
	service.ErrCartItemNotFound:     http.StatusNotFound,
	service.ErrCartChanged:          http.StatusBadRequest,
	service.ErrSlugTaken:            http.StatusBadRequest,
	service.ErrOrderNotFound:        http.StatusNotFound,
	service.ErrInvalidTransition:    http.StatusConflict,
	service.ErrOrderNotCancelable:   http.StatusConflict,
	service.ErrOrderAlreadyPaid:     http.StatusConflict,
	service.ErrPaymentNotFound:      http.StatusNotFound,
	service.ErrPaymentNotRefundable: http.StatusConflict,
	service.ErrReviewNotFound:       http.StatusNotFound,
	service.ErrReviewExists:         http.StatusConflict,
	service.ErrWishlistDuplicate:    http.StatusConflict,
	service.ErrWishlistNotFound:     http.StatusNotFound,
	service.ErrCouponNotFound:       http.StatusNotFound,
	service.ErrCouponExists:         http.StatusConflict,
	service.ErrCouponInvalid:        http.StatusBadRequest,
	service.ErrCouponExhausted:      http.StatusConflict,
	service.ErrZoneNotFound:         http.StatusNotFound,
	service.ErrRateNotFound:         http.StatusNotFound,
	service.ErrShipmentNotFound:     http.StatusNotFound,
	service.ErrShipmentExists:       http.StatusConflict,
	service.ErrNotificationNotFound: http.StatusNotFound,
	service.ErrForbidden:            http.StatusForbidden,
}

// respondError renders a service error with the right status. Unknown errors
// become opaque 500s so internals never leak to clients.
func respondError(ctx *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		ctx.JSON(appErr.Status, response.NewError[any](appErr.Message))
		return
	}
	for sentinel, status := range errorStatuses {
		if errors.Is(err, sentinel) {
			ctx.JSON(status, response.NewError[any](sentinel.Error()))
			return
		}
	}
	_ = ctx.Error(err)
	ctx.JSON(http.StatusInternalServerError, response.NewError[any]("internal server error"))
}

func bindJSON(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return false
	}
	return true
}

// idParam parses an ObjectID path parameter
func idParam(ctx *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid "+name))
		return primitive.NilObjectID, false
	}
	return id, true
}

// pagination reads page/limit query parameters with sane bounds
func pagination(ctx *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
