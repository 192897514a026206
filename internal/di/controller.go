package di

import (
	"go.uber.org/fx"

	httpctrl "github.com/velora/velora-commerce-go/internal/controller/http"
)

// ControllerModule provides HTTP controller dependencies
var ControllerModule = fx.Module("controller",
	fx.Provide(
		httpctrl.NewAuthController,
		httpctrl.NewUserController,
		httpctrl.NewCategoryController,
		httpctrl.NewProductController,
		httpctrl.NewCartController,
		httpctrl.NewOrderController,
		httpctrl.NewPaymentController,
		httpctrl.NewReviewController,
		httpctrl.NewWishlistController,
		httpctrl.NewCouponController,
		httpctrl.NewShippingController,
		httpctrl.NewNotificationController,
		httpctrl.NewAnalyticsController,
	),
)
