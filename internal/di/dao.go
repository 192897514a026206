package di

import (
	"go.uber.org/fx"

	mongodao "github.com/velora/velora-commerce-go/internal/domain/dao/mongo"
)

// DAOModule provides the MongoDB data access layer
var DAOModule = fx.Module("dao",
	fx.Provide(
		mongodao.NewUserDAO,
		mongodao.NewRefreshTokenDAO,
		mongodao.NewCategoryDAO,
		mongodao.NewProductDAO,
		mongodao.NewCartDAO,
		mongodao.NewWishlistDAO,
		mongodao.NewOrderDAO,
		mongodao.NewPaymentDAO,
		mongodao.NewCouponDAO,
		mongodao.NewReviewDAO,
		mongodao.NewShippingZoneDAO,
		mongodao.NewShippingRateDAO,
		mongodao.NewShipmentDAO,
		mongodao.NewNotificationDAO,
		mongodao.NewAnalyticsDAO,
	),
)
