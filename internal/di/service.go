package di

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/cache"
	"github.com/velora/velora-commerce-go/internal/config"
	"github.com/velora/velora-commerce-go/internal/domain/service/impl"
	"github.com/velora/velora-commerce-go/internal/events"
	"github.com/velora/velora-commerce-go/internal/payment/gateway"
)

// ServiceModule provides the business service layer together with its
// supporting infrastructure: the Redis cache, the event outbox and the
// payment gateways.
var ServiceModule = fx.Module("service",
	fx.Provide(
		cache.NewService,
		providePublisher,
		provideGateways,

		impl.NewAuthService,
		impl.NewUserService,
		impl.NewCategoryService,
		impl.NewProductService,
		impl.NewCartService,
		impl.NewOrderService,
		impl.NewPaymentService,
		impl.NewReviewService,
		impl.NewWishlistService,
		impl.NewCouponService,
		impl.NewShippingService,
		impl.NewNotificationService,
		impl.NewNotificationHandler,
	),
)

func providePublisher(client *redis.Client, logger *zap.Logger) events.Publisher {
	return events.NewRedisOutbox(client, logger)
}

func provideGateways(cfg *config.PaymentConfig) []gateway.Gateway {
	return []gateway.Gateway{
		gateway.NewSSLCommerz(&cfg.SSLCommerz),
		gateway.NewBkash(&cfg.Bkash),
	}
}
