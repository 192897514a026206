package di

import (
	"go.uber.org/fx"

	"github.com/velora/velora-commerce-go/internal/config"
	"github.com/velora/velora-commerce-go/internal/middleware"
)

// MiddlewareModule provides HTTP middleware dependencies
var MiddlewareModule = fx.Module("middleware",
	fx.Provide(
		middleware.NewAuthMiddleware,
		provideRateLimiter,
	),
)

func provideRateLimiter(cfg *config.ServerConfig) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit)
}
