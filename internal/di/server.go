package di

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/config"
	httpctrl "github.com/velora/velora-commerce-go/internal/controller/http"
	"github.com/velora/velora-commerce-go/internal/middleware"
	"github.com/velora/velora-commerce-go/internal/observability"
	"github.com/velora/velora-commerce-go/internal/websocket"
)

// HTTPServerModule provides HTTP server dependencies
var HTTPServerModule = fx.Module("http_server",
	fx.Provide(provideGinEngine),
	fx.Provide(provideHTTPServer),
	fx.Invoke(registerHTTPRoutes),
	fx.Invoke(startHTTPServer),
)

func provideGinEngine(
	appCfg *config.AppConfig,
	serverCfg *config.ServerConfig,
	limiter *middleware.RateLimiter,
	metrics *observability.MetricsProvider,
	logger *zap.Logger,
) *gin.Engine {
	if !appCfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(serverCfg))
	router.Use(middleware.BodyLimit(serverCfg.MaxBodyBytes))
	router.Use(limiter.Handler())
	router.Use(observability.MetricsMiddleware(metrics))

	return router
}

func provideHTTPServer(cfg *config.ServerConfig, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// Controllers is a struct that holds all HTTP controllers for fx to inject
type Controllers struct {
	fx.In

	Auth         *httpctrl.AuthController
	User         *httpctrl.UserController
	Category     *httpctrl.CategoryController
	Product      *httpctrl.ProductController
	Cart         *httpctrl.CartController
	Order        *httpctrl.OrderController
	Payment      *httpctrl.PaymentController
	Review       *httpctrl.ReviewController
	Wishlist     *httpctrl.WishlistController
	Coupon       *httpctrl.CouponController
	Shipping     *httpctrl.ShippingController
	Notification *httpctrl.NotificationController
	Analytics    *httpctrl.AnalyticsController
}

func registerHTTPRoutes(
	router *gin.Engine,
	controllers Controllers,
	wsHandler *websocket.Handler,
	metrics *observability.MetricsProvider,
	metricsCfg *config.MetricsConfig,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if metricsCfg.Enabled {
		router.GET(metricsCfg.Path, gin.WrapH(metrics.Handler()))
	}

	api := router.Group("/api/v1")

	controllers.Auth.RegisterRoutes(api)
	controllers.User.RegisterRoutes(api)
	controllers.Category.RegisterRoutes(api)
	controllers.Product.RegisterRoutes(api)
	controllers.Cart.RegisterRoutes(api)
	controllers.Order.RegisterRoutes(api)
	controllers.Payment.RegisterRoutes(api)
	controllers.Review.RegisterRoutes(api)
	controllers.Wishlist.RegisterRoutes(api)
	controllers.Coupon.RegisterRoutes(api)
	controllers.Shipping.RegisterRoutes(api)
	controllers.Notification.RegisterRoutes(api)
	controllers.Analytics.RegisterRoutes(api)

	wsHandler.RegisterRoutes(api)
}

func startHTTPServer(lc fx.Lifecycle, server *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting HTTP server", zap.String("address", server.Addr))
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}
