package di

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/config"
)

// AppModule aggregates all application modules for the API server. The
// server runs the event dispatcher and scheduler in-process so realtime
// pushes reach its websocket clients; cmd/worker runs them standalone.
var AppModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	DAOModule,
	SecurityModule,
	ServiceModule,
	MiddlewareModule,
	ControllerModule,
	WebsocketModule,
	ObservabilityModule,
	JobsModule,
	HTTPServerModule,
)

// PrintBanner logs application identity on startup
func PrintBanner(cfg *config.Config, logger *zap.Logger) {
	logger.Info("starting velora commerce",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)
}
