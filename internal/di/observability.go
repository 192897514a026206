package di

import (
	"context"

	"go.uber.org/fx"

	"github.com/velora/velora-commerce-go/internal/observability"
)

// ObservabilityModule provides the metrics provider
var ObservabilityModule = fx.Module("observability",
	fx.Provide(observability.NewMetricsProvider),
	fx.Invoke(shutdownMetrics),
)

func shutdownMetrics(lc fx.Lifecycle, mp *observability.MetricsProvider) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return mp.Shutdown(ctx)
		},
	})
}
