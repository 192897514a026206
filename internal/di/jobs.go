package di

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/config"
	"github.com/velora/velora-commerce-go/internal/events"
	"github.com/velora/velora-commerce-go/internal/scheduler"
)

// JobsModule provides the event dispatcher and the maintenance
// scheduler. Both run in the worker process.
var JobsModule = fx.Module("jobs",
	fx.Provide(
		provideDispatcher,
		scheduler.NewScheduler,
	),
	fx.Invoke(startDispatcher, startScheduler),
)

func provideDispatcher(client *redis.Client, handler events.Handler, cfg *config.WorkerConfig, logger *zap.Logger) *events.Dispatcher {
	return events.NewDispatcher(client, handler, cfg.Concurrency, logger)
}

func startDispatcher(lc fx.Lifecycle, dispatcher *events.Dispatcher) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			dispatcher.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			dispatcher.Stop()
			return nil
		},
	})
}

func startScheduler(lc fx.Lifecycle, sched *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return sched.Start()
		},
		OnStop: func(ctx context.Context) error {
			sched.Stop()
			return nil
		},
	})
}
