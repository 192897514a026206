package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const popTimeout = 2 * time.Second

// Dispatcher drains the outbox queue with a small worker pool and hands
// each event to the handler. Handler failures are logged, not retried.
type Dispatcher struct {
	client      *redis.Client
	handler     Handler
	logger      *zap.Logger
	concurrency int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher with the given worker count.
func NewDispatcher(client *redis.Client, handler Handler, concurrency int, logger *zap.Logger) *Dispatcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Dispatcher{
		client:      client,
		handler:     handler,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	for i := 0; i < d.concurrency; i++ {
		d.wg.Add(1)
		go d.run(ctx, i)
	}
	d.logger.Info("event dispatcher started", zap.Int("workers", d.concurrency))
}

// Stop signals the workers and waits for in-flight events to finish.
func (d *Dispatcher) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
	d.logger.Info("event dispatcher stopped")
}

func (d *Dispatcher) run(ctx context.Context, worker int) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := d.client.BRPop(ctx, popTimeout, queueKey).Result()
		if err == redis.Nil || ctx.Err() != nil {
			continue
		}
		if err != nil {
			d.logger.Warn("event dequeue failed", zap.Int("worker", worker), zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		if len(res) < 2 {
			continue
		}

		var event Event
		if err := json.Unmarshal([]byte(res[1]), &event); err != nil {
			d.logger.Warn("event decode failed, dropping", zap.Error(err))
			continue
		}

		if err := d.handler.Handle(ctx, &event); err != nil {
			d.logger.Error("event handling failed",
				zap.String("event_id", event.ID),
				zap.String("type", string(event.Type)),
				zap.Error(err),
			)
		}
	}
}
