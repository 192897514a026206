package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/config"
)

// Attribute keys shared across metrics
var (
	attrHTTPMethod     = attribute.Key("http.method")
	attrHTTPRoute      = attribute.Key("http.route")
	attrHTTPStatusCode = attribute.Key("http.status_code")
	attrCacheName      = attribute.Key("cache.name")
	attrPaymentMethod  = attribute.Key("payment.method")
	attrRejectReason   = attribute.Key("reject.reason")
)

// MetricsProvider manages OpenTelemetry metrics backed by a Prometheus
// registry
type MetricsProvider struct {
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	logger        *zap.Logger
	registry      *prometheus.Registry
	handler       http.Handler

	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	ordersPlaced        metric.Int64Counter
	paymentsCompleted   metric.Int64Counter
	stockRejections     metric.Int64Counter
	cacheHits           metric.Int64Counter
	cacheMisses         metric.Int64Counter
	wsConnections       metric.Int64UpDownCounter
}

// NewMetricsProvider creates a new metrics provider. When metrics are
// disabled the provider is inert and Handler serves 404.
func NewMetricsProvider(cfg *config.MetricsConfig, logger *zap.Logger) (*MetricsProvider, error) {
	if !cfg.Enabled {
		return &MetricsProvider{
			meter:  otel.Meter(cfg.ServiceName),
			logger: logger,
		}, nil
	}

	registry := prometheus.NewRegistry()

	exporter, err := otelprometheus.New(
		otelprometheus.WithRegisterer(registry),
	)
	if err != nil {
		return nil, err
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	mp := &MetricsProvider{
		meterProvider: meterProvider,
		meter:         meterProvider.Meter(cfg.ServiceName),
		logger:        logger,
		registry:      registry,
		handler:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	if err := mp.initMetrics(); err != nil {
		return nil, err
	}

	logger.Info("metrics initialized",
		zap.String("service", cfg.ServiceName),
		zap.String("path", cfg.Path),
	)

	return mp, nil
}

func (mp *MetricsProvider) initMetrics() error {
	var err error

	mp.httpRequestsTotal, err = mp.meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return err
	}

	mp.httpRequestDuration, err = mp.meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	mp.ordersPlaced, err = mp.meter.Int64Counter(
		"orders_placed_total",
		metric.WithDescription("Total number of orders placed"),
	)
	if err != nil {
		return err
	}

	mp.paymentsCompleted, err = mp.meter.Int64Counter(
		"payments_completed_total",
		metric.WithDescription("Total number of completed payments"),
	)
	if err != nil {
		return err
	}

	mp.stockRejections, err = mp.meter.Int64Counter(
		"stock_rejections_total",
		metric.WithDescription("Cart and checkout requests rejected for insufficient stock"),
	)
	if err != nil {
		return err
	}

	mp.cacheHits, err = mp.meter.Int64Counter(
		"cache_hits_total",
		metric.WithDescription("Total number of cache hits"),
	)
	if err != nil {
		return err
	}

	mp.cacheMisses, err = mp.meter.Int64Counter(
		"cache_misses_total",
		metric.WithDescription("Total number of cache misses"),
	)
	if err != nil {
		return err
	}

	mp.wsConnections, err = mp.meter.Int64UpDownCounter(
		"websocket_connections",
		metric.WithDescription("Number of open websocket connections"),
	)
	if err != nil {
		return err
	}

	return nil
}

// RecordHTTPRequest records an HTTP request metric
func (mp *MetricsProvider) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	if mp.httpRequestsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attrHTTPMethod.String(method),
		attrHTTPRoute.String(route),
		attrHTTPStatusCode.Int(statusCode),
	)

	mp.httpRequestsTotal.Add(ctx, 1, attrs)
	mp.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordOrderPlaced records a placed order
func (mp *MetricsProvider) RecordOrderPlaced(ctx context.Context, paymentMethod string) {
	if mp.ordersPlaced == nil {
		return
	}
	mp.ordersPlaced.Add(ctx, 1, metric.WithAttributes(
		attrPaymentMethod.String(paymentMethod),
	))
}

// RecordPaymentCompleted records a completed payment
func (mp *MetricsProvider) RecordPaymentCompleted(ctx context.Context, method string) {
	if mp.paymentsCompleted == nil {
		return
	}
	mp.paymentsCompleted.Add(ctx, 1, metric.WithAttributes(
		attrPaymentMethod.String(method),
	))
}

// RecordStockRejection records a request rejected for insufficient stock
func (mp *MetricsProvider) RecordStockRejection(ctx context.Context, reason string) {
	if mp.stockRejections == nil {
		return
	}
	mp.stockRejections.Add(ctx, 1, metric.WithAttributes(
		attrRejectReason.String(reason),
	))
}

// RecordCacheHit records a cache hit
func (mp *MetricsProvider) RecordCacheHit(ctx context.Context, cacheName string) {
	if mp.cacheHits == nil {
		return
	}
	mp.cacheHits.Add(ctx, 1, metric.WithAttributes(
		attrCacheName.String(cacheName),
	))
}

// RecordCacheMiss records a cache miss
func (mp *MetricsProvider) RecordCacheMiss(ctx context.Context, cacheName string) {
	if mp.cacheMisses == nil {
		return
	}
	mp.cacheMisses.Add(ctx, 1, metric.WithAttributes(
		attrCacheName.String(cacheName),
	))
}

// IncrementWebsocketConnections increments the open connection gauge
func (mp *MetricsProvider) IncrementWebsocketConnections(ctx context.Context) {
	if mp.wsConnections == nil {
		return
	}
	mp.wsConnections.Add(ctx, 1)
}

// DecrementWebsocketConnections decrements the open connection gauge
func (mp *MetricsProvider) DecrementWebsocketConnections(ctx context.Context) {
	if mp.wsConnections == nil {
		return
	}
	mp.wsConnections.Add(ctx, -1)
}

// Handler returns an HTTP handler for Prometheus scrapes
func (mp *MetricsProvider) Handler() http.Handler {
	if mp.handler != nil {
		return mp.handler
	}
	return http.NotFoundHandler()
}

// Meter returns the meter for creating custom metrics
func (mp *MetricsProvider) Meter() metric.Meter {
	return mp.meter
}

// Shutdown flushes and stops the meter provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}
