// Package scheduler runs the periodic maintenance sweeps: expiring
// coupons and payments, clearing new-product flags, purging old
// notifications and revoked refresh tokens.
package scheduler

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/service"
)

const (
	everyFifteenMinutes = "*/15 * * * *"
	everyHour           = "0 * * * *"
	dailyMidnight       = "0 0 * * *"

	lockPrefix = "velora:scheduler:lock:"

	// sweepTimeout bounds each sweep run
	sweepTimeout = 2 * time.Minute

	// stalePaymentAge is how long a pending payment may wait for a
	// gateway callback before it is marked failed
	stalePaymentAge = time.Hour
)

// Scheduler runs cron sweeps. A Redis lock per sweep keeps concurrent
// instances from running the same sweep twice.
type Scheduler struct {
	cron   *cron.Cron
	redis  *redis.Client
	logger *zap.Logger

	productDAO      dao.ProductDAO
	paymentDAO      dao.PaymentDAO
	couponDAO       dao.CouponDAO
	refreshTokenDAO dao.RefreshTokenDAO
	notifications   service.NotificationService
}

// NewScheduler creates a new Scheduler instance
func NewScheduler(
	redisClient *redis.Client,
	productDAO dao.ProductDAO,
	paymentDAO dao.PaymentDAO,
	couponDAO dao.CouponDAO,
	refreshTokenDAO dao.RefreshTokenDAO,
	notifications service.NotificationService,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		redis:           redisClient,
		logger:          logger,
		productDAO:      productDAO,
		paymentDAO:      paymentDAO,
		couponDAO:       couponDAO,
		refreshTokenDAO: refreshTokenDAO,
		notifications:   notifications,
	}
}

// Start registers the sweeps and starts the cron loop
func (s *Scheduler) Start() error {
	sweeps := []struct {
		name     string
		schedule string
		run      func(ctx context.Context) (int64, error)
	}{
		{"expire_stale_payments", everyFifteenMinutes, s.expireStalePayments},
		{"deactivate_expired_coupons", everyHour, s.deactivateExpiredCoupons},
		{"clear_new_product_flags", dailyMidnight, s.clearNewProductFlags},
		{"purge_notifications", dailyMidnight, s.purgeNotifications},
		{"delete_expired_refresh_tokens", dailyMidnight, s.deleteExpiredRefreshTokens},
	}

	for _, sweep := range sweeps {
		sweep := sweep
		_, err := s.cron.AddFunc(sweep.schedule, func() {
			s.runSweep(sweep.name, sweep.run)
		})
		if err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("sweeps", len(sweeps)))
	return nil
}

// Stop stops the cron loop and waits for running sweeps
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runSweep(name string, run func(ctx context.Context) (int64, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if !s.acquireLock(ctx, name) {
		return
	}

	affected, err := run(ctx)
	if err != nil {
		s.logger.Error("sweep failed",
			zap.String("sweep", name),
			zap.Error(err),
		)
		return
	}
	if affected > 0 {
		s.logger.Info("sweep completed",
			zap.String("sweep", name),
			zap.Int64("affected", affected),
		)
	}
}

// acquireLock claims the sweep for this instance. The lock expires on
// its own so a crashed holder never wedges the sweep.
func (s *Scheduler) acquireLock(ctx context.Context, name string) bool {
	ok, err := s.redis.SetNX(ctx, lockPrefix+name, 1, sweepTimeout).Result()
	if err != nil {
		s.logger.Warn("scheduler lock unavailable, running sweep anyway",
			zap.String("sweep", name),
			zap.Error(err),
		)
		return true
	}
	return ok
}

func (s *Scheduler) expireStalePayments(ctx context.Context) (int64, error) {
	return s.paymentDAO.ExpireStalePending(ctx, time.Now().Add(-stalePaymentAge))
}

func (s *Scheduler) deactivateExpiredCoupons(ctx context.Context) (int64, error) {
	return s.couponDAO.DeactivateExpired(ctx, time.Now())
}

func (s *Scheduler) clearNewProductFlags(ctx context.Context) (int64, error) {
	return s.productDAO.ClearExpiredNewFlags(ctx)
}

func (s *Scheduler) purgeNotifications(ctx context.Context) (int64, error) {
	return s.notifications.Purge(ctx)
}

func (s *Scheduler) deleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	return s.refreshTokenDAO.DeleteExpired(ctx)
}
