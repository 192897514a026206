package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service/impl"
	"github.com/velora/velora-commerce-go/internal/testutil/mocks"
	ws "github.com/velora/velora-commerce-go/internal/websocket"
)

type schedulerFixture struct {
	scheduler       *Scheduler
	productDAO      *mocks.MockProductDAO
	paymentDAO      *mocks.MockPaymentDAO
	couponDAO       *mocks.MockCouponDAO
	refreshTokenDAO *mocks.MockRefreshTokenDAO
	notificationDAO *mocks.MockNotificationDAO
}

func setupScheduler(t *testing.T) *schedulerFixture {
	t.Helper()
	f := &schedulerFixture{
		productDAO:      mocks.NewMockProductDAO(),
		paymentDAO:      mocks.NewMockPaymentDAO(),
		couponDAO:       mocks.NewMockCouponDAO(),
		refreshTokenDAO: mocks.NewMockRefreshTokenDAO(),
		notificationDAO: mocks.NewMockNotificationDAO(),
	}

	hub := ws.NewHub(zap.NewNop())
	go hub.Run()
	notifications := impl.NewNotificationService(f.notificationDAO, hub, zap.NewNop())

	// Nothing listens on this address, so sweep locks fall back to
	// running unconditionally.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	f.scheduler = NewScheduler(
		client,
		f.productDAO,
		f.paymentDAO,
		f.couponDAO,
		f.refreshTokenDAO,
		notifications,
		zap.NewNop(),
	)
	return f
}

func TestSchedulerExpireStalePayments(t *testing.T) {
	f := setupScheduler(t)
	stale := f.paymentDAO.AddPayment(&entity.Payment{
		Status:    entity.PaymentPending,
		CreatedAt: time.Now().Add(-2 * time.Hour),
	})
	fresh := f.paymentDAO.AddPayment(&entity.Payment{
		Status:    entity.PaymentPending,
		CreatedAt: time.Now().Add(-10 * time.Minute),
	})

	affected, err := f.scheduler.expireStalePayments(context.Background())
	if err != nil {
		t.Fatalf("expireStalePayments: %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}
	if stale.Status != entity.PaymentFailed {
		t.Errorf("stale payment status = %v, want failed", stale.Status)
	}
	if fresh.Status != entity.PaymentPending {
		t.Errorf("fresh payment status = %v, want pending", fresh.Status)
	}
}

func TestSchedulerDeactivateExpiredCoupons(t *testing.T) {
	f := setupScheduler(t)
	expired := f.couponDAO.AddCoupon(&entity.Coupon{
		Code:     "OLD",
		IsActive: true,
		EndDate:  time.Now().Add(-time.Hour),
	})
	live := f.couponDAO.AddCoupon(&entity.Coupon{
		Code:     "LIVE",
		IsActive: true,
		EndDate:  time.Now().Add(time.Hour),
	})

	affected, err := f.scheduler.deactivateExpiredCoupons(context.Background())
	if err != nil {
		t.Fatalf("deactivateExpiredCoupons: %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}
	if expired.IsActive {
		t.Error("expired coupon still active")
	}
	if !live.IsActive {
		t.Error("live coupon was deactivated")
	}
}

func TestSchedulerRunSweepWithoutRedisLock(t *testing.T) {
	f := setupScheduler(t)

	ran := false
	f.scheduler.runSweep("test_sweep", func(ctx context.Context) (int64, error) {
		ran = true
		return 1, nil
	})
	if !ran {
		t.Error("sweep should run when the lock backend is unreachable")
	}
}

func TestSchedulerRunSweepSwallowsFailure(t *testing.T) {
	f := setupScheduler(t)

	f.scheduler.runSweep("failing_sweep", func(ctx context.Context) (int64, error) {
		return 0, errors.New("mongo down")
	})
	// A failed sweep only logs; the next tick retries.
}

func TestSchedulerStartAndStop(t *testing.T) {
	f := setupScheduler(t)

	if err := f.scheduler.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	f.scheduler.Stop()
}
