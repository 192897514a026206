package impl

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/velora/velora-commerce-go/internal/cache"
	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	apperrors "github.com/velora/velora-commerce-go/pkg/errors"
)

const (
	dashboardCacheKey = "analytics:dashboard"
	dashboardTopLimit = 5
)

// analyticsService implements service.AnalyticsService
type analyticsService struct {
	analyticsDAO dao.AnalyticsDAO
	cache        *cache.Service
}

// NewAnalyticsService creates a new AnalyticsService instance
func NewAnalyticsService(analyticsDAO dao.AnalyticsDAO, cacheService *cache.Service) service.AnalyticsService {
	return &analyticsService{analyticsDAO: analyticsDAO, cache: cacheService}
}

func (s *analyticsService) Dashboard(ctx context.Context) (*response.Dashboard, error) {
	var cached response.Dashboard
	if s.cache.Get(ctx, dashboardCacheKey, &cached) {
		return &cached, nil
	}

	dashboard := &response.Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.analyticsDAO.DashboardStats(gctx, time.Now())
		dashboard.Stats = stats
		return err
	})
	g.Go(func() error {
		products, err := s.analyticsDAO.TopProductsBySales(gctx, dashboardTopLimit)
		dashboard.TopBySales = products
		return err
	})
	g.Go(func() error {
		products, err := s.analyticsDAO.TopProductsByRating(gctx, dashboardTopLimit)
		dashboard.TopByRating = products
		return err
	})
	g.Go(func() error {
		customers, err := s.analyticsDAO.TopCustomers(gctx, dashboardTopLimit)
		dashboard.TopCustomers = customers
		return err
	})
	g.Go(func() error {
		monthStart := monthStart(time.Now())
		sales, err := s.analyticsDAO.RevenueByCategory(gctx, monthStart, time.Now())
		dashboard.CategorySales = sales
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cache.SetWithTTL(ctx, dashboardCacheKey, dashboard, time.Minute)
	return dashboard, nil
}

func (s *analyticsService) RevenueByCategory(ctx context.Context, fromStr, toStr string) ([]*dao.CategoryRevenue, error) {
	from, to, err := parseWindow(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	return s.analyticsDAO.RevenueByCategory(ctx, from, to)
}

func (s *analyticsService) ExportOrdersCSV(ctx context.Context, fromStr, toStr string) ([]byte, error) {
	from, to, err := parseWindow(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	orders, err := s.analyticsDAO.OrdersForExport(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"order_number", "created_at", "status", "payment_status",
		"payment_method", "items", "subtotal", "discount", "shipping_cost",
		"total", "coupon_code", "city",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, order := range orders {
		itemCount := 0
		for _, item := range order.Items {
			itemCount += item.Quantity
		}
		record := []string{
			order.OrderNumber,
			order.CreatedAt.Format(time.RFC3339),
			string(order.Status),
			string(order.PaymentStatus),
			order.PaymentMethod,
			strconv.Itoa(itemCount),
			fmt.Sprintf("%.2f", order.Subtotal),
			fmt.Sprintf("%.2f", order.Discount),
			fmt.Sprintf("%.2f", order.ShippingCost),
			fmt.Sprintf("%.2f", order.Total),
			order.CouponCode,
			order.ShippingAddress.City,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parseWindow parses an optional [from, to) date window. Dates accept
// RFC3339 or plain YYYY-MM-DD; the default window is the last 30 days.
func parseWindow(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	var err error
	if fromStr != "" {
		if from, err = parseDate(fromStr); err != nil {
			return time.Time{}, time.Time{}, apperrors.BadRequest("invalid from date")
		}
	}
	if toStr != "" {
		if to, err = parseDate(toStr); err != nil {
			return time.Time{}, time.Time{}, apperrors.BadRequest("invalid to date")
		}
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, apperrors.BadRequest("to must be after from")
	}
	return from, to, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
