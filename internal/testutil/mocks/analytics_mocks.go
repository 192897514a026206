package mocks

import (
	"context"
	"time"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// MockAnalyticsDAO returns canned aggregation results. The read-side
// pipelines live in mongo, so tests only set the expected outputs.
type MockAnalyticsDAO struct {
	Stats           *dao.DashboardStats
	Revenue         float64
	TopBySales      []*entity.Product
	TopByRating     []*entity.Product
	CategoryRevenue []*dao.CategoryRevenue
	Customers       []*dao.CustomerStats
	ExportOrders    []*entity.Order

	DashboardStatsErr    error
	RevenueBetweenErr    error
	TopProductsErr       error
	RevenueByCategoryErr error
	TopCustomersErr      error
	OrdersForExportErr   error
}

var _ dao.AnalyticsDAO = (*MockAnalyticsDAO)(nil)

func NewMockAnalyticsDAO() *MockAnalyticsDAO {
	return &MockAnalyticsDAO{Stats: &dao.DashboardStats{}}
}

func (m *MockAnalyticsDAO) DashboardStats(ctx context.Context, now time.Time) (*dao.DashboardStats, error) {
	if m.DashboardStatsErr != nil {
		return nil, m.DashboardStatsErr
	}
	return m.Stats, nil
}

func (m *MockAnalyticsDAO) RevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	if m.RevenueBetweenErr != nil {
		return 0, m.RevenueBetweenErr
	}
	return m.Revenue, nil
}

func (m *MockAnalyticsDAO) TopProductsBySales(ctx context.Context, limit int) ([]*entity.Product, error) {
	if m.TopProductsErr != nil {
		return nil, m.TopProductsErr
	}
	return m.TopBySales, nil
}

func (m *MockAnalyticsDAO) TopProductsByRating(ctx context.Context, limit int) ([]*entity.Product, error) {
	if m.TopProductsErr != nil {
		return nil, m.TopProductsErr
	}
	return m.TopByRating, nil
}

func (m *MockAnalyticsDAO) RevenueByCategory(ctx context.Context, from, to time.Time) ([]*dao.CategoryRevenue, error) {
	if m.RevenueByCategoryErr != nil {
		return nil, m.RevenueByCategoryErr
	}
	return m.CategoryRevenue, nil
}

func (m *MockAnalyticsDAO) TopCustomers(ctx context.Context, limit int) ([]*dao.CustomerStats, error) {
	if m.TopCustomersErr != nil {
		return nil, m.TopCustomersErr
	}
	return m.Customers, nil
}

func (m *MockAnalyticsDAO) OrdersForExport(ctx context.Context, from, to time.Time) ([]*entity.Order, error) {
	if m.OrdersForExportErr != nil {
		return nil, m.OrdersForExportErr
	}
	return m.ExportOrders, nil
}
