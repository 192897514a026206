package impl

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/testutil/mocks"
)

func setupAnalyticsService(t *testing.T) (*mocks.MockAnalyticsDAO, *analyticsService) {
	t.Helper()
	analyticsDAO := mocks.NewMockAnalyticsDAO()
	svc := NewAnalyticsService(analyticsDAO, noopCache()).(*analyticsService)
	return analyticsDAO, svc
}

func TestAnalyticsDashboard(t *testing.T) {
	analyticsDAO, svc := setupAnalyticsService(t)
	analyticsDAO.Stats = &dao.DashboardStats{TotalOrders: 42, TotalRevenue: 9000}
	analyticsDAO.TopBySales = []*entity.Product{{Name: "Bestseller"}}
	analyticsDAO.Customers = []*dao.CustomerStats{{Name: "Alice", TotalSpent: 500}}
	analyticsDAO.CategoryRevenue = []*dao.CategoryRevenue{{CategoryName: "Phones", Revenue: 3000}}

	dashboard, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dashboard.Stats.TotalOrders != 42 {
		t.Errorf("TotalOrders = %d, want 42", dashboard.Stats.TotalOrders)
	}
	if len(dashboard.TopBySales) != 1 || dashboard.TopBySales[0].Name != "Bestseller" {
		t.Errorf("unexpected TopBySales: %+v", dashboard.TopBySales)
	}
	if len(dashboard.TopCustomers) != 1 {
		t.Errorf("TopCustomers = %d, want 1", len(dashboard.TopCustomers))
	}
	if len(dashboard.CategorySales) != 1 || dashboard.CategorySales[0].Revenue != 3000 {
		t.Errorf("unexpected CategorySales: %+v", dashboard.CategorySales)
	}
}

func TestAnalyticsDashboardAggregationError(t *testing.T) {
	analyticsDAO, svc := setupAnalyticsService(t)
	analyticsDAO.TopProductsErr = context.DeadlineExceeded

	if _, err := svc.Dashboard(context.Background()); err == nil {
		t.Fatal("expected the aggregation error to surface")
	}
}

func TestAnalyticsRevenueByCategoryWindow(t *testing.T) {
	analyticsDAO, svc := setupAnalyticsService(t)
	analyticsDAO.CategoryRevenue = []*dao.CategoryRevenue{{CategoryName: "Phones", Revenue: 1200}}
	ctx := context.Background()

	rows, err := svc.RevenueByCategory(ctx, "2026-01-01", "2026-02-01")
	if err != nil {
		t.Fatalf("RevenueByCategory: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}

	if _, err := svc.RevenueByCategory(ctx, "yesterday", ""); err == nil {
		t.Error("expected an error for a malformed from date")
	}
	if _, err := svc.RevenueByCategory(ctx, "2026-02-01", "2026-01-01"); err == nil {
		t.Error("expected an error for an inverted window")
	}
}

func TestAnalyticsExportOrdersCSV(t *testing.T) {
	analyticsDAO, svc := setupAnalyticsService(t)
	analyticsDAO.ExportOrders = []*entity.Order{{
		OrderNumber:   "ORD-20260115-00042",
		Status:        entity.OrderStatusDelivered,
		PaymentStatus: entity.PaymentStatePaid,
		PaymentMethod: "bkash",
		Items: []entity.OrderItem{
			{Quantity: 2},
			{Quantity: 1},
		},
		Subtotal:     300,
		Discount:     30,
		ShippingCost: 60,
		Total:        330,
		CouponCode:   "SAVE10",
		ShippingAddress: entity.Address{
			City: "Dhaka",
		},
		CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}}

	raw, err := svc.ExportOrdersCSV(context.Background(), "2026-01-01", "2026-02-01")
	if err != nil {
		t.Fatalf("ExportOrdersCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want header plus one row", len(records))
	}
	if records[0][0] != "order_number" {
		t.Errorf("header[0] = %q", records[0][0])
	}
	row := records[1]
	if row[0] != "ORD-20260115-00042" {
		t.Errorf("order_number = %q", row[0])
	}
	if row[5] != "3" {
		t.Errorf("items = %q, want 3", row[5])
	}
	if row[9] != "330.00" {
		t.Errorf("total = %q, want 330.00", row[9])
	}
	if row[11] != "Dhaka" {
		t.Errorf("city = %q, want Dhaka", row[11])
	}
}
