package dao

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// DashboardStats is the aggregate snapshot backing the admin dashboard
type DashboardStats struct {
	TotalOrders     int64   `json:"total_orders"`
	TodayOrders     int64   `json:"today_orders"`
	MonthOrders     int64   `json:"month_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	TodayRevenue    float64 `json:"today_revenue"`
	MonthRevenue    float64 `json:"month_revenue"`
	TotalCustomers  int64   `json:"total_customers"`
	NewCustomers    int64   `json:"new_customers"`
	TotalProducts   int64   `json:"total_products"`
	ActiveProducts  int64   `json:"active_products"`
	LowStockCount   int64   `json:"low_stock_count"`
	PendingReviews  int64   `json:"pending_reviews"`
}

// CategoryRevenue is revenue grouped by category via $lookup
type CategoryRevenue struct {
	CategoryID   primitive.ObjectID `bson:"_id" json:"category_id"`
	CategoryName string             `bson:"category_name" json:"category_name"`
	Revenue      float64            `bson:"revenue" json:"revenue"`
	OrderCount   int64              `bson:"order_count" json:"order_count"`
}

// CustomerStats is per-customer lifetime aggregation
type CustomerStats struct {
	UserID     primitive.ObjectID `bson:"_id" json:"user_id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	OrderCount int64              `bson:"order_count" json:"order_count"`
	TotalSpent float64            `bson:"total_spent" json:"total_spent"`
	LastOrder  time.Time          `bson:"last_order" json:"last_order"`
}

// AnalyticsDAO runs the read-side aggregation pipelines
type AnalyticsDAO interface {
	DashboardStats(ctx context.Context, now time.Time) (*DashboardStats, error)

	// RevenueBetween sums order totals in [from, to), excluding cancelled
	// and returned orders.
	RevenueBetween(ctx context.Context, from, to time.Time) (float64, error)

	TopProductsBySales(ctx context.Context, limit int) ([]*entity.Product, error)
	TopProductsByRating(ctx context.Context, limit int) ([]*entity.Product, error)
	RevenueByCategory(ctx context.Context, from, to time.Time) ([]*CategoryRevenue, error)
	TopCustomers(ctx context.Context, limit int) ([]*CustomerStats, error)

	// OrdersForExport streams orders in [from, to) for CSV export.
	OrdersForExport(ctx context.Context, from, to time.Time) ([]*entity.Order, error)
}
