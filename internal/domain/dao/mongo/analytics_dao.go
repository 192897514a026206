package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// analyticsDAO runs the read-side pipelines. It spans several collections,
// so it holds the database rather than embedding a single-collection base.
type analyticsDAO struct {
	db *mongo.Database
}

// NewAnalyticsDAO creates a MongoDB-backed AnalyticsDAO.
func NewAnalyticsDAO(db *mongo.Database) dao.AnalyticsDAO {
	return &analyticsDAO{db: db}
}

// revenueExcluded are the order statuses that never count toward revenue.
var revenueExcluded = bson.A{entity.OrderStatusCancelled, entity.OrderStatusReturned}

func revenueMatch(from, to time.Time) bson.M {
	return bson.M{
		"status":     bson.M{"$nin": revenueExcluded},
		"created_at": bson.M{"$gte": from, "$lt": to},
	}
}

func (d *analyticsDAO) DashboardStats(ctx context.Context, now time.Time) (*dao.DashboardStats, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	orders := d.db.Collection(CollOrders)
	users := d.db.Collection(CollUsers)
	products := d.db.Collection(CollProducts)
	reviews := d.db.Collection(CollReviews)

	stats := &dao.DashboardStats{}
	var err error

	if stats.TotalOrders, err = orders.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.TodayOrders, err = orders.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": dayStart}}); err != nil {
		return nil, err
	}
	if stats.MonthOrders, err = orders.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": monthStart}}); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = orders.CountDocuments(ctx, bson.M{"status": entity.OrderStatusPending}); err != nil {
		return nil, err
	}

	if stats.TotalRevenue, err = d.sumRevenue(ctx, bson.M{"status": bson.M{"$nin": revenueExcluded}}); err != nil {
		return nil, err
	}
	if stats.TodayRevenue, err = d.sumRevenue(ctx, revenueMatch(dayStart, now.Add(time.Second))); err != nil {
		return nil, err
	}
	if stats.MonthRevenue, err = d.sumRevenue(ctx, revenueMatch(monthStart, now.Add(time.Second))); err != nil {
		return nil, err
	}

	customerFilter := withNotDeleted(bson.M{"role": entity.RoleCustomer})
	if stats.TotalCustomers, err = users.CountDocuments(ctx, customerFilter); err != nil {
		return nil, err
	}
	newCustomerFilter := withNotDeleted(bson.M{
		"role":       entity.RoleCustomer,
		"created_at": bson.M{"$gte": monthStart},
	})
	if stats.NewCustomers, err = users.CountDocuments(ctx, newCustomerFilter); err != nil {
		return nil, err
	}

	if stats.TotalProducts, err = products.CountDocuments(ctx, notDeletedFilter()); err != nil {
		return nil, err
	}
	activeFilter := withNotDeleted(bson.M{"status": entity.ProductStatusActive})
	if stats.ActiveProducts, err = products.CountDocuments(ctx, activeFilter); err != nil {
		return nil, err
	}
	lowStockFilter := withNotDeleted(bson.M{
		"track_quantity": true,
		"status":         entity.ProductStatusActive,
		"$expr":          bson.M{"$lte": bson.A{"$quantity", "$low_stock_threshold"}},
	})
	if stats.LowStockCount, err = products.CountDocuments(ctx, lowStockFilter); err != nil {
		return nil, err
	}

	if stats.PendingReviews, err = reviews.CountDocuments(ctx, bson.M{"status": entity.ReviewPending}); err != nil {
		return nil, err
	}
	return stats, nil
}

func (d *analyticsDAO) sumRevenue(ctx context.Context, match bson.M) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total"},
		}}},
	}
	cursor, err := d.db.Collection(CollOrders).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (d *analyticsDAO) RevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return d.sumRevenue(ctx, revenueMatch(from, to))
}

func (d *analyticsDAO) TopProductsBySales(ctx context.Context, limit int) ([]*entity.Product, error) {
	return d.topProducts(ctx, bson.D{{Key: "sales_count", Value: -1}}, limit)
}

func (d *analyticsDAO) TopProductsByRating(ctx context.Context, limit int) ([]*entity.Product, error) {
	return d.topProducts(ctx, bson.D{{Key: "rating", Value: -1}, {Key: "review_count", Value: -1}}, limit)
}

func (d *analyticsDAO) topProducts(ctx context.Context, sort bson.D, limit int) ([]*entity.Product, error) {
	filter := withNotDeleted(bson.M{"status": entity.ProductStatusActive})
	opts := options.Find().SetSort(sort).SetLimit(int64(limit))
	cursor, err := d.db.Collection(CollProducts).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*entity.Product
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (d *analyticsDAO) RevenueByCategory(ctx context.Context, from, to time.Time) ([]*dao.CategoryRevenue, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: revenueMatch(from, to)}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         CollProducts,
			"localField":   "items.product",
			"foreignField": "_id",
			"as":           "product_doc",
		}}},
		{{Key: "$unwind", Value: "$product_doc"}},
		{{Key: "$group", Value: bson.M{
			"_id": "$product_doc.category",
			"revenue": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$items.price", "$items.quantity"},
			}},
			"order_count": bson.M{"$sum": 1},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         CollCategories,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "category_doc",
		}}},
		{{Key: "$unwind", Value: "$category_doc"}},
		{{Key: "$addFields", Value: bson.M{"category_name": "$category_doc.name"}}},
		{{Key: "$project", Value: bson.M{"category_doc": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}}}},
	}

	cursor, err := d.db.Collection(CollOrders).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []*dao.CategoryRevenue
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *analyticsDAO) TopCustomers(ctx context.Context, limit int) ([]*dao.CustomerStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$nin": revenueExcluded}}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$user",
			"order_count": bson.M{"$sum": 1},
			"total_spent": bson.M{"$sum": "$total"},
			"last_order":  bson.M{"$max": "$created_at"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total_spent", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         CollUsers,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "user_doc",
		}}},
		{{Key: "$unwind", Value: "$user_doc"}},
		{{Key: "$addFields", Value: bson.M{
			"name":  "$user_doc.name",
			"email": "$user_doc.email",
		}}},
		{{Key: "$project", Value: bson.M{"user_doc": 0}}},
	}

	cursor, err := d.db.Collection(CollOrders).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []*dao.CustomerStats
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *analyticsDAO) OrdersForExport(ctx context.Context, from, to time.Time) ([]*entity.Order, error) {
	filter := bson.M{"created_at": bson.M{"$gte": from, "$lt": to}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := d.db.Collection(CollOrders).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*entity.Order
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
