package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	apperrors "github.com/velora/velora-commerce-go/pkg/errors"
)

// couponDAO implements dao.CouponDAO using MongoDB.
type couponDAO struct {
	*baseDAO[entity.Coupon]
}

// NewCouponDAO creates a MongoDB-backed CouponDAO.
func NewCouponDAO(db *mongo.Database) dao.CouponDAO {
	return &couponDAO{baseDAO: newBaseDAO[entity.Coupon](db, CollCoupons)}
}

func (d *couponDAO) Create(ctx context.Context, coupon *entity.Coupon) error {
	coupon.ID = primitive.NewObjectID()
	coupon.Code = strings.ToUpper(coupon.Code)
	coupon.CreatedAt = time.Now()
	coupon.UpdatedAt = coupon.CreatedAt
	return d.insertOne(ctx, coupon)
}

func (d *couponDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Coupon, error) {
	return d.findOne(ctx, bson.M{"_id": id})
}

func (d *couponDAO) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	return d.findOne(ctx, bson.M{"code": strings.ToUpper(code)})
}

func (d *couponDAO) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return d.existsBy(ctx, bson.M{"code": strings.ToUpper(code)})
}

func (d *couponDAO) Update(ctx context.Context, coupon *entity.Coupon) error {
	coupon.Code = strings.ToUpper(coupon.Code)
	coupon.UpdatedAt = time.Now()
	return d.updateOne(ctx, bson.M{"_id": coupon.ID}, bson.M{"$set": coupon})
}

func (d *couponDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	return d.deleteOne(ctx, bson.M{"_id": id})
}

func (d *couponDAO) FindAll(ctx context.Context, page, limit int) ([]*entity.Coupon, int64, error) {
	return d.findPage(ctx, bson.M{}, bson.D{{Key: "created_at", Value: -1}}, page, limit)
}

// Redeem increments used_count with the usage limit, the active flag and the
// validity window all folded into the filter, so two concurrent redemptions
// of the last slot cannot both succeed and a coupon deactivated or expired
// after it was applied to a cart can no longer be consumed.
func (d *couponDAO) Redeem(ctx context.Context, code string) error {
	code = strings.ToUpper(code)
	now := time.Now()
	filter := bson.M{
		"code":       code,
		"is_active":  true,
		"start_date": bson.M{"$lte": now},
		"end_date":   bson.M{"$gte": now},
		"$or": []bson.M{
			{"usage_limit": nil},
			{"usage_limit": bson.M{"$exists": false}},
			{"$expr": bson.M{"$lt": bson.A{"$used_count", "$usage_limit"}}},
		},
	}
	res, err := d.collection.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"used_count": 1},
		"$set": bson.M{"updated_at": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		coupon, err := d.findOne(ctx, bson.M{"code": code})
		if err != nil {
			return err
		}
		if coupon == nil {
			return apperrors.ErrNotFound
		}
		if !coupon.IsActive || now.Before(coupon.StartDate) || now.After(coupon.EndDate) {
			return dao.ErrCouponInactive
		}
		return dao.ErrCouponExhausted
	}
	return nil
}

func (d *couponDAO) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	return d.updateMany(ctx, bson.M{
		"is_active": true,
		"end_date":  bson.M{"$lt": now},
	}, bson.M{
		"$set": bson.M{"is_active": false, "updated_at": now},
	})
}
