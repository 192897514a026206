package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// userDAO implements dao.UserDAO using MongoDB.
type userDAO struct {
	*baseDAO[entity.User]
}

// NewUserDAO creates a MongoDB-backed UserDAO.
func NewUserDAO(db *mongo.Database) dao.UserDAO {
	return &userDAO{baseDAO: newBaseDAO[entity.User](db, CollUsers)}
}

func (d *userDAO) Create(ctx context.Context, user *entity.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.Addresses == nil {
		user.Addresses = []entity.Address{}
	}
	return d.insertOne(ctx, user)
}

func (d *userDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return d.findOne(ctx, withNotDeleted(bson.M{"_id": id}))
}

func (d *userDAO) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return d.findOne(ctx, withNotDeleted(bson.M{"email": email}))
}

func (d *userDAO) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return d.existsBy(ctx, withNotDeleted(bson.M{"email": email}))
}

func (d *userDAO) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	return d.updateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": user})
}

func (d *userDAO) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.UserStatus) error {
	return d.updateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
}

// Delete performs a soft delete.
func (d *userDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	return d.updateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"deleted_at": now, "updated_at": now},
	})
}

func (d *userDAO) FindAll(ctx context.Context, filter dao.UserFilter, page, limit int) ([]*entity.User, int64, error) {
	query := notDeletedFilter()
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = []bson.M{
			{"name": pattern},
			{"email": pattern},
		}
	}
	return d.findPage(ctx, query, bson.D{{Key: "created_at", Value: -1}}, page, limit)
}

func (d *userDAO) IncrementOrderStats(ctx context.Context, id primitive.ObjectID, amount float64) error {
	return d.updateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"total_orders": 1, "total_spent": amount},
		"$set": bson.M{"updated_at": time.Now()},
	})
}

// refreshTokenDAO implements dao.RefreshTokenDAO using MongoDB.
type refreshTokenDAO struct {
	*baseDAO[entity.RefreshToken]
}

// NewRefreshTokenDAO creates a MongoDB-backed RefreshTokenDAO.
func NewRefreshTokenDAO(db *mongo.Database) dao.RefreshTokenDAO {
	return &refreshTokenDAO{baseDAO: newBaseDAO[entity.RefreshToken](db, CollRefreshTokens)}
}

func (d *refreshTokenDAO) Create(ctx context.Context, token *entity.RefreshToken) error {
	token.ID = primitive.NewObjectID()
	token.CreatedAt = time.Now()
	return d.insertOne(ctx, token)
}

func (d *refreshTokenDAO) FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error) {
	return d.findOne(ctx, bson.M{"token": token})
}

func (d *refreshTokenDAO) RevokeByToken(ctx context.Context, token string) error {
	return d.updateOne(ctx, bson.M{"token": token}, bson.M{"$set": bson.M{"revoked": true}})
}

func (d *refreshTokenDAO) RevokeAllByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := d.updateMany(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{"revoked": true}})
	return err
}

func (d *refreshTokenDAO) DeleteExpired(ctx context.Context) (int64, error) {
	return d.deleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now()}})
}
