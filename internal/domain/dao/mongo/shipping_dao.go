package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// shippingZoneDAO implements dao.ShippingZoneDAO using MongoDB.
type shippingZoneDAO struct {
	*baseDAO[entity.ShippingZone]
}

// NewShippingZoneDAO creates a MongoDB-backed ShippingZoneDAO.
func NewShippingZoneDAO(db *mongo.Database) dao.ShippingZoneDAO {
	return &shippingZoneDAO{baseDAO: newBaseDAO[entity.ShippingZone](db, CollShippingZones)}
}

func (d *shippingZoneDAO) Create(ctx context.Context, zone *entity.ShippingZone) error {
	zone.ID = primitive.NewObjectID()
	zone.CreatedAt = time.Now()
	zone.UpdatedAt = zone.CreatedAt
	if zone.Areas == nil {
		zone.Areas = []string{}
	}
	return d.insertOne(ctx, zone)
}

func (d *shippingZoneDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.ShippingZone, error) {
	return d.findOne(ctx, bson.M{"_id": id})
}

func (d *shippingZoneDAO) FindByName(ctx context.Context, name string) (*entity.ShippingZone, error) {
	return d.findOne(ctx, bson.M{"name": name})
}

func (d *shippingZoneDAO) Update(ctx context.Context, zone *entity.ShippingZone) error {
	zone.UpdatedAt = time.Now()
	return d.updateOne(ctx, bson.M{"_id": zone.ID}, bson.M{"$set": zone})
}

func (d *shippingZoneDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	return d.deleteOne(ctx, bson.M{"_id": id})
}

func (d *shippingZoneDAO) FindActive(ctx context.Context) ([]*entity.ShippingZone, error) {
	return d.findMany(ctx, bson.M{"is_active": true},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

// shippingRateDAO implements dao.ShippingRateDAO using MongoDB.
type shippingRateDAO struct {
	*baseDAO[entity.ShippingRate]
}

// NewShippingRateDAO creates a MongoDB-backed ShippingRateDAO.
func NewShippingRateDAO(db *mongo.Database) dao.ShippingRateDAO {
	return &shippingRateDAO{baseDAO: newBaseDAO[entity.ShippingRate](db, CollShippingRates)}
}

func (d *shippingRateDAO) Create(ctx context.Context, rate *entity.ShippingRate) error {
	rate.ID = primitive.NewObjectID()
	rate.CreatedAt = time.Now()
	rate.UpdatedAt = rate.CreatedAt
	return d.insertOne(ctx, rate)
}

func (d *shippingRateDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.ShippingRate, error) {
	return d.findOne(ctx, bson.M{"_id": id})
}

func (d *shippingRateDAO) FindByZone(ctx context.Context, zoneID primitive.ObjectID) ([]*entity.ShippingRate, error) {
	return d.findMany(ctx, bson.M{"zone": zoneID, "is_active": true},
		options.Find().SetSort(bson.D{{Key: "price", Value: 1}}))
}

func (d *shippingRateDAO) Update(ctx context.Context, rate *entity.ShippingRate) error {
	rate.UpdatedAt = time.Now()
	return d.updateOne(ctx, bson.M{"_id": rate.ID}, bson.M{"$set": rate})
}

func (d *shippingRateDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	return d.deleteOne(ctx, bson.M{"_id": id})
}

// shipmentDAO implements dao.ShipmentDAO using MongoDB.
type shipmentDAO struct {
	*baseDAO[entity.Shipment]
}

// NewShipmentDAO creates a MongoDB-backed ShipmentDAO.
func NewShipmentDAO(db *mongo.Database) dao.ShipmentDAO {
	return &shipmentDAO{baseDAO: newBaseDAO[entity.Shipment](db, CollShipments)}
}

func (d *shipmentDAO) Create(ctx context.Context, shipment *entity.Shipment) error {
	shipment.ID = primitive.NewObjectID()
	shipment.CreatedAt = time.Now()
	shipment.UpdatedAt = shipment.CreatedAt
	if shipment.TrackingHistory == nil {
		shipment.TrackingHistory = []entity.TrackingEntry{}
	}
	return d.insertOne(ctx, shipment)
}

func (d *shipmentDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Shipment, error) {
	return d.findOne(ctx, bson.M{"_id": id})
}

func (d *shipmentDAO) FindByOrder(ctx context.Context, orderID primitive.ObjectID) (*entity.Shipment, error) {
	return d.findOne(ctx, bson.M{"order": orderID})
}

func (d *shipmentDAO) Update(ctx context.Context, shipment *entity.Shipment) error {
	shipment.UpdatedAt = time.Now()
	return d.updateOne(ctx, bson.M{"_id": shipment.ID}, bson.M{"$set": shipment})
}

func (d *shipmentDAO) FindAll(ctx context.Context, status entity.ShipmentStatus, page, limit int) ([]*entity.Shipment, int64, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	return d.findPage(ctx, query, bson.D{{Key: "created_at", Value: -1}}, page, limit)
}
