package dao

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// ShippingZoneDAO provides access to shipping zones
type ShippingZoneDAO interface {
	Create(ctx context.Context, zone *entity.ShippingZone) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.ShippingZone, error)
	FindByName(ctx context.Context, name string) (*entity.ShippingZone, error)
	Update(ctx context.Context, zone *entity.ShippingZone) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindActive(ctx context.Context) ([]*entity.ShippingZone, error)
}

// ShippingRateDAO provides access to shipping rates
type ShippingRateDAO interface {
	Create(ctx context.Context, rate *entity.ShippingRate) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.ShippingRate, error)
	FindByZone(ctx context.Context, zoneID primitive.ObjectID) ([]*entity.ShippingRate, error)
	Update(ctx context.Context, rate *entity.ShippingRate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ShipmentDAO provides access to shipments
type ShipmentDAO interface {
	Create(ctx context.Context, shipment *entity.Shipment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Shipment, error)
	FindByOrder(ctx context.Context, orderID primitive.ObjectID) (*entity.Shipment, error)
	Update(ctx context.Context, shipment *entity.Shipment) error
	FindAll(ctx context.Context, status entity.ShipmentStatus, page, limit int) ([]*entity.Shipment, int64, error)
}
