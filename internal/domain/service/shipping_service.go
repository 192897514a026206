package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
)

// ShippingService defines the interface for zones, rates and shipments.
// Delivery state never touches orders directly; it delegates to
// OrderService.UpdateStatus.
type ShippingService interface {
	CreateZone(ctx context.Context, req *request.CreateShippingZoneRequest) (*entity.ShippingZone, error)
	UpdateZone(ctx context.Context, id primitive.ObjectID, req *request.UpdateShippingZoneRequest) (*entity.ShippingZone, error)
	DeleteZone(ctx context.Context, id primitive.ObjectID) error
	ListZones(ctx context.Context) ([]*entity.ShippingZone, error)

	CreateRate(ctx context.Context, req *request.CreateShippingRateRequest) (*entity.ShippingRate, error)
	UpdateRate(ctx context.Context, id primitive.ObjectID, req *request.UpdateShippingRateRequest) (*entity.ShippingRate, error)
	DeleteRate(ctx context.Context, id primitive.ObjectID) error
	ListRates(ctx context.Context, zoneID primitive.ObjectID) ([]*entity.ShippingRate, error)

	// Quote matches the area to a zone (falling back to the configured
	// outside zone) and prices each active rate
	Quote(ctx context.Context, req *request.ShippingQuoteRequest) ([]*response.ShippingQuote, error)

	CreateShipment(ctx context.Context, req *request.CreateShipmentRequest) (*entity.Shipment, error)
	GetShipmentByOrder(ctx context.Context, orderID primitive.ObjectID) (*entity.Shipment, error)

	// UpdateShipmentStatus appends a tracking entry and, on delivery,
	// advances the order through OrderService
	UpdateShipmentStatus(ctx context.Context, id primitive.ObjectID, req *request.UpdateShipmentStatusRequest, changedBy *primitive.ObjectID) (*entity.Shipment, error)

	ListShipments(ctx context.Context, status entity.ShipmentStatus, page, limit int) ([]*entity.Shipment, int64, error)
}
