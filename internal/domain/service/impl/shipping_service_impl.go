package impl

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/config"
	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
)

// shippingService implements service.ShippingService
type shippingService struct {
	zoneDAO      dao.ShippingZoneDAO
	rateDAO      dao.ShippingRateDAO
	shipmentDAO  dao.ShipmentDAO
	orderDAO     dao.OrderDAO
	orderService service.OrderService
	fallbackZone string
	logger       *zap.Logger
}

// NewShippingService creates a new ShippingService instance
func NewShippingService(
	zoneDAO dao.ShippingZoneDAO,
	rateDAO dao.ShippingRateDAO,
	shipmentDAO dao.ShipmentDAO,
	orderDAO dao.OrderDAO,
	orderService service.OrderService,
	cfg *config.Config,
	logger *zap.Logger,
) service.ShippingService {
	return &shippingService{
		zoneDAO:      zoneDAO,
		rateDAO:      rateDAO,
		shipmentDAO:  shipmentDAO,
		orderDAO:     orderDAO,
		orderService: orderService,
		fallbackZone: cfg.Shipping.FallbackZone,
		logger:       logger,
	}
}

func (s *shippingService) CreateZone(ctx context.Context, req *request.CreateShippingZoneRequest) (*entity.ShippingZone, error) {
	zone := &entity.ShippingZone{
		Name:     req.Name,
		Areas:    req.Areas,
		IsActive: true,
	}
	if req.IsActive != nil {
		zone.IsActive = *req.IsActive
	}
	if err := s.zoneDAO.Create(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

func (s *shippingService) UpdateZone(ctx context.Context, id primitive.ObjectID, req *request.UpdateShippingZoneRequest) (*entity.ShippingZone, error) {
	zone, err := s.zoneDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, service.ErrZoneNotFound
	}

	if req.Name != nil {
		zone.Name = *req.Name
	}
	if req.Areas != nil {
		zone.Areas = req.Areas
	}
	if req.IsActive != nil {
		zone.IsActive = *req.IsActive
	}
	if err := s.zoneDAO.Update(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

func (s *shippingService) DeleteZone(ctx context.Context, id primitive.ObjectID) error {
	zone, err := s.zoneDAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if zone == nil {
		return service.ErrZoneNotFound
	}
	return s.zoneDAO.Delete(ctx, id)
}

func (s *shippingService) ListZones(ctx context.Context) ([]*entity.ShippingZone, error) {
	return s.zoneDAO.FindActive(ctx)
}

func (s *shippingService) CreateRate(ctx context.Context, req *request.CreateShippingRateRequest) (*entity.ShippingRate, error) {
	zoneID, err := primitive.ObjectIDFromHex(req.Zone)
	if err != nil {
		return nil, service.ErrZoneNotFound
	}
	zone, err := s.zoneDAO.FindByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, service.ErrZoneNotFound
	}

	rate := &entity.ShippingRate{
		Zone:                zoneID,
		Name:                req.Name,
		Price:               req.Price,
		FreeShippingMinimum: req.FreeShippingMinimum,
		WeightLimit:         req.WeightLimit,
		PerKgOverage:        req.PerKgOverage,
		EstimatedDays:       req.EstimatedDays,
		IsActive:            true,
	}
	if req.IsActive != nil {
		rate.IsActive = *req.IsActive
	}
	if err := s.rateDAO.Create(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *shippingService) UpdateRate(ctx context.Context, id primitive.ObjectID, req *request.UpdateShippingRateRequest) (*entity.ShippingRate, error) {
	rate, err := s.rateDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, service.ErrRateNotFound
	}

	if req.Name != nil {
		rate.Name = *req.Name
	}
	if req.Price != nil {
		rate.Price = *req.Price
	}
	if req.FreeShippingMinimum != nil {
		rate.FreeShippingMinimum = *req.FreeShippingMinimum
	}
	if req.WeightLimit != nil {
		rate.WeightLimit = *req.WeightLimit
	}
	if req.PerKgOverage != nil {
		rate.PerKgOverage = *req.PerKgOverage
	}
	if req.EstimatedDays != nil {
		rate.EstimatedDays = *req.EstimatedDays
	}
	if req.IsActive != nil {
		rate.IsActive = *req.IsActive
	}
	if err := s.rateDAO.Update(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *shippingService) DeleteRate(ctx context.Context, id primitive.ObjectID) error {
	rate, err := s.rateDAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rate == nil {
		return service.ErrRateNotFound
	}
	return s.rateDAO.Delete(ctx, id)
}

func (s *shippingService) ListRates(ctx context.Context, zoneID primitive.ObjectID) ([]*entity.ShippingRate, error) {
	return s.rateDAO.FindByZone(ctx, zoneID)
}

func (s *shippingService) Quote(ctx context.Context, req *request.ShippingQuoteRequest) ([]*response.ShippingQuote, error) {
	zone, err := s.matchZone(ctx, req.Area)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, service.ErrZoneNotFound
	}

	rates, err := s.rateDAO.FindByZone(ctx, zone.ID)
	if err != nil {
		return nil, err
	}

	quotes := make([]*response.ShippingQuote, 0, len(rates))
	for _, rate := range rates {
		quotes = append(quotes, &response.ShippingQuote{
			Zone:          zone.Name,
			RateID:        rate.ID.Hex(),
			Name:          rate.Name,
			Cost:          rate.CostFor(req.OrderTotal, req.WeightKg),
			EstimatedDays: rate.EstimatedDays,
		})
	}
	return quotes, nil
}

func (s *shippingService) CreateShipment(ctx context.Context, req *request.CreateShipmentRequest) (*entity.Shipment, error) {
	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return nil, service.ErrOrderNotFound
	}
	order, err := s.orderDAO.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, service.ErrOrderNotFound
	}

	existing, err := s.shipmentDAO.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, service.ErrShipmentExists
	}

	shipment := &entity.Shipment{
		Order:          orderID,
		Courier:        req.Courier,
		TrackingNumber: req.TrackingNumber,
		Status:         entity.ShipmentPending,
		Cost:           order.ShippingCost,
		WeightKg:       req.WeightKg,
	}
	if req.Zone != "" {
		zoneID, err := primitive.ObjectIDFromHex(req.Zone)
		if err != nil {
			return nil, service.ErrZoneNotFound
		}
		shipment.Zone = zoneID
	}
	shipment.AppendTracking(entity.ShipmentPending, "", "shipment created")

	if err := s.shipmentDAO.Create(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *shippingService) GetShipmentByOrder(ctx context.Context, orderID primitive.ObjectID) (*entity.Shipment, error) {
	shipment, err := s.shipmentDAO.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, service.ErrShipmentNotFound
	}
	return shipment, nil
}

func (s *shippingService) UpdateShipmentStatus(ctx context.Context, id primitive.ObjectID, req *request.UpdateShipmentStatusRequest, changedBy *primitive.ObjectID) (*entity.Shipment, error) {
	shipment, err := s.shipmentDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, service.ErrShipmentNotFound
	}

	status := entity.ShipmentStatus(req.Status)
	if !entity.CanTransitionShipment(shipment.Status, status) {
		return nil, service.ErrInvalidTransition
	}

	shipment.Status = status
	shipment.AppendTracking(status, req.Location, req.Note)
	if status == entity.ShipmentDelivered {
		now := time.Now()
		shipment.DeliveredAt = &now
	}
	if err := s.shipmentDAO.Update(ctx, shipment); err != nil {
		return nil, err
	}

	// delivery flows through the order state machine, which owns timeline
	// entries and customer notification
	if status == entity.ShipmentDelivered {
		if _, err := s.orderService.UpdateStatus(ctx, shipment.Order, entity.OrderStatusDelivered, "shipment delivered", changedBy); err != nil {
			s.logger.Error("order delivery propagation",
				zap.String("shipment_id", shipment.ID.Hex()),
				zap.String("order_id", shipment.Order.Hex()),
				zap.Error(err))
		}
	}
	return shipment, nil
}

func (s *shippingService) ListShipments(ctx context.Context, status entity.ShipmentStatus, page, limit int) ([]*entity.Shipment, int64, error) {
	return s.shipmentDAO.FindAll(ctx, status, page, limit)
}

// matchZone finds the first active zone covering the area, falling back to
// the configured catch-all zone when nothing matches.
func (s *shippingService) matchZone(ctx context.Context, area string) (*entity.ShippingZone, error) {
	zones, err := s.zoneDAO.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, zone := range zones {
		if zone.MatchesArea(area) {
			return zone, nil
		}
	}
	return s.zoneDAO.FindByName(ctx, s.fallbackZone)
}
