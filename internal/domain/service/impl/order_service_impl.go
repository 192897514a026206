package impl

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/config"
	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/events"
)

// orderService implements service.OrderService
type orderService struct {
	orderDAO       dao.OrderDAO
	cartDAO        dao.CartDAO
	userDAO        dao.UserDAO
	productDAO     dao.ProductDAO
	productService service.ProductService
	cartService    service.CartService
	couponService  service.CouponService
	publisher      events.Publisher
	shippingCfg    *config.ShippingConfig
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService instance
func NewOrderService(
	orderDAO dao.OrderDAO,
	cartDAO dao.CartDAO,
	userDAO dao.UserDAO,
	productDAO dao.ProductDAO,
	productService service.ProductService,
	cartService service.CartService,
	couponService service.CouponService,
	publisher events.Publisher,
	cfg *config.Config,
	logger *zap.Logger,
) service.OrderService {
	return &orderService{
		orderDAO:       orderDAO,
		cartDAO:        cartDAO,
		userDAO:        userDAO,
		productDAO:     productDAO,
		productService: productService,
		cartService:    cartService,
		couponService:  couponService,
		publisher:      publisher,
		shippingCfg:    &cfg.Shipping,
		logger:         logger,
	}
}

func (s *orderService) Create(ctx context.Context, userID primitive.ObjectID, req *request.CreateOrderRequest) (*entity.Order, error) {
	// revalidate before reserving anything: a product can be archived, go
	// out of stock or change price between carting and checkout. Validate
	// refreshes stale prices in place, so a clean retry snapshots current
	// prices.
	validation, err := s.cartService.Validate(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart := validation.Cart
	if cart == nil || len(cart.Items) == 0 {
		return nil, service.ErrCartEmpty
	}
	if !validation.Valid {
		return nil, service.ErrCartChanged
	}

	adjustments := make([]dao.StockAdjustment, 0, len(cart.Items))
	for _, item := range cart.Items {
		adjustments = append(adjustments, dao.StockAdjustment{
			ProductID:  item.Product,
			VariantSKU: item.VariantSKU,
			Delta:      -item.Quantity,
		})
	}
	if err := s.productService.ReserveStock(ctx, adjustments); err != nil {
		return nil, err
	}

	// from here on any failure must return the reserved stock
	fail := func(cause error) (*entity.Order, error) {
		if err := s.productService.RestoreStock(ctx, adjustments); err != nil {
			s.logger.Error("stock restore after failed order creation",
				zap.String("user_id", userID.Hex()), zap.Error(err))
		}
		return nil, cause
	}

	if cart.CouponCode != "" {
		if err := s.couponService.Redeem(ctx, cart.CouponCode); err != nil {
			return fail(err)
		}
	}

	now := time.Now()
	method := entity.ShippingMethod(req.ShippingMethod)
	order := &entity.Order{
		OrderNumber:     entity.NewOrderNumber(now),
		User:            userID,
		Items:           orderItemsFromCart(cart),
		Status:          entity.OrderStatusPending,
		PaymentStatus:   entity.PaymentStateUnpaid,
		PaymentMethod:   req.PaymentMethod,
		ShippingMethod:  method,
		ShippingAddress: addressFromRequest(&req.ShippingAddress),
		CouponCode:      cart.CouponCode,
		Subtotal:        cart.Subtotal,
		Discount:        cart.Discount,
		Notes:           req.Notes,
	}
	order.ShippingCost = s.shippingCost(method, cart.Subtotal-cart.Discount)
	order.Total = order.Subtotal - order.Discount + order.ShippingCost
	order.AppendTimeline(entity.OrderStatusPending, "order placed", &userID)

	if err := s.orderDAO.Create(ctx, order); err != nil {
		return fail(err)
	}

	if err := s.cartDAO.DeleteByUser(ctx, userID); err != nil {
		s.logger.Warn("cart cleanup after order creation",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}
	if err := s.userDAO.IncrementOrderStats(ctx, userID, order.Total); err != nil {
		s.logger.Warn("user order stats update",
			zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	for _, item := range order.Items {
		if err := s.productDAO.IncrementSalesCount(ctx, item.Product, int64(item.Quantity)); err != nil {
			s.logger.Warn("product sales count update",
				zap.String("product_id", item.Product.Hex()), zap.Error(err))
		}
	}

	s.publish(ctx, &events.Event{
		Type:     entity.NotifyOrderPlaced,
		Title:    "Order placed",
		Message:  fmt.Sprintf("Order %s has been placed", order.OrderNumber),
		ForAdmin: true,
		ForUser:  &order.User,
		Order:    &order.ID,
	})

	return order, nil
}

func (s *orderService) GetByID(ctx context.Context, id primitive.ObjectID, caller *entity.User) (*entity.Order, error) {
	order, err := s.orderDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, service.ErrOrderNotFound
	}
	if err := authorizeOrderAccess(order, caller); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetByNumber(ctx context.Context, orderNumber string, caller *entity.User) (*entity.Order, error) {
	order, err := s.orderDAO.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, service.ErrOrderNotFound
	}
	if err := authorizeOrderAccess(order, caller); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListMine(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*entity.Order, int64, error) {
	return s.orderDAO.FindAll(ctx, dao.OrderFilter{User: &userID}, page, limit)
}

func (s *orderService) List(ctx context.Context, filter dao.OrderFilter, page, limit int) ([]*entity.Order, int64, error) {
	return s.orderDAO.FindAll(ctx, filter, page, limit)
}

func (s *orderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.OrderStatus, note string, changedBy *primitive.ObjectID) (*entity.Order, error) {
	order, err := s.orderDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, service.ErrOrderNotFound
	}
	if !entity.CanTransition(order.Status, status) {
		return nil, service.ErrInvalidTransition
	}

	order.Status = status
	order.AppendTimeline(status, note, changedBy)
	switch status {
	case entity.OrderStatusDelivered:
		now := time.Now()
		order.DeliveredAt = &now
	case entity.OrderStatusCancelled, entity.OrderStatusReturned:
		s.restoreOrderStock(ctx, order)
	}

	if err := s.orderDAO.Update(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, &events.Event{
		Type:    entity.NotifyOrderStatus,
		Title:   "Order update",
		Message: fmt.Sprintf("Order %s is now %s", order.OrderNumber, order.Status),
		ForUser: &order.User,
		Order:   &order.ID,
	})
	return order, nil
}

func (s *orderService) Cancel(ctx context.Context, id, userID primitive.ObjectID, reason string) (*entity.Order, error) {
	order, err := s.orderDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil || order.User != userID {
		return nil, service.ErrOrderNotFound
	}
	if !order.IsCancellableByCustomer() {
		return nil, service.ErrOrderNotCancelable
	}
	return s.UpdateStatus(ctx, id, entity.OrderStatusCancelled, reason, &userID)
}

func (s *orderService) SetPaymentState(ctx context.Context, id primitive.ObjectID, state entity.PaymentState, method string) (*entity.Order, error) {
	order, err := s.orderDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, service.ErrOrderNotFound
	}

	order.PaymentStatus = state
	if method != "" {
		order.PaymentMethod = method
	}
	if state == entity.PaymentStatePaid {
		now := time.Now()
		order.PaidAt = &now
		if order.Status == entity.OrderStatusPending {
			order.Status = entity.OrderStatusConfirmed
			order.AppendTimeline(entity.OrderStatusConfirmed, "payment received", nil)
		}
	}

	if err := s.orderDAO.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) shippingCost(method entity.ShippingMethod, payable float64) float64 {
	if s.shippingCfg.FreeShippingMinimum > 0 && payable >= s.shippingCfg.FreeShippingMinimum {
		return 0
	}
	if method == entity.ShippingExpress {
		return s.shippingCfg.ExpressRate
	}
	return s.shippingCfg.StandardRate
}

func (s *orderService) restoreOrderStock(ctx context.Context, order *entity.Order) {
	adjustments := make([]dao.StockAdjustment, 0, len(order.Items))
	for _, item := range order.Items {
		// RestoreStock reverses the adjustments it is given, so hand it
		// the original reservation deltas.
		adjustments = append(adjustments, dao.StockAdjustment{
			ProductID:  item.Product,
			VariantSKU: item.VariantSKU,
			Delta:      -item.Quantity,
		})
	}
	if err := s.productService.RestoreStock(ctx, adjustments); err != nil {
		s.logger.Error("stock restore on order cancellation",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}
}

func (s *orderService) publish(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("order event publish", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func orderItemsFromCart(cart *entity.Cart) []entity.OrderItem {
	items := make([]entity.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, entity.OrderItem{
			Product:    item.Product,
			VariantSKU: item.VariantSKU,
			Name:       item.Name,
			Image:      item.Image,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}
	return items
}

func authorizeOrderAccess(order *entity.Order, caller *entity.User) error {
	if caller == nil {
		return service.ErrForbidden
	}
	if caller.IsAdminRole() || order.User == caller.ID {
		return nil
	}
	return service.ErrForbidden
}
