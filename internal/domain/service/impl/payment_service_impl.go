package impl

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/events"
	"github.com/velora/velora-commerce-go/internal/payment/gateway"
)

const paymentCurrency = "BDT"

// paymentService implements service.PaymentService
type paymentService struct {
	paymentDAO   dao.PaymentDAO
	orderDAO     dao.OrderDAO
	orderService service.OrderService
	gateways     map[entity.PaymentMethod]gateway.Gateway
	publisher    events.Publisher
	logger       *zap.Logger
}

// NewPaymentService creates a new PaymentService instance
func NewPaymentService(
	paymentDAO dao.PaymentDAO,
	orderDAO dao.OrderDAO,
	orderService service.OrderService,
	gateways []gateway.Gateway,
	publisher events.Publisher,
	logger *zap.Logger,
) service.PaymentService {
	byMethod := make(map[entity.PaymentMethod]gateway.Gateway, len(gateways))
	for _, g := range gateways {
		byMethod[g.Method()] = g
	}
	return &paymentService{
		paymentDAO:   paymentDAO,
		orderDAO:     orderDAO,
		orderService: orderService,
		gateways:     byMethod,
		publisher:    publisher,
		logger:       logger,
	}
}

func (s *paymentService) Initiate(ctx context.Context, userID primitive.ObjectID, req *request.InitiatePaymentRequest) (*response.PaymentInitResponse, error) {
	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return nil, service.ErrOrderNotFound
	}
	order, err := s.orderDAO.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.User != userID {
		return nil, service.ErrOrderNotFound
	}
	if order.PaymentStatus == entity.PaymentStatePaid {
		return nil, service.ErrOrderAlreadyPaid
	}

	method := entity.PaymentMethod(req.Method)
	payment := &entity.Payment{
		Order:         order.ID,
		User:          userID,
		Method:        method,
		Status:        entity.PaymentPending,
		Amount:        order.Total,
		Currency:      paymentCurrency,
		TransactionID: entity.NewTransactionID(time.Now()),
	}

	gw, hosted := s.gateways[method]
	if hosted {
		result, err := gw.Initiate(ctx, payment, order)
		if err != nil {
			return nil, err
		}
		payment.Status = entity.PaymentProcessing
		payment.GatewayRef = result.GatewayRef
		payment.GatewayURL = result.RedirectURL
	}

	if err := s.paymentDAO.Create(ctx, payment); err != nil {
		return nil, err
	}
	return &response.PaymentInitResponse{
		Payment:     payment,
		RedirectURL: payment.GatewayURL,
	}, nil
}

func (s *paymentService) HandleCallback(ctx context.Context, req *request.PaymentCallbackRequest) (*entity.Payment, error) {
	payment, err := s.paymentDAO.FindByTransactionID(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, service.ErrPaymentNotFound
	}
	// callbacks can be replayed by the gateway; only the first one counts
	if payment.Status != entity.PaymentPending && payment.Status != entity.PaymentProcessing {
		return payment, nil
	}

	if req.GatewayRef != "" {
		payment.GatewayRef = req.GatewayRef
	}
	switch req.Status {
	case "completed":
		now := time.Now()
		payment.Status = entity.PaymentCompleted
		payment.CompletedAt = &now
	case "cancelled":
		payment.Status = entity.PaymentCancelled
		payment.FailureReason = "cancelled by customer"
	default:
		payment.Status = entity.PaymentFailed
		payment.FailureReason = req.FailureReason
	}

	if err := s.paymentDAO.Update(ctx, payment); err != nil {
		return nil, err
	}
	s.cascade(ctx, payment)
	return payment, nil
}

func (s *paymentService) Refund(ctx context.Context, id primitive.ObjectID, reason string) (*entity.Payment, error) {
	payment, err := s.paymentDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, service.ErrPaymentNotFound
	}
	if !payment.CanRefund() {
		return nil, service.ErrPaymentNotRefundable
	}

	now := time.Now()
	payment.Status = entity.PaymentRefunded
	payment.RefundedAt = &now
	payment.FailureReason = reason
	if err := s.paymentDAO.Update(ctx, payment); err != nil {
		return nil, err
	}

	if _, err := s.orderService.SetPaymentState(ctx, payment.Order, entity.PaymentStateRefunded, ""); err != nil {
		s.logger.Error("order payment state after refund",
			zap.String("transaction_id", payment.TransactionID), zap.Error(err))
	}
	return payment, nil
}

func (s *paymentService) GetByOrder(ctx context.Context, orderID primitive.ObjectID) ([]*entity.Payment, error) {
	return s.paymentDAO.FindByOrder(ctx, orderID)
}

func (s *paymentService) List(ctx context.Context, status entity.PaymentStatus, page, limit int) ([]*entity.Payment, int64, error) {
	return s.paymentDAO.FindAll(ctx, status, page, limit)
}

// cascade reflects a settled payment onto its order and notifies the customer.
func (s *paymentService) cascade(ctx context.Context, payment *entity.Payment) {
	state := entity.PaymentStateFailed
	if payment.Status == entity.PaymentCompleted {
		state = entity.PaymentStatePaid
	}
	if _, err := s.orderService.SetPaymentState(ctx, payment.Order, state, string(payment.Method)); err != nil {
		s.logger.Error("order payment state after callback",
			zap.String("transaction_id", payment.TransactionID), zap.Error(err))
	}

	event := &events.Event{
		Type:    entity.NotifyPaymentStatus,
		Title:   "Payment update",
		Message: fmt.Sprintf("Payment %s is %s", payment.TransactionID, payment.Status),
		ForUser: &payment.User,
		Order:   &payment.Order,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("payment event publish",
			zap.String("transaction_id", payment.TransactionID), zap.Error(err))
	}
}
