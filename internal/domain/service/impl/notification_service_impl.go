package impl

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/events"
	"github.com/velora/velora-commerce-go/internal/websocket"
)

// notificationService implements service.NotificationService and
// events.Handler. The dispatcher feeds queued events into Handle, which
// persists them and pushes to connected websocket clients.
type notificationService struct {
	notificationDAO dao.NotificationDAO
	hub             *websocket.Hub
	logger          *zap.Logger
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(notificationDAO dao.NotificationDAO, hub *websocket.Hub, logger *zap.Logger) service.NotificationService {
	return &notificationService{
		notificationDAO: notificationDAO,
		hub:             hub,
		logger:          logger,
	}
}

// NewNotificationHandler exposes the service as an event handler for the
// dispatcher.
func NewNotificationHandler(svc service.NotificationService) events.Handler {
	return svc.(*notificationService)
}

func (s *notificationService) Handle(ctx context.Context, event *events.Event) error {
	notification := &entity.Notification{
		Type:     event.Type,
		Title:    event.Title,
		Message:  event.Message,
		ForAdmin: event.ForAdmin,
		ForUser:  event.ForUser,
		Order:    event.Order,
		Product:  event.Product,
		Review:   event.Review,
	}
	if err := s.notificationDAO.Create(ctx, notification); err != nil {
		return err
	}

	message := websocket.NewMessage(websocket.MessageTypeNotification, notification)
	if notification.ForUser != nil {
		s.hub.SendToUser(notification.ForUser.Hex(), message)
	}
	if notification.ForAdmin {
		s.hub.SendToAdmins(message)
	}
	return nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*entity.Notification, int64, error) {
	return s.notificationDAO.FindForUser(ctx, userID, page, limit)
}

func (s *notificationService) ListForAdmin(ctx context.Context, page, limit int) ([]*entity.Notification, int64, error) {
	return s.notificationDAO.FindForAdmin(ctx, page, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, id primitive.ObjectID, caller *entity.User) error {
	notification, err := s.findAuthorized(ctx, id, caller)
	if err != nil {
		return err
	}
	if notification.IsRead {
		return nil
	}
	return s.notificationDAO.MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, caller *entity.User) (int64, error) {
	if caller.IsAdminRole() {
		return s.notificationDAO.MarkAllReadForAdmin(ctx)
	}
	return s.notificationDAO.MarkAllReadForUser(ctx, caller.ID)
}

func (s *notificationService) UnreadCount(ctx context.Context, caller *entity.User) (int64, error) {
	if caller.IsAdminRole() {
		return s.notificationDAO.CountUnreadForAdmin(ctx)
	}
	return s.notificationDAO.CountUnreadForUser(ctx, caller.ID)
}

func (s *notificationService) Purge(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -entity.NotificationRetentionDays)
	deleted, err := s.notificationDAO.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("purged old notifications", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}

func (s *notificationService) findAuthorized(ctx context.Context, id primitive.ObjectID, caller *entity.User) (*entity.Notification, error) {
	notification, err := s.notificationDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, service.ErrNotificationNotFound
	}
	if caller.IsAdminRole() {
		return notification, nil
	}
	if notification.ForUser == nil || *notification.ForUser != caller.ID {
		return nil, service.ErrForbidden
	}
	return notification, nil
}
