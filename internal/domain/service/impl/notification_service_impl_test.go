package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/events"
	"github.com/velora/velora-commerce-go/internal/testutil/mocks"
	"github.com/velora/velora-commerce-go/internal/websocket"
)

func setupNotificationService(t *testing.T) (service.NotificationService, *mocks.MockNotificationDAO) {
	t.Helper()
	notificationDAO := mocks.NewMockNotificationDAO()
	hub := websocket.NewHub(zap.NewNop())
	go hub.Run()
	svc := NewNotificationService(notificationDAO, hub, zap.NewNop())
	return svc, notificationDAO
}

func customer(id primitive.ObjectID) *entity.User {
	return &entity.User{ID: id, Role: entity.RoleCustomer}
}

func TestNotificationServiceHandlePersists(t *testing.T) {
	svc, _ := setupNotificationService(t)
	handler := NewNotificationHandler(svc)
	userID := primitive.NewObjectID()

	err := handler.Handle(context.Background(), &events.Event{
		Type:    entity.NotifyOrderStatus,
		Title:   "Order update",
		Message: "Order VLR-1 is now shipped",
		ForUser: &userID,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	list, total, err := svc.ListForUser(context.Background(), userID, 1, 20)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("got %d/%d notifications, want 1", len(list), total)
	}
	if list[0].Title != "Order update" {
		t.Errorf("title = %q", list[0].Title)
	}
}

func TestNotificationServiceMarkReadOwnership(t *testing.T) {
	svc, notificationDAO := setupNotificationService(t)
	owner := primitive.NewObjectID()
	ownerID := owner
	n := notificationDAO.AddNotification(&entity.Notification{
		Type: entity.NotifyOrderStatus, Title: "t", Message: "m", ForUser: &ownerID,
	})
	ctx := context.Background()

	if err := svc.MarkRead(ctx, n.ID, customer(primitive.NewObjectID())); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if err := svc.MarkRead(ctx, n.ID, customer(owner)); err != nil {
		t.Fatalf("MarkRead by owner: %v", err)
	}
	if !n.IsRead {
		t.Error("notification not marked read")
	}
}

func TestNotificationServiceMarkReadMissing(t *testing.T) {
	svc, _ := setupNotificationService(t)

	err := svc.MarkRead(context.Background(), primitive.NewObjectID(), customer(primitive.NewObjectID()))
	if !errors.Is(err, service.ErrNotificationNotFound) {
		t.Fatalf("err = %v, want ErrNotificationNotFound", err)
	}
}

func TestNotificationServiceUnreadCountByAudience(t *testing.T) {
	svc, notificationDAO := setupNotificationService(t)
	userID := primitive.NewObjectID()
	uid := userID
	notificationDAO.AddNotification(&entity.Notification{Type: entity.NotifyOrderStatus, ForUser: &uid})
	notificationDAO.AddNotification(&entity.Notification{Type: entity.NotifyLowStock, ForAdmin: true})
	notificationDAO.AddNotification(&entity.Notification{Type: entity.NotifyLowStock, ForAdmin: true, IsRead: true})
	ctx := context.Background()

	userCount, err := svc.UnreadCount(ctx, customer(userID))
	if err != nil {
		t.Fatalf("UnreadCount user: %v", err)
	}
	if userCount != 1 {
		t.Errorf("user unread = %d, want 1", userCount)
	}

	admin := &entity.User{ID: primitive.NewObjectID(), Role: entity.RoleAdmin}
	adminCount, err := svc.UnreadCount(ctx, admin)
	if err != nil {
		t.Fatalf("UnreadCount admin: %v", err)
	}
	if adminCount != 1 {
		t.Errorf("admin unread = %d, want 1", adminCount)
	}
}

func TestNotificationServiceMarkAllRead(t *testing.T) {
	svc, notificationDAO := setupNotificationService(t)
	userID := primitive.NewObjectID()
	uid := userID
	notificationDAO.AddNotification(&entity.Notification{Type: entity.NotifyOrderStatus, ForUser: &uid})
	notificationDAO.AddNotification(&entity.Notification{Type: entity.NotifyOrderStatus, ForUser: &uid})

	updated, err := svc.MarkAllRead(context.Background(), customer(userID))
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2", updated)
	}
}

func TestNotificationServicePurge(t *testing.T) {
	svc, notificationDAO := setupNotificationService(t)
	old := notificationDAO.AddNotification(&entity.Notification{Type: entity.NotifyOrderStatus, ForAdmin: true})
	old.CreatedAt = time.Now().AddDate(0, 0, -entity.NotificationRetentionDays-1)
	fresh := notificationDAO.AddNotification(&entity.Notification{Type: entity.NotifyOrderStatus, ForAdmin: true})
	fresh.CreatedAt = time.Now()

	deleted, err := svc.Purge(context.Background())
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if remaining, _ := notificationDAO.FindByID(context.Background(), fresh.ID); remaining == nil {
		t.Error("fresh notification purged")
	}
}
