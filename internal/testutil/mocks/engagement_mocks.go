package mocks

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// MockReviewDAO is an in-memory ReviewDAO
type MockReviewDAO struct {
	mu      sync.RWMutex
	reviews map[primitive.ObjectID]*entity.Review

	CreateErr               error
	FindByIDErr             error
	FindByUserAndProductErr error
	UpdateErr               error
	DeleteErr               error
	FindByProductErr        error
	FindAllErr              error
	AggregateApprovedErr    error
}

var _ dao.ReviewDAO = (*MockReviewDAO)(nil)

func NewMockReviewDAO() *MockReviewDAO {
	return &MockReviewDAO{reviews: make(map[primitive.ObjectID]*entity.Review)}
}

// AddReview seeds a review, assigning an ID when missing
func (m *MockReviewDAO) AddReview(review *entity.Review) *entity.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	m.reviews[review.ID] = review
	return review
}

func (m *MockReviewDAO) Create(ctx context.Context, review *entity.Review) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	review.CreatedAt = time.Now()
	m.AddReview(review)
	return nil
}

func (m *MockReviewDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Review, error) {
	if m.FindByIDErr != nil {
		return nil, m.FindByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reviews[id], nil
}

func (m *MockReviewDAO) FindByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Review, error) {
	if m.FindByUserAndProductErr != nil {
		return nil, m.FindByUserAndProductErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.reviews {
		if r.User == userID && r.Product == productID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *MockReviewDAO) Update(ctx context.Context, review *entity.Review) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[review.ID] = review
	return nil
}

func (m *MockReviewDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reviews, id)
	return nil
}

func (m *MockReviewDAO) FindByProduct(ctx context.Context, productID primitive.ObjectID, status entity.ReviewStatus, page, limit int) ([]*entity.Review, int64, error) {
	if m.FindByProductErr != nil {
		return nil, 0, m.FindByProductErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*entity.Review
	for _, r := range m.reviews {
		if r.Product != productID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		matched = append(matched, r)
	}
	return paginate(matched, page, limit), int64(len(matched)), nil
}

func (m *MockReviewDAO) FindAll(ctx context.Context, status entity.ReviewStatus, page, limit int) ([]*entity.Review, int64, error) {
	if m.FindAllErr != nil {
		return nil, 0, m.FindAllErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*entity.Review
	for _, r := range m.reviews {
		if status != "" && r.Status != status {
			continue
		}
		matched = append(matched, r)
	}
	return paginate(matched, page, limit), int64(len(matched)), nil
}

func (m *MockReviewDAO) AggregateApproved(ctx context.Context, productID primitive.ObjectID) (*dao.RatingAggregate, error) {
	if m.AggregateApprovedErr != nil {
		return nil, m.AggregateApprovedErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum, count int64
	for _, r := range m.reviews {
		if r.Product == productID && r.Status == entity.ReviewApproved {
			sum += int64(r.Rating)
			count++
		}
	}
	agg := &dao.RatingAggregate{Count: count}
	if count > 0 {
		agg.Average = float64(sum) / float64(count)
	}
	return agg, nil
}

// MockNotificationDAO is an in-memory NotificationDAO
type MockNotificationDAO struct {
	mu            sync.RWMutex
	notifications map[primitive.ObjectID]*entity.Notification

	CreateErr          error
	FindByIDErr        error
	FindForUserErr     error
	FindForAdminErr    error
	MarkReadErr        error
	MarkAllReadErr     error
	CountUnreadErr     error
	DeleteOlderThanErr error
}

var _ dao.NotificationDAO = (*MockNotificationDAO)(nil)

func NewMockNotificationDAO() *MockNotificationDAO {
	return &MockNotificationDAO{notifications: make(map[primitive.ObjectID]*entity.Notification)}
}

// AddNotification seeds a notification, assigning an ID when missing
func (m *MockNotificationDAO) AddNotification(n *entity.Notification) *entity.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	m.notifications[n.ID] = n
	return n
}

func (m *MockNotificationDAO) Create(ctx context.Context, notification *entity.Notification) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	notification.CreatedAt = time.Now()
	m.AddNotification(notification)
	return nil
}

func (m *MockNotificationDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Notification, error) {
	if m.FindByIDErr != nil {
		return nil, m.FindByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.notifications[id], nil
}

func (m *MockNotificationDAO) FindForUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*entity.Notification, int64, error) {
	if m.FindForUserErr != nil {
		return nil, 0, m.FindForUserErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*entity.Notification
	for _, n := range m.notifications {
		if n.ForUser != nil && *n.ForUser == userID {
			matched = append(matched, n)
		}
	}
	return paginate(matched, page, limit), int64(len(matched)), nil
}

func (m *MockNotificationDAO) FindForAdmin(ctx context.Context, page, limit int) ([]*entity.Notification, int64, error) {
	if m.FindForAdminErr != nil {
		return nil, 0, m.FindForAdminErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*entity.Notification
	for _, n := range m.notifications {
		if n.ForAdmin {
			matched = append(matched, n)
		}
	}
	return paginate(matched, page, limit), int64(len(matched)), nil
}

func (m *MockNotificationDAO) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	if m.MarkReadErr != nil {
		return m.MarkReadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notifications[id]; ok {
		n.IsRead = true
	}
	return nil
}

func (m *MockNotificationDAO) MarkAllReadForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	if m.MarkAllReadErr != nil {
		return 0, m.MarkAllReadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var updated int64
	for _, n := range m.notifications {
		if n.ForUser != nil && *n.ForUser == userID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (m *MockNotificationDAO) MarkAllReadForAdmin(ctx context.Context) (int64, error) {
	if m.MarkAllReadErr != nil {
		return 0, m.MarkAllReadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var updated int64
	for _, n := range m.notifications {
		if n.ForAdmin && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (m *MockNotificationDAO) CountUnreadForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	if m.CountUnreadErr != nil {
		return 0, m.CountUnreadErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, n := range m.notifications {
		if n.ForUser != nil && *n.ForUser == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *MockNotificationDAO) CountUnreadForAdmin(ctx context.Context) (int64, error) {
	if m.CountUnreadErr != nil {
		return 0, m.CountUnreadErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, n := range m.notifications {
		if n.ForAdmin && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *MockNotificationDAO) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteOlderThanErr != nil {
		return 0, m.DeleteOlderThanErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, n := range m.notifications {
		if n.CreatedAt.Before(cutoff) {
			delete(m.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}
