// Package mocks provides in-memory DAO implementations for service tests.
// Every mock supports per-method error injection.
package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// MockUserDAO is an in-memory UserDAO
type MockUserDAO struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*entity.User

	CreateErr              error
	FindByIDErr            error
	FindByEmailErr         error
	ExistsByEmailErr       error
	UpdateErr              error
	UpdateStatusErr        error
	DeleteErr              error
	FindAllErr             error
	IncrementOrderStatsErr error
}

var _ dao.UserDAO = (*MockUserDAO)(nil)

func NewMockUserDAO() *MockUserDAO {
	return &MockUserDAO{users: make(map[primitive.ObjectID]*entity.User)}
}

// AddUser seeds a user, assigning an ID when missing
func (m *MockUserDAO) AddUser(user *entity.User) *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = user
	return user
}

func (m *MockUserDAO) Create(ctx context.Context, user *entity.User) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	if m.FindByIDErr != nil {
		return nil, m.FindByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id], nil
}

func (m *MockUserDAO) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailErr != nil {
		return nil, m.FindByEmailErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserDAO) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailErr != nil {
		return false, m.ExistsByEmailErr
	}
	u, _ := m.FindByEmail(ctx, email)
	return u != nil, nil
}

func (m *MockUserDAO) Update(ctx context.Context, user *entity.User) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserDAO) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.UserStatus) error {
	if m.UpdateStatusErr != nil {
		return m.UpdateStatusErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.Status = status
	}
	return nil
}

func (m *MockUserDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *MockUserDAO) FindAll(ctx context.Context, filter dao.UserFilter, page, limit int) ([]*entity.User, int64, error) {
	if m.FindAllErr != nil {
		return nil, 0, m.FindAllErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*entity.User
	for _, u := range m.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(u.Name), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(u.Email), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, u)
	}
	return paginate(matched, page, limit), int64(len(matched)), nil
}

func (m *MockUserDAO) IncrementOrderStats(ctx context.Context, id primitive.ObjectID, amount float64) error {
	if m.IncrementOrderStatsErr != nil {
		return m.IncrementOrderStatsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.TotalOrders++
		u.TotalSpent += amount
	}
	return nil
}

// MockRefreshTokenDAO is an in-memory RefreshTokenDAO
type MockRefreshTokenDAO struct {
	mu     sync.RWMutex
	tokens map[string]*entity.RefreshToken

	CreateErr          error
	FindByTokenErr     error
	RevokeByTokenErr   error
	RevokeAllByUserErr error
	DeleteExpiredErr   error
}

var _ dao.RefreshTokenDAO = (*MockRefreshTokenDAO)(nil)

func NewMockRefreshTokenDAO() *MockRefreshTokenDAO {
	return &MockRefreshTokenDAO{tokens: make(map[string]*entity.RefreshToken)}
}

func (m *MockRefreshTokenDAO) Create(ctx context.Context, token *entity.RefreshToken) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if token.ID.IsZero() {
		token.ID = primitive.NewObjectID()
	}
	m.tokens[token.Token] = token
	return nil
}

func (m *MockRefreshTokenDAO) FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error) {
	if m.FindByTokenErr != nil {
		return nil, m.FindByTokenErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens[token], nil
}

func (m *MockRefreshTokenDAO) RevokeByToken(ctx context.Context, token string) error {
	if m.RevokeByTokenErr != nil {
		return m.RevokeByTokenErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tokens[token]; ok {
		t.Revoked = true
	}
	return nil
}

func (m *MockRefreshTokenDAO) RevokeAllByUser(ctx context.Context, userID primitive.ObjectID) error {
	if m.RevokeAllByUserErr != nil {
		return m.RevokeAllByUserErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (m *MockRefreshTokenDAO) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredErr != nil {
		return 0, m.DeleteExpiredErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	now := time.Now()
	for k, t := range m.tokens {
		if t.ExpiresAt.Before(now) {
			delete(m.tokens, k)
			deleted++
		}
	}
	return deleted, nil
}

// paginate slices a result set the way the DAO layer does
func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
