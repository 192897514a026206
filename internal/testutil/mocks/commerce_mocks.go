package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	apperrors "github.com/velora/velora-commerce-go/pkg/errors"
)

// MockCartDAO is an in-memory CartDAO
type MockCartDAO struct {
	mu    sync.RWMutex
	carts map[primitive.ObjectID]*entity.Cart

	FindByUserErr   error
	SaveErr         error
	DeleteByUserErr error
}

var _ dao.CartDAO = (*MockCartDAO)(nil)

func NewMockCartDAO() *MockCartDAO {
	return &MockCartDAO{carts: make(map[primitive.ObjectID]*entity.Cart)}
}

func (m *MockCartDAO) FindByUser(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error) {
	if m.FindByUserErr != nil {
		return nil, m.FindByUserErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.carts[userID], nil
}

func (m *MockCartDAO) Save(ctx context.Context, cart *entity.Cart) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	m.carts[cart.User] = cart
	return nil
}

func (m *MockCartDAO) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	if m.DeleteByUserErr != nil {
		return m.DeleteByUserErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, userID)
	return nil
}

// MockWishlistDAO is an in-memory WishlistDAO
type MockWishlistDAO struct {
	mu        sync.RWMutex
	wishlists map[primitive.ObjectID]*entity.Wishlist

	FindByUserErr error
	SaveErr       error
}

var _ dao.WishlistDAO = (*MockWishlistDAO)(nil)

func NewMockWishlistDAO() *MockWishlistDAO {
	return &MockWishlistDAO{wishlists: make(map[primitive.ObjectID]*entity.Wishlist)}
}

func (m *MockWishlistDAO) FindByUser(ctx context.Context, userID primitive.ObjectID) (*entity.Wishlist, error) {
	if m.FindByUserErr != nil {
		return nil, m.FindByUserErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.wishlists[userID], nil
}

func (m *MockWishlistDAO) Save(ctx context.Context, wishlist *entity.Wishlist) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if wishlist.ID.IsZero() {
		wishlist.ID = primitive.NewObjectID()
	}
	m.wishlists[wishlist.User] = wishlist
	return nil
}

// MockOrderDAO is an in-memory OrderDAO
type MockOrderDAO struct {
	mu     sync.RWMutex
	orders map[primitive.ObjectID]*entity.Order

	CreateErr              error
	FindByIDErr            error
	FindByOrderNumberErr   error
	UpdateErr              error
	FindAllErr             error
	HasDeliveredProductErr error

	// DeliveredProducts overrides HasDeliveredProduct lookups
	DeliveredProducts map[primitive.ObjectID]bool
}

var _ dao.OrderDAO = (*MockOrderDAO)(nil)

func NewMockOrderDAO() *MockOrderDAO {
	return &MockOrderDAO{
		orders:            make(map[primitive.ObjectID]*entity.Order),
		DeliveredProducts: make(map[primitive.ObjectID]bool),
	}
}

// AddOrder seeds an order, assigning an ID when missing
func (m *MockOrderDAO) AddOrder(order *entity.Order) *entity.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	m.orders[order.ID] = order
	return order
}

func (m *MockOrderDAO) Create(ctx context.Context, order *entity.Order) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	order.CreatedAt = time.Now()
	m.AddOrder(order)
	return nil
}

func (m *MockOrderDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	if m.FindByIDErr != nil {
		return nil, m.FindByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orders[id], nil
}

func (m *MockOrderDAO) FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	if m.FindByOrderNumberErr != nil {
		return nil, m.FindByOrderNumberErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return nil, nil
}

func (m *MockOrderDAO) Update(ctx context.Context, order *entity.Order) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderDAO) FindAll(ctx context.Context, filter dao.OrderFilter, page, limit int) ([]*entity.Order, int64, error) {
	if m.FindAllErr != nil {
		return nil, 0, m.FindAllErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*entity.Order
	for _, o := range m.orders {
		if filter.User != nil && o.User != *filter.User {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.PaymentStatus != "" && o.PaymentStatus != filter.PaymentStatus {
			continue
		}
		if filter.OrderNumber != "" && o.OrderNumber != filter.OrderNumber {
			continue
		}
		if filter.From != nil && o.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && o.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, o)
	}
	return paginate(matched, page, limit), int64(len(matched)), nil
}

func (m *MockOrderDAO) HasDeliveredProduct(ctx context.Context, userID, productID primitive.ObjectID) (bool, error) {
	if m.HasDeliveredProductErr != nil {
		return false, m.HasDeliveredProductErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.DeliveredProducts[productID], nil
}

// MockPaymentDAO is an in-memory PaymentDAO
type MockPaymentDAO struct {
	mu       sync.RWMutex
	payments map[primitive.ObjectID]*entity.Payment

	CreateErr              error
	FindByIDErr            error
	FindByTransactionIDErr error
	FindByOrderErr         error
	UpdateErr              error
	FindAllErr             error
	ExpireStalePendingErr  error
}

var _ dao.PaymentDAO = (*MockPaymentDAO)(nil)

func NewMockPaymentDAO() *MockPaymentDAO {
	return &MockPaymentDAO{payments: make(map[primitive.ObjectID]*entity.Payment)}
}

// AddPayment seeds a payment, assigning an ID when missing
func (m *MockPaymentDAO) AddPayment(payment *entity.Payment) *entity.Payment {
	m.mu.Lock()
	defer m.mu.Unlock()
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	m.payments[payment.ID] = payment
	return payment
}

func (m *MockPaymentDAO) Create(ctx context.Context, payment *entity.Payment) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	payment.CreatedAt = time.Now()
	m.payments[payment.ID] = payment
	return nil
}

func (m *MockPaymentDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Payment, error) {
	if m.FindByIDErr != nil {
		return nil, m.FindByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.payments[id], nil
}

func (m *MockPaymentDAO) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	if m.FindByTransactionIDErr != nil {
		return nil, m.FindByTransactionIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.TransactionID == transactionID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *MockPaymentDAO) FindByOrder(ctx context.Context, orderID primitive.ObjectID) ([]*entity.Payment, error) {
	if m.FindByOrderErr != nil {
		return nil, m.FindByOrderErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var found []*entity.Payment
	for _, p := range m.payments {
		if p.Order == orderID {
			found = append(found, p)
		}
	}
	return found, nil
}

func (m *MockPaymentDAO) Update(ctx context.Context, payment *entity.Payment) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = payment
	return nil
}

func (m *MockPaymentDAO) FindAll(ctx context.Context, status entity.PaymentStatus, page, limit int) ([]*entity.Payment, int64, error) {
	if m.FindAllErr != nil {
		return nil, 0, m.FindAllErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*entity.Payment
	for _, p := range m.payments {
		if status != "" && p.Status != status {
			continue
		}
		matched = append(matched, p)
	}
	return paginate(matched, page, limit), int64(len(matched)), nil
}

func (m *MockPaymentDAO) ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.ExpireStalePendingErr != nil {
		return 0, m.ExpireStalePendingErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var expired int64
	for _, p := range m.payments {
		if p.Status == entity.PaymentPending && p.CreatedAt.Before(cutoff) {
			p.Status = entity.PaymentFailed
			expired++
		}
	}
	return expired, nil
}

// MockCouponDAO is an in-memory CouponDAO
type MockCouponDAO struct {
	mu      sync.RWMutex
	coupons map[primitive.ObjectID]*entity.Coupon

	CreateErr            error
	FindByIDErr          error
	FindByCodeErr        error
	ExistsByCodeErr      error
	UpdateErr            error
	DeleteErr            error
	FindAllErr           error
	RedeemErr            error
	DeactivateExpiredErr error
}

var _ dao.CouponDAO = (*MockCouponDAO)(nil)

func NewMockCouponDAO() *MockCouponDAO {
	return &MockCouponDAO{coupons: make(map[primitive.ObjectID]*entity.Coupon)}
}

// AddCoupon seeds a coupon, assigning an ID when missing
func (m *MockCouponDAO) AddCoupon(coupon *entity.Coupon) *entity.Coupon {
	m.mu.Lock()
	defer m.mu.Unlock()
	if coupon.ID.IsZero() {
		coupon.ID = primitive.NewObjectID()
	}
	m.coupons[coupon.ID] = coupon
	return coupon
}

func (m *MockCouponDAO) Create(ctx context.Context, coupon *entity.Coupon) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.AddCoupon(coupon)
	return nil
}

func (m *MockCouponDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Coupon, error) {
	if m.FindByIDErr != nil {
		return nil, m.FindByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.coupons[id], nil
}

func (m *MockCouponDAO) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	if m.FindByCodeErr != nil {
		return nil, m.FindByCodeErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.coupons {
		if strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockCouponDAO) ExistsByCode(ctx context.Context, code string) (bool, error) {
	if m.ExistsByCodeErr != nil {
		return false, m.ExistsByCodeErr
	}
	c, _ := m.FindByCode(ctx, code)
	return c != nil, nil
}

func (m *MockCouponDAO) Update(ctx context.Context, coupon *entity.Coupon) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coupons[coupon.ID] = coupon
	return nil
}

func (m *MockCouponDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.coupons, id)
	return nil
}

func (m *MockCouponDAO) FindAll(ctx context.Context, page, limit int) ([]*entity.Coupon, int64, error) {
	if m.FindAllErr != nil {
		return nil, 0, m.FindAllErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*entity.Coupon, 0, len(m.coupons))
	for _, c := range m.coupons {
		all = append(all, c)
	}
	return paginate(all, page, limit), int64(len(all)), nil
}

func (m *MockCouponDAO) Redeem(ctx context.Context, code string) error {
	if m.RedeemErr != nil {
		return m.RedeemErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for _, c := range m.coupons {
		if strings.EqualFold(c.Code, code) {
			if !c.IsActive || now.Before(c.StartDate) || now.After(c.EndDate) {
				return dao.ErrCouponInactive
			}
			if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
				return dao.ErrCouponExhausted
			}
			c.UsedCount++
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *MockCouponDAO) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.DeactivateExpiredErr != nil {
		return 0, m.DeactivateExpiredErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var deactivated int64
	for _, c := range m.coupons {
		if c.IsActive && c.EndDate.Before(now) {
			c.IsActive = false
			deactivated++
		}
	}
	return deactivated, nil
}
