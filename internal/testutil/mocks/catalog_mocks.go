package mocks

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// MockCategoryDAO is an in-memory CategoryDAO
type MockCategoryDAO struct {
	mu         sync.RWMutex
	categories map[primitive.ObjectID]*entity.Category

	CreateErr        error
	FindByIDErr      error
	FindBySlugErr    error
	ExistsBySlugErr  error
	UpdateErr        error
	DeleteErr        error
	FindAllErr       error
	FindActiveErr    error
	FindMenuErr      error
	CountChildrenErr error
}

var _ dao.CategoryDAO = (*MockCategoryDAO)(nil)

func NewMockCategoryDAO() *MockCategoryDAO {
	return &MockCategoryDAO{categories: make(map[primitive.ObjectID]*entity.Category)}
}

// AddCategory seeds a category, assigning an ID when missing
func (m *MockCategoryDAO) AddCategory(category *entity.Category) *entity.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	m.categories[category.ID] = category
	return category
}

func (m *MockCategoryDAO) Create(ctx context.Context, category *entity.Category) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.AddCategory(category)
	return nil
}

func (m *MockCategoryDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	if m.FindByIDErr != nil {
		return nil, m.FindByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.categories[id], nil
}

func (m *MockCategoryDAO) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	if m.FindBySlugErr != nil {
		return nil, m.FindBySlugErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockCategoryDAO) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if m.ExistsBySlugErr != nil {
		return false, m.ExistsBySlugErr
	}
	c, _ := m.FindBySlug(ctx, slug)
	return c != nil, nil
}

func (m *MockCategoryDAO) Update(ctx context.Context, category *entity.Category) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = category
	return nil
}

func (m *MockCategoryDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.categories, id)
	return nil
}

func (m *MockCategoryDAO) FindAll(ctx context.Context, page, limit int) ([]*entity.Category, int64, error) {
	if m.FindAllErr != nil {
		return nil, 0, m.FindAllErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*entity.Category, 0, len(m.categories))
	for _, c := range m.categories {
		all = append(all, c)
	}
	return paginate(all, page, limit), int64(len(all)), nil
}

func (m *MockCategoryDAO) FindActive(ctx context.Context) ([]*entity.Category, error) {
	if m.FindActiveErr != nil {
		return nil, m.FindActiveErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var active []*entity.Category
	for _, c := range m.categories {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active, nil
}

func (m *MockCategoryDAO) FindMenu(ctx context.Context) ([]*entity.Category, error) {
	if m.FindMenuErr != nil {
		return nil, m.FindMenuErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var menu []*entity.Category
	for _, c := range m.categories {
		if c.IsActive && c.ShowInMenu {
			menu = append(menu, c)
		}
	}
	return menu, nil
}

func (m *MockCategoryDAO) CountChildren(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if m.CountChildrenErr != nil {
		return 0, m.CountChildrenErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, c := range m.categories {
		if c.ParentCategory != nil && *c.ParentCategory == id {
			count++
		}
	}
	return count, nil
}

// MockProductDAO is an in-memory ProductDAO
type MockProductDAO struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]*entity.Product

	CreateErr             error
	FindByIDErr           error
	FindBySlugErr         error
	ExistsBySlugErr       error
	UpdateErr             error
	DeleteErr             error
	SearchErr             error
	FindByIDsErr          error
	FindFeaturedErr       error
	FindRelatedErr        error
	FindLowStockErr       error
	AdjustStockErr        error
	IncrementSalesErr     error
	SetRatingErr          error
	BulkUpdateStatusErr   error
	BulkDeleteErr         error
	ClearExpiredFlagsErr  error
}

var _ dao.ProductDAO = (*MockProductDAO)(nil)

func NewMockProductDAO() *MockProductDAO {
	return &MockProductDAO{products: make(map[primitive.ObjectID]*entity.Product)}
}

// AddProduct seeds a product, assigning an ID when missing
func (m *MockProductDAO) AddProduct(product *entity.Product) *entity.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	m.products[product.ID] = product
	return product
}

func (m *MockProductDAO) Create(ctx context.Context, product *entity.Product) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	product.CreatedAt = time.Now()
	m.AddProduct(product)
	return nil
}

func (m *MockProductDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	if m.FindByIDErr != nil {
		return nil, m.FindByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.products[id], nil
}

func (m *MockProductDAO) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	if m.FindBySlugErr != nil {
		return nil, m.FindBySlugErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (m *MockProductDAO) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if m.ExistsBySlugErr != nil {
		return false, m.ExistsBySlugErr
	}
	p, _ := m.FindBySlug(ctx, slug)
	return p != nil, nil
}

func (m *MockProductDAO) Update(ctx context.Context, product *entity.Product) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *MockProductDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func (m *MockProductDAO) Search(ctx context.Context, filter dao.ProductFilter, sort dao.ProductSort, page, limit int) ([]*entity.Product, int64, error) {
	if m.SearchErr != nil {
		return nil, 0, m.SearchErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	status := filter.Status
	if status == "" {
		status = entity.ProductStatusActive
	}
	var matched []*entity.Product
	for _, p := range m.products {
		if p.Status != status {
			continue
		}
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		if filter.MinPrice > 0 && p.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && p.Price > filter.MaxPrice {
			continue
		}
		if filter.Featured != nil && p.IsFeatured != *filter.Featured {
			continue
		}
		matched = append(matched, p)
	}
	return paginate(matched, page, limit), int64(len(matched)), nil
}

func (m *MockProductDAO) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entity.Product, error) {
	if m.FindByIDsErr != nil {
		return nil, m.FindByIDsErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var found []*entity.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			found = append(found, p)
		}
	}
	return found, nil
}

func (m *MockProductDAO) FindFeatured(ctx context.Context, limit int) ([]*entity.Product, error) {
	if m.FindFeaturedErr != nil {
		return nil, m.FindFeaturedErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var featured []*entity.Product
	for _, p := range m.products {
		if p.IsFeatured && p.Status == entity.ProductStatusActive {
			featured = append(featured, p)
		}
	}
	return paginate(featured, 1, limit), nil
}

func (m *MockProductDAO) FindRelated(ctx context.Context, categoryID, exclude primitive.ObjectID, limit int) ([]*entity.Product, error) {
	if m.FindRelatedErr != nil {
		return nil, m.FindRelatedErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var related []*entity.Product
	for _, p := range m.products {
		if p.Category == categoryID && p.ID != exclude && p.Status == entity.ProductStatusActive {
			related = append(related, p)
		}
	}
	return paginate(related, 1, limit), nil
}

func (m *MockProductDAO) FindLowStock(ctx context.Context, limit int) ([]*entity.Product, error) {
	if m.FindLowStockErr != nil {
		return nil, m.FindLowStockErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var low []*entity.Product
	for _, p := range m.products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return paginate(low, 1, limit), nil
}

func (m *MockProductDAO) AdjustStock(ctx context.Context, adj dao.StockAdjustment, allowNegative bool) error {
	if m.AdjustStockErr != nil {
		return m.AdjustStockErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[adj.ProductID]
	if !ok {
		return dao.ErrInsufficientStock
	}
	if adj.VariantSKU != "" {
		v := p.FindVariant(adj.VariantSKU)
		if v == nil {
			return dao.ErrInsufficientStock
		}
		if !allowNegative && adj.Delta < 0 && v.Quantity+adj.Delta < 0 {
			return dao.ErrInsufficientStock
		}
		v.Quantity += adj.Delta
		return nil
	}
	if !allowNegative && adj.Delta < 0 && p.Quantity+adj.Delta < 0 {
		return dao.ErrInsufficientStock
	}
	p.Quantity += adj.Delta
	return nil
}

func (m *MockProductDAO) IncrementSalesCount(ctx context.Context, id primitive.ObjectID, qty int64) error {
	if m.IncrementSalesErr != nil {
		return m.IncrementSalesErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		p.SalesCount += qty
	}
	return nil
}

func (m *MockProductDAO) SetRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int64) error {
	if m.SetRatingErr != nil {
		return m.SetRatingErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		p.Rating = rating
		p.ReviewCount = reviewCount
	}
	return nil
}

func (m *MockProductDAO) BulkUpdateStatus(ctx context.Context, ids []primitive.ObjectID, status entity.ProductStatus) (int64, error) {
	if m.BulkUpdateStatusErr != nil {
		return 0, m.BulkUpdateStatusErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var updated int64
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			p.Status = status
			updated++
		}
	}
	return updated, nil
}

func (m *MockProductDAO) BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if m.BulkDeleteErr != nil {
		return 0, m.BulkDeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for _, id := range ids {
		if _, ok := m.products[id]; ok {
			delete(m.products, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *MockProductDAO) ClearExpiredNewFlags(ctx context.Context) (int64, error) {
	if m.ClearExpiredFlagsErr != nil {
		return 0, m.ClearExpiredFlagsErr
	}
	return 0, nil
}
