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

// MockShippingZoneDAO is an in-memory ShippingZoneDAO
type MockShippingZoneDAO struct {
	mu    sync.RWMutex
	zones map[primitive.ObjectID]*entity.ShippingZone

	CreateErr     error
	FindByIDErr   error
	FindByNameErr error
	UpdateErr     error
	DeleteErr     error
	FindActiveErr error
}

var _ dao.ShippingZoneDAO = (*MockShippingZoneDAO)(nil)

func NewMockShippingZoneDAO() *MockShippingZoneDAO {
	return &MockShippingZoneDAO{zones: make(map[primitive.ObjectID]*entity.ShippingZone)}
}

// AddZone seeds a zone, assigning an ID when missing
func (m *MockShippingZoneDAO) AddZone(zone *entity.ShippingZone) *entity.ShippingZone {
	m.mu.Lock()
	defer m.mu.Unlock()
	if zone.ID.IsZero() {
		zone.ID = primitive.NewObjectID()
	}
	m.zones[zone.ID] = zone
	return zone
}

func (m *MockShippingZoneDAO) Create(ctx context.Context, zone *entity.ShippingZone) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	zone.CreatedAt = time.Now()
	m.AddZone(zone)
	return nil
}

func (m *MockShippingZoneDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.ShippingZone, error) {
	if m.FindByIDErr != nil {
		return nil, m.FindByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.zones[id], nil
}

func (m *MockShippingZoneDAO) FindByName(ctx context.Context, name string) (*entity.ShippingZone, error) {
	if m.FindByNameErr != nil {
		return nil, m.FindByNameErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, z := range m.zones {
		if strings.EqualFold(z.Name, name) {
			return z, nil
		}
	}
	return nil, nil
}

func (m *MockShippingZoneDAO) Update(ctx context.Context, zone *entity.ShippingZone) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zones[zone.ID] = zone
	return nil
}

func (m *MockShippingZoneDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.zones, id)
	return nil
}

func (m *MockShippingZoneDAO) FindActive(ctx context.Context) ([]*entity.ShippingZone, error) {
	if m.FindActiveErr != nil {
		return nil, m.FindActiveErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var active []*entity.ShippingZone
	for _, z := range m.zones {
		if z.IsActive {
			active = append(active, z)
		}
	}
	return active, nil
}

// MockShippingRateDAO is an in-memory ShippingRateDAO
type MockShippingRateDAO struct {
	mu    sync.RWMutex
	rates map[primitive.ObjectID]*entity.ShippingRate

	CreateErr     error
	FindByIDErr   error
	FindByZoneErr error
	UpdateErr     error
	DeleteErr     error
}

var _ dao.ShippingRateDAO = (*MockShippingRateDAO)(nil)

func NewMockShippingRateDAO() *MockShippingRateDAO {
	return &MockShippingRateDAO{rates: make(map[primitive.ObjectID]*entity.ShippingRate)}
}

// AddRate seeds a rate, assigning an ID when missing
func (m *MockShippingRateDAO) AddRate(rate *entity.ShippingRate) *entity.ShippingRate {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rate.ID.IsZero() {
		rate.ID = primitive.NewObjectID()
	}
	m.rates[rate.ID] = rate
	return rate
}

func (m *MockShippingRateDAO) Create(ctx context.Context, rate *entity.ShippingRate) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	rate.CreatedAt = time.Now()
	m.AddRate(rate)
	return nil
}

func (m *MockShippingRateDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.ShippingRate, error) {
	if m.FindByIDErr != nil {
		return nil, m.FindByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rates[id], nil
}

func (m *MockShippingRateDAO) FindByZone(ctx context.Context, zoneID primitive.ObjectID) ([]*entity.ShippingRate, error) {
	if m.FindByZoneErr != nil {
		return nil, m.FindByZoneErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*entity.ShippingRate
	for _, r := range m.rates {
		if r.Zone == zoneID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (m *MockShippingRateDAO) Update(ctx context.Context, rate *entity.ShippingRate) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates[rate.ID] = rate
	return nil
}

func (m *MockShippingRateDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rates, id)
	return nil
}

// MockShipmentDAO is an in-memory ShipmentDAO
type MockShipmentDAO struct {
	mu        sync.RWMutex
	shipments map[primitive.ObjectID]*entity.Shipment

	CreateErr      error
	FindByIDErr    error
	FindByOrderErr error
	UpdateErr      error
	FindAllErr     error
}

var _ dao.ShipmentDAO = (*MockShipmentDAO)(nil)

func NewMockShipmentDAO() *MockShipmentDAO {
	return &MockShipmentDAO{shipments: make(map[primitive.ObjectID]*entity.Shipment)}
}

// AddShipment seeds a shipment, assigning an ID when missing
func (m *MockShipmentDAO) AddShipment(shipment *entity.Shipment) *entity.Shipment {
	m.mu.Lock()
	defer m.mu.Unlock()
	if shipment.ID.IsZero() {
		shipment.ID = primitive.NewObjectID()
	}
	m.shipments[shipment.ID] = shipment
	return shipment
}

func (m *MockShipmentDAO) Create(ctx context.Context, shipment *entity.Shipment) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	shipment.CreatedAt = time.Now()
	m.AddShipment(shipment)
	return nil
}

func (m *MockShipmentDAO) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Shipment, error) {
	if m.FindByIDErr != nil {
		return nil, m.FindByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.shipments[id], nil
}

func (m *MockShipmentDAO) FindByOrder(ctx context.Context, orderID primitive.ObjectID) (*entity.Shipment, error) {
	if m.FindByOrderErr != nil {
		return nil, m.FindByOrderErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.shipments {
		if s.Order == orderID {
			return s, nil
		}
	}
	return nil, nil
}

func (m *MockShipmentDAO) Update(ctx context.Context, shipment *entity.Shipment) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shipments[shipment.ID] = shipment
	return nil
}

func (m *MockShipmentDAO) FindAll(ctx context.Context, status entity.ShipmentStatus, page, limit int) ([]*entity.Shipment, int64, error) {
	if m.FindAllErr != nil {
		return nil, 0, m.FindAllErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*entity.Shipment
	for _, s := range m.shipments {
		if status != "" && s.Status != status {
			continue
		}
		matched = append(matched, s)
	}
	return paginate(matched, page, limit), int64(len(matched)), nil
}
