package entity

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShippingZone groups delivery areas that share rates
type ShippingZone struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Areas     []string           `bson:"areas" json:"areas"`
	IsActive  bool               `bson:"is_active" json:"is_active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// MatchesArea reports whether the city/area belongs to the zone,
// case-insensitively and tolerating substring matches.
func (z *ShippingZone) MatchesArea(area string) bool {
	needle := strings.ToLower(strings.TrimSpace(area))
	if needle == "" {
		return false
	}
	for _, a := range z.Areas {
		hay := strings.ToLower(a)
		if hay == needle || strings.Contains(hay, needle) || strings.Contains(needle, hay) {
			return true
		}
	}
	return false
}

// ShippingRate prices deliveries for a zone
type ShippingRate struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Zone                primitive.ObjectID `bson:"zone" json:"zone"`
	Name                string             `bson:"name" json:"name"`
	Price               float64            `bson:"price" json:"price"`
	FreeShippingMinimum float64            `bson:"free_shipping_minimum,omitempty" json:"free_shipping_minimum,omitempty"`
	WeightLimit         float64            `bson:"weight_limit,omitempty" json:"weight_limit,omitempty"`
	PerKgOverage        float64            `bson:"per_kg_overage,omitempty" json:"per_kg_overage,omitempty"`
	EstimatedDays       int                `bson:"estimated_days,omitempty" json:"estimated_days,omitempty"`
	IsActive            bool               `bson:"is_active" json:"is_active"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
}

// CostFor computes the delivery cost for an order total and package weight.
// Orders at or above the free-shipping minimum ship free; weight beyond the
// limit adds the per-kg overage, rounded up per started kg.
func (r *ShippingRate) CostFor(orderTotal, weightKg float64) float64 {
	if r.FreeShippingMinimum > 0 && orderTotal >= r.FreeShippingMinimum {
		return 0
	}
	cost := r.Price
	if r.WeightLimit > 0 && weightKg > r.WeightLimit {
		over := weightKg - r.WeightLimit
		units := int(over)
		if over > float64(units) {
			units++
		}
		cost += float64(units) * r.PerKgOverage
	}
	return cost
}

// ShipmentStatus represents the delivery state of a shipment
type ShipmentStatus string

const (
	ShipmentPending        ShipmentStatus = "pending"
	ShipmentPickedUp       ShipmentStatus = "picked_up"
	ShipmentInTransit      ShipmentStatus = "in_transit"
	ShipmentOutForDelivery ShipmentStatus = "out_for_delivery"
	ShipmentDelivered      ShipmentStatus = "delivered"
	ShipmentReturned       ShipmentStatus = "returned"
	ShipmentCancelled      ShipmentStatus = "cancelled"
)

// shipmentTransitions mirrors the order state machine for shipments.
var shipmentTransitions = map[ShipmentStatus][]ShipmentStatus{
	ShipmentPending:        {ShipmentPickedUp, ShipmentCancelled},
	ShipmentPickedUp:       {ShipmentInTransit, ShipmentCancelled},
	ShipmentInTransit:      {ShipmentOutForDelivery, ShipmentReturned},
	ShipmentOutForDelivery: {ShipmentDelivered, ShipmentReturned},
	ShipmentDelivered:      {},
	ShipmentReturned:       {},
	ShipmentCancelled:      {},
}

// CanTransitionShipment reports whether from → to is a legal shipment change
func CanTransitionShipment(from, to ShipmentStatus) bool {
	for _, next := range shipmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TrackingEntry records one shipment status change
type TrackingEntry struct {
	Status    ShipmentStatus `bson:"status" json:"status"`
	Location  string         `bson:"location,omitempty" json:"location,omitempty"`
	Note      string         `bson:"note,omitempty" json:"note,omitempty"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
}

// Shipment tracks physical delivery of an order
type Shipment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Order           primitive.ObjectID `bson:"order" json:"order"`
	Zone            primitive.ObjectID `bson:"zone,omitempty" json:"zone,omitempty"`
	Courier         string             `bson:"courier,omitempty" json:"courier,omitempty"`
	TrackingNumber  string             `bson:"tracking_number,omitempty" json:"tracking_number,omitempty"`
	Status          ShipmentStatus     `bson:"status" json:"status"`
	Cost            float64            `bson:"cost" json:"cost"`
	WeightKg        float64            `bson:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	TrackingHistory []TrackingEntry    `bson:"tracking_history" json:"tracking_history"`
	DeliveredAt     *time.Time         `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// AppendTracking records a status change in the tracking history
func (s *Shipment) AppendTracking(status ShipmentStatus, location, note string) {
	s.TrackingHistory = append(s.TrackingHistory, TrackingEntry{
		Status:    status,
		Location:  location,
		Note:      note,
		Timestamp: time.Now(),
	})
}
