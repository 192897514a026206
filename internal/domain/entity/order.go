package entity

import (
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus represents the fulfilment state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

// PaymentState represents the payment state recorded on the order
type PaymentState string

const (
	PaymentStateUnpaid            PaymentState = "unpaid"
	PaymentStatePaid              PaymentState = "paid"
	PaymentStateFailed            PaymentState = "failed"
	PaymentStateRefunded          PaymentState = "refunded"
	PaymentStatePartiallyRefunded PaymentState = "partially_refunded"
)

// ShippingMethod selects the flat-rate tier used when no zone rate applies
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// orderTransitions is the authoritative status adjacency map. Any transition
// absent from this table is rejected; cancelled and returned are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusReturned},
	OrderStatusDelivered:  {OrderStatusReturned},
	OrderStatusCancelled:  {},
	OrderStatusReturned:   {},
}

// CanTransition reports whether from → to is a legal order status change
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderItem is an immutable snapshot of a product line at purchase time, so
// historical orders survive future catalog edits.
type OrderItem struct {
	Product    primitive.ObjectID `bson:"product" json:"product"`
	VariantSKU string             `bson:"variant_sku,omitempty" json:"variant_sku,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Price      float64            `bson:"price" json:"price"`
}

// TimelineEntry records one status change on the order
type TimelineEntry struct {
	Status    OrderStatus         `bson:"status" json:"status"`
	Note      string              `bson:"note,omitempty" json:"note,omitempty"`
	ChangedBy *primitive.ObjectID `bson:"changed_by,omitempty" json:"changed_by,omitempty"`
	Timestamp time.Time           `bson:"timestamp" json:"timestamp"`
}

// Order is a placed order with snapshotted items and an append-only timeline.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber     string             `bson:"order_number" json:"order_number"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Status          OrderStatus        `bson:"status" json:"status"`
	PaymentStatus   PaymentState       `bson:"payment_status" json:"payment_status"`
	PaymentMethod   string             `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	ShippingMethod  ShippingMethod     `bson:"shipping_method" json:"shipping_method"`
	ShippingAddress Address            `bson:"shipping_address" json:"shipping_address"`
	CouponCode      string             `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Discount        float64            `bson:"discount" json:"discount"`
	ShippingCost    float64            `bson:"shipping_cost" json:"shipping_cost"`
	Total           float64            `bson:"total" json:"total"`
	Timeline        []TimelineEntry    `bson:"timeline" json:"timeline"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	PaidAt          *time.Time         `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	DeliveredAt     *time.Time         `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// AppendTimeline records a status change with an optional actor and note
func (o *Order) AppendTimeline(status OrderStatus, note string, changedBy *primitive.ObjectID) {
	o.Timeline = append(o.Timeline, TimelineEntry{
		Status:    status,
		Note:      note,
		ChangedBy: changedBy,
		Timestamp: time.Now(),
	})
}

// IsCancellableByCustomer reports whether a customer may still cancel
func (o *Order) IsCancellableByCustomer() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// NewOrderNumber generates a human-readable unique order number of the form
// ORD-YYYYMMDD-XXXXX.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%05d", now.Format("20060102"), rand.Intn(100000))
}
