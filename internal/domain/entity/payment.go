package entity

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentMethod identifies the payment channel
type PaymentMethod string

const (
	MethodSSLCommerz   PaymentMethod = "sslcommerz"
	MethodBkash        PaymentMethod = "bkash"
	MethodNagad        PaymentMethod = "nagad"
	MethodCOD          PaymentMethod = "cod"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// PaymentStatus represents the lifecycle of a payment attempt
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
	PaymentCancelled  PaymentStatus = "cancelled"
)

// Payment records one payment attempt against an order
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Order         primitive.ObjectID `bson:"order" json:"order"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	Method        PaymentMethod      `bson:"method" json:"method"`
	Status        PaymentStatus      `bson:"status" json:"status"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	TransactionID string             `bson:"transaction_id" json:"transaction_id"`
	GatewayRef    string             `bson:"gateway_ref,omitempty" json:"gateway_ref,omitempty"`
	GatewayURL    string             `bson:"gateway_url,omitempty" json:"gateway_url,omitempty"`
	FailureReason string             `bson:"failure_reason,omitempty" json:"failure_reason,omitempty"`
	RefundedAt    *time.Time         `bson:"refunded_at,omitempty" json:"refunded_at,omitempty"`
	CompletedAt   *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// CanRefund reports whether the payment is in a refundable state
func (p *Payment) CanRefund() bool {
	return p.Status == PaymentCompleted
}

// NewTransactionID generates a locally unique transaction id:
// timestamp in base36 plus random hex, uppercased.
func NewTransactionID(now time.Time) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36) + hex.EncodeToString(buf))
}
