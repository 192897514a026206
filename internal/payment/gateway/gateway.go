// Package gateway contains thin clients for the external payment providers.
// Each client only knows how to open a payment session; callbacks come back
// through the HTTP layer and are handled by the payment service.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// ErrGatewayRejected is returned when the provider refused to open a session.
var ErrGatewayRejected = errors.New("payment gateway rejected the session")

// InitResult is the outcome of opening a payment session with a provider.
type InitResult struct {
	// RedirectURL is where the customer completes the payment. Empty for
	// methods that settle out of band (cod, bank transfer).
	RedirectURL string

	// GatewayRef is the provider-side identifier for the session.
	GatewayRef string
}

// Gateway opens payment sessions with one external provider.
type Gateway interface {
	Method() entity.PaymentMethod
	Initiate(ctx context.Context, payment *entity.Payment, order *entity.Order) (*InitResult, error)
}

const requestTimeout = 15 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
