package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/velora/velora-commerce-go/internal/config"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

const (
	sslcommerzSandboxURL = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	sslcommerzLiveURL    = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"
)

// SSLCommerz opens hosted-checkout sessions with the SSLCommerz gateway.
type SSLCommerz struct {
	cfg    *config.SSLCommerzConfig
	client *http.Client
}

// NewSSLCommerz creates a new SSLCommerz gateway client
func NewSSLCommerz(cfg *config.SSLCommerzConfig) *SSLCommerz {
	return &SSLCommerz{cfg: cfg, client: newHTTPClient()}
}

func (g *SSLCommerz) Method() entity.PaymentMethod {
	return entity.MethodSSLCommerz
}

type sslcommerzSession struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

func (g *SSLCommerz) Initiate(ctx context.Context, payment *entity.Payment, order *entity.Order) (*InitResult, error) {
	form := url.Values{}
	form.Set("store_id", g.cfg.StoreID)
	form.Set("store_passwd", g.cfg.StorePassword)
	form.Set("total_amount", fmt.Sprintf("%.2f", payment.Amount))
	form.Set("currency", payment.Currency)
	form.Set("tran_id", payment.TransactionID)
	form.Set("success_url", g.cfg.SuccessURL)
	form.Set("fail_url", g.cfg.FailURL)
	form.Set("cancel_url", g.cfg.CancelURL)
	form.Set("cus_name", order.ShippingAddress.FullName)
	form.Set("cus_add1", order.ShippingAddress.Street)
	form.Set("cus_city", order.ShippingAddress.City)
	form.Set("cus_postcode", order.ShippingAddress.PostalCode)
	form.Set("cus_country", order.ShippingAddress.Country)
	form.Set("cus_phone", order.ShippingAddress.Phone)
	form.Set("shipping_method", "Courier")
	form.Set("product_name", fmt.Sprintf("Order %s", order.OrderNumber))
	form.Set("product_category", "general")
	form.Set("product_profile", "physical-goods")

	endpoint := sslcommerzLiveURL
	if g.cfg.Sandbox {
		endpoint = sslcommerzSandboxURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sslcommerz session request: %w", err)
	}
	defer resp.Body.Close()

	var session sslcommerzSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("sslcommerz session response: %w", err)
	}
	if !strings.EqualFold(session.Status, "SUCCESS") || session.GatewayPageURL == "" {
		return nil, fmt.Errorf("%w: %s", ErrGatewayRejected, session.FailedReason)
	}

	return &InitResult{
		RedirectURL: session.GatewayPageURL,
		GatewayRef:  session.SessionKey,
	}, nil
}
