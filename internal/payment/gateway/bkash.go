package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/velora/velora-commerce-go/internal/config"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

const (
	bkashSandboxBase = "https://tokenized.sandbox.bka.sh/v1.2.0-beta/tokenized"
	bkashLiveBase    = "https://tokenized.pay.bka.sh/v1.2.0-beta/tokenized"
)

// Bkash opens tokenized-checkout sessions with the bKash gateway. A fresh
// grant token is obtained per session; bKash tokens are short lived and the
// initiate volume does not justify caching one.
type Bkash struct {
	cfg    *config.BkashConfig
	client *http.Client
}

// NewBkash creates a new bKash gateway client
func NewBkash(cfg *config.BkashConfig) *Bkash {
	return &Bkash{cfg: cfg, client: newHTTPClient()}
}

func (g *Bkash) Method() entity.PaymentMethod {
	return entity.MethodBkash
}

func (g *Bkash) base() string {
	if g.cfg.Sandbox {
		return bkashSandboxBase
	}
	return bkashLiveBase
}

type bkashTokenResponse struct {
	IDToken    string `json:"id_token"`
	StatusCode string `json:"statusCode"`
	StatusMsg  string `json:"statusMessage"`
}

type bkashCreateResponse struct {
	PaymentID  string `json:"paymentID"`
	BkashURL   string `json:"bkashURL"`
	StatusCode string `json:"statusCode"`
	StatusMsg  string `json:"statusMessage"`
}

func (g *Bkash) Initiate(ctx context.Context, payment *entity.Payment, order *entity.Order) (*InitResult, error) {
	token, err := g.grantToken(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"mode":                  "0011",
		"payerReference":        order.ShippingAddress.Phone,
		"callbackURL":           g.cfg.CallbackURL,
		"amount":                fmt.Sprintf("%.2f", payment.Amount),
		"currency":              payment.Currency,
		"intent":                "sale",
		"merchantInvoiceNumber": payment.TransactionID,
	}
	var created bkashCreateResponse
	if err := g.post(ctx, g.base()+"/checkout/create", token, body, &created); err != nil {
		return nil, fmt.Errorf("bkash create payment: %w", err)
	}
	if created.BkashURL == "" {
		return nil, fmt.Errorf("%w: %s %s", ErrGatewayRejected, created.StatusCode, created.StatusMsg)
	}

	return &InitResult{
		RedirectURL: created.BkashURL,
		GatewayRef:  created.PaymentID,
	}, nil
}

func (g *Bkash) grantToken(ctx context.Context) (string, error) {
	payload, _ := json.Marshal(map[string]string{
		"app_key":    g.cfg.AppKey,
		"app_secret": g.cfg.AppSecret,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.base()+"/checkout/token/grant", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("username", g.cfg.Username)
	req.Header.Set("password", g.cfg.Password)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("bkash token grant: %w", err)
	}
	defer resp.Body.Close()

	var token bkashTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("bkash token response: %w", err)
	}
	if token.IDToken == "" {
		return "", fmt.Errorf("%w: %s %s", ErrGatewayRejected, token.StatusCode, token.StatusMsg)
	}
	return token.IDToken, nil
}

func (g *Bkash) post(ctx context.Context, endpoint, token string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)
	req.Header.Set("X-APP-Key", g.cfg.AppKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}
