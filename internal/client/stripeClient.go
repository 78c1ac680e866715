package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"parcel-delivery-api/internal/config"
	"parcel-delivery-api/internal/model"
)

type CreateSessionParams struct {
	ProductName   string
	AmountCents   int64
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, params *CreateSessionParams) (*model.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error)
	// GetPaymentIntent retrieves an intent with its charge list expanded.
	GetPaymentIntent(ctx context.Context, intentID string) (*model.PaymentIntent, error)
	GetPaymentMethod(ctx context.Context, paymentMethodID string) (*model.PaymentMethod, error)
}

type stripeClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	secretKey  string
}

func NewStripeClient(cfg *config.Stripe) StripeClient {
	return &stripeClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: cfg.BaseApiURL,
		secretKey:  cfg.SecretKey,
	}
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, params *CreateSessionParams) (*model.CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("customer_email", params.CustomerEmail)
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][quantity]", "1")
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var session model.CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (c *stripeClientImpl) GetCheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	var session model.CheckoutSession
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (c *stripeClientImpl) GetPaymentIntent(ctx context.Context, intentID string) (*model.PaymentIntent, error) {
	var intent model.PaymentIntent
	path := "/v1/payment_intents/" + url.PathEscape(intentID) + "?expand[]=charges"
	if err := c.do(ctx, http.MethodGet, path, nil, &intent); err != nil {
		return nil, err
	}

	return &intent, nil
}

func (c *stripeClientImpl) GetPaymentMethod(ctx context.Context, paymentMethodID string) (*model.PaymentMethod, error) {
	var pm model.PaymentMethod
	path := "/v1/payment_methods/" + url.PathEscape(paymentMethodID)
	if err := c.do(ctx, http.MethodGet, path, nil, &pm); err != nil {
		return nil, err
	}

	return &pm, nil
}

// do sends one form-encoded request and decodes the JSON response into out.
// Stripe reports failures with a non-2xx status and a JSON error body, which
// is passed through verbatim.
func (c *stripeClientImpl) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseApiURL+path, body)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("stripe error %d: %s", resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode stripe response: %w", err)
	}

	return nil
}
