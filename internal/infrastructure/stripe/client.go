// Package stripe implementa el proveedor de pagos sobre la API REST de Stripe:
// creación de PaymentIntents y verificación de webhooks firmados.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/atelier-api/internal/application/billing"
	"github.com/jhoicas/atelier-api/internal/domain"
)

var _ billing.PaymentProvider = (*Client)(nil)

const (
	providerName   = "stripe"
	defaultBaseURL = "https://api.stripe.com"
)

// Client adaptador de billing.PaymentProvider. Usa net/http; el SDK oficial no es necesario para una sola llamada.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. Con secretKey vacío las llamadas devuelven ErrProviderUnavailable.
func NewClient(secretKey string) *Client {
	return &Client{
		secretKey:  secretKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// WithBaseURL apunta el cliente a otra URL (stripe-mock o servidor de pruebas).
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// Name identifica al proveedor en los PaymentRecord.
func (c *Client) Name() string { return providerName }

type paymentIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Error        *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreatePaymentIntent crea un PaymentIntent (POST /v1/payment_intents, form-encoded).
func (c *Client) CreatePaymentIntent(ctx context.Context, in billing.PaymentIntentInput) (*billing.PaymentIntent, error) {
	if c.secretKey == "" {
		return nil, fmt.Errorf("%w: STRIPE_SECRET_KEY no configurado", domain.ErrProviderUnavailable)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(in.AmountCents, 10))
	form.Set("currency", strings.ToLower(in.Currency))
	form.Set("automatic_payment_methods[enabled]", "true")
	if in.Description != "" {
		form.Set("description", in.Description)
	}
	keys := make([]string, 0, len(in.Metadata))
	for k := range in.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		form.Set("metadata["+k+"]", in.Metadata[k])
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("stripe: crear HTTP request: %w", err)
	}
	req.SetBasicAuth(c.secretKey, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if in.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", in.IdempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("stripe: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("stripe: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("stripe: leer respuesta: %w", err)
	}

	var pi paymentIntentResponse
	if err := json.Unmarshal(raw, &pi); err != nil {
		return nil, fmt.Errorf("stripe: HTTP %d: respuesta no JSON: %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if pi.Error != nil {
			return nil, fmt.Errorf("stripe: error (%s): %s", pi.Error.Type, pi.Error.Message)
		}
		return nil, fmt.Errorf("stripe: HTTP %d", resp.StatusCode)
	}
	if pi.ID == "" || pi.ClientSecret == "" {
		return nil, fmt.Errorf("stripe: respuesta sin id o client_secret")
	}
	return &billing.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: pi.Status}, nil
}
