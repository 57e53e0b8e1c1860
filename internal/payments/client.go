// Package payments talks to the external payment provider. The storefront
// only hands over a total and an order reference and gets a redirect URL
// back; protocol details live on the provider side. With no PAYMENT_URL
// configured the client runs in mock mode and sends the shopper straight to
// the success page, which is how local and staging environments operate.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	baseURL    string
	successURL string
	httpClient *http.Client
}

func NewClient(paymentURL, successURL string) *Client {
	return &Client{
		baseURL:    paymentURL,
		successURL: successURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type Session struct {
	URL        string `json:"url"`
	PaymentRef string `json:"payment_ref"`
}

type createSessionRequest struct {
	OrderID    string  `json:"order_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Email      string  `json:"email"`
	SuccessURL string  `json:"success_url"`
}

func (c *Client) CreateSession(ctx context.Context, orderID uuid.UUID, amount float64, email string) (*Session, error) {
	if c.baseURL == "" {
		return &Session{
			URL:        fmt.Sprintf("%s?orderId=%s", c.successURL, orderID),
			PaymentRef: "mock_" + orderID.String(),
		}, nil
	}

	body := createSessionRequest{
		OrderID:    orderID.String(),
		Amount:     amount,
		Currency:   "EUR",
		Email:      email,
		SuccessURL: c.successURL,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("payments: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/sessions", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("payments: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payments: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("payments: session failed with status %d", resp.StatusCode)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("payments: decode response: %w", err)
	}
	return &session, nil
}
