package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Pranitha-Thoutam/Event-Ease/internal/config"
)

// Processor reverses a charge with the external payment gateway. The
// gateway owns all payment state; this API only records the outcome.
type Processor interface {
	Refund(ctx context.Context, bookingID uint, amount float64) error
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.PaymentAPIURL,
		apiKey:  cfg.PaymentAPIKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type refundRequest struct {
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
}

func (c *Client) Refund(ctx context.Context, bookingID uint, amount float64) error {
	if c.baseURL == "" {
		return fmt.Errorf("payment processor not configured")
	}

	body, err := json.Marshal(refundRequest{
		Reference: fmt.Sprintf("booking-%d", bookingID),
		Amount:    amount,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/refunds", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("refund request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("refund rejected: %s", resp.Status)
	}
	return nil
}
