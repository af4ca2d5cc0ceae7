// Package shopapi is the HTTP client for the upstream shop service that
// owns the product catalog and accepts orders.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

const requestTimeout = 10 * time.Second

// Client encapsulates the HTTP interaction with the shop service.
type Client struct {
	baseURL    string
	cdnURL     string
	httpClient *http.Client
}

// ProductList is the catalog payload: GET {base}/product/.
type ProductList struct {
	Total int               `json:"total"`
	Items []*domain.Product `json:"items"`
}

// orderRequest is the wire form of a finalized draft: POST {base}/order.
type orderRequest struct {
	Payment domain.PaymentMethod `json:"payment"`
	Address string               `json:"address"`
	Email   string               `json:"email"`
	Phone   string               `json:"phone"`
	Total   float64              `json:"total"`
	Items   []string             `json:"items"`
}

// OrderConfirmation is the shop's acceptance response. Only Total is
// guaranteed; it feeds the success panel.
type OrderConfirmation struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// NewClient creates a shop client for the given API and CDN base URLs.
func NewClient(baseURL, cdnURL string) *Client {
	return &Client{
		baseURL: normalize(baseURL),
		cdnURL:  normalize(cdnURL),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Products fetches the catalog. Non-2xx responses and malformed payloads
// are returned as errors; there are no retries.
func (c *Client) Products(ctx context.Context) ([]*domain.Product, error) {
	if c == nil || c.baseURL == "" {
		return nil, fmt.Errorf("shop client not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/product/", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	var list ProductList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	return list.Items, nil
}

// CreateOrder submits a finalized draft and returns the shop's confirmation.
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (*OrderConfirmation, error) {
	if c == nil || c.baseURL == "" {
		return nil, fmt.Errorf("shop client not configured")
	}

	payload := orderRequest{
		Payment: draft.Payment,
		Address: draft.Address,
		Email:   draft.Email,
		Phone:   draft.Phone,
		Total:   draft.Total.InexactFloat64(),
		Items:   draft.Items,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("submit order: unexpected status %d", resp.StatusCode)
	}

	var conf OrderConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&conf); err != nil {
		return nil, fmt.Errorf("decode confirmation: %w", err)
	}

	return &conf, nil
}

// ImageURL resolves a catalog image reference against the CDN base.
func (c *Client) ImageURL(ref string) string {
	if c.cdnURL == "" {
		return ref
	}
	return c.cdnURL + "/" + strings.TrimLeft(ref, "/")
}

func normalize(u string) string {
	u = strings.TrimRight(u, "/")
	if u == "" {
		return u
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u
}
