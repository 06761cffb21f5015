package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/dto"
)

// GatewayClient is the HTTP implementation of the order mutation gateway,
// used by checkout pages running apart from the API server.
type GatewayClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewGatewayClient(baseURL string) *GatewayClient {
	return &GatewayClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

func (c *GatewayClient) post(ctx context.Context, path string, payload interface{}) (*dto.OrderResponse, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(raw))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway error %d", resp.StatusCode)
	}

	var envelope dto.OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}

	return &envelope, nil
}

func (c *GatewayClient) FindOrder(ctx context.Context, input dto.FindOrderInput) (*dto.OrderResponse, error) {
	return c.post(ctx, "/api/orders/find", input)
}

func (c *GatewayClient) CreateOrder(ctx context.Context, input dto.CreateOrderInput) (*dto.OrderResponse, error) {
	return c.post(ctx, "/api/orders/create", input)
}

func (c *GatewayClient) UpdateOrder(ctx context.Context, input dto.UpdateOrderInput) (*dto.OrderResponse, error) {
	return c.post(ctx, "/api/orders/update", input)
}

func (c *GatewayClient) CloseOrder(ctx context.Context, input dto.CloseOrderInput) (*dto.OrderResponse, error) {
	return c.post(ctx, "/api/orders/close", input)
}
