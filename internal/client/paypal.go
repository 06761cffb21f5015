package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/config"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/model"
)

// PaypalError is a provider-level failure with the raw response attached.
type PaypalError struct {
	StatusCode int
	Body       string
}

func (e *PaypalError) Error() string {
	return fmt.Sprintf("paypal error %d: %s", e.StatusCode, e.Body)
}

type PaypalClient interface {
	CreateOrder(ctx context.Context, units []model.PaypalPurchaseUnit) (string, error)
	CaptureOrder(ctx context.Context, orderID string) (*model.PaypalCapture, error)
	CreateSubscription(ctx context.Context, planID string) (string, error)
}

type paypalClientImpl struct {
	httpClient         *http.Client
	baseApiURL         string
	paypalClientID     string
	paypalClientSecret string
}

func NewPaypalClient(paypalCfg *config.Paypal) PaypalClient {
	return &paypalClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:         paypalCfg.BaseApiURL,
		paypalClientID:     paypalCfg.ClientID,
		paypalClientSecret: paypalCfg.ClientSecret,
	}
}

func (c *paypalClientImpl) getAccessToken(ctx context.Context) (string, error) {
	auth := base64.StdEncoding.EncodeToString(
		[]byte(c.paypalClientID + ":" + c.paypalClientSecret),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseApiURL+"/v1/oauth2/token",
		bytes.NewBufferString("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	var res struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	return res.AccessToken, nil
}

func (c *paypalClientImpl) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	accessToken, err := c.getAccessToken(ctx)
	if err != nil {
		return fmt.Errorf("get paypal access token: %w", err)
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal req payload: %w", err)
		}
		body = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseApiURL+path, body)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return &PaypalError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode paypal response: %w", err)
	}

	return nil
}

func (c *paypalClientImpl) CreateOrder(ctx context.Context, units []model.PaypalPurchaseUnit) (string, error) {
	payload := map[string]interface{}{
		"intent":         "CAPTURE",
		"purchase_units": units,
	}

	var result struct {
		ID     string             `json:"id"`
		Status string             `json:"status"`
		Links  []model.PaypalLink `json:"links"`
	}
	if err := c.postJSON(ctx, "/v2/checkout/orders", payload, &result); err != nil {
		return "", err
	}

	return result.ID, nil
}

func (c *paypalClientImpl) CaptureOrder(ctx context.Context, orderID string) (*model.PaypalCapture, error) {
	var capture model.PaypalCapture
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", orderID)
	if err := c.postJSON(ctx, path, nil, &capture); err != nil {
		return nil, err
	}

	return &capture, nil
}

func (c *paypalClientImpl) CreateSubscription(ctx context.Context, planID string) (string, error) {
	payload := map[string]interface{}{
		"plan_id": planID,
	}

	var result struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := c.postJSON(ctx, "/v1/billing/subscriptions", payload, &result); err != nil {
		return "", err
	}

	return result.ID, nil
}
