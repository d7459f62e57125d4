package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnavailable covers transport failures, timeouts and gateway 5xx
// responses. The caller may let the user retry from scratch; nothing
// was charged.
var ErrUnavailable = errors.New("payment gateway unavailable")

const StatusSuccess = "success"

type InitRequest struct {
	Email       string
	AmountMinor int64
	Currency    string
	Reference   string
	CallbackURL string
}

type InitResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type VerifyResult struct {
	Status      string
	AmountMinor int64
	Currency    string
}

// Gateway is the hosted-checkout API surface the orchestrator needs.
type Gateway interface {
	Initialize(ctx context.Context, req InitRequest) (InitResult, error)
	Verify(ctx context.Context, reference string) (VerifyResult, error)
}

// Client talks to a Paystack-style transaction API. The secret key
// stays server-side; amounts are integer minor units throughout.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

func NewClient(baseURL, secret string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		secret:  secret,
		http:    &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func (c *Client) Initialize(ctx context.Context, req InitRequest) (InitResult, error) {
	body, err := json.Marshal(map[string]any{
		"email":        req.Email,
		"amount":       req.AmountMinor,
		"currency":     req.Currency,
		"reference":    req.Reference,
		"callback_url": req.CallbackURL,
	})
	if err != nil {
		return InitResult{}, err
	}

	var data initData
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, &data); err != nil {
		return InitResult{}, err
	}
	return InitResult{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

func (c *Client) Verify(ctx context.Context, reference string) (VerifyResult, error) {
	var data verifyData
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &data); err != nil {
		return VerifyResult{}, err
	}
	return VerifyResult{
		Status:      data.Status,
		AmountMinor: data.Amount,
		Currency:    data.Currency,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: gateway returned %d", ErrUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: bad response body: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK || !env.Status {
		return fmt.Errorf("gateway rejected request: %s", env.Message)
	}
	return json.Unmarshal(env.Data, out)
}
