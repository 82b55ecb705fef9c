// Package client is a typed HTTP client for the gateway REST surface. It
// unwraps the {"data": ...} envelope, sends the bearer token and retries
// transport failures and retryable 5xx responses with exponential backoff.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/GoyacJ/qmt-gateway/models"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
)

// APIError is a non-2xx gateway response.
type APIError struct {
	StatusCode       int
	Code             string
	Message          string
	ValidationErrors map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Temporary reports whether the same request may succeed when retried.
// 501 means the backend lacks the capability and never changes.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 && e.StatusCode != http.StatusNotImplemented
}

type Client struct {
	baseURL     string
	token       string
	httpClient  *http.Client
	maxAttempts int
	newBackOff  func() backoff.BackOff
	newID       func() string
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxAttempts bounds the total number of tries per call, first try included.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackOff sets the exponential schedule between retries.
func WithBackOff(initial, maxInterval time.Duration) Option {
	return func(c *Client) {
		c.newBackOff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxInterval
			return b
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		maxAttempts: defaultMaxAttempts,
		newBackOff:  func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var out models.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBalance(ctx context.Context, accountID string) (*models.Balance, error) {
	var out models.Balance
	q := url.Values{"account_id": {accountID}}
	if err := c.getData(ctx, "/v1/account/balance", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPositions(ctx context.Context, accountID string) ([]models.Position, error) {
	var out models.PositionsData
	q := url.Values{"account_id": {accountID}}
	if err := c.getData(ctx, "/v1/account/positions", q, &out); err != nil {
		return nil, err
	}
	return out.Positions, nil
}

func (c *Client) GetSnapshot(ctx context.Context, symbol string) (*models.Snapshot, error) {
	var out models.Snapshot
	if err := c.getData(ctx, "/v1/market/snapshot", url.Values{"symbol": {symbol}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetKlines leaves interval and limit to the gateway defaults when zero.
func (c *Client) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]models.Kline, error) {
	q := url.Values{"symbol": {symbol}}
	if interval != "" {
		q.Set("interval", interval)
	}
	if limit != 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out models.KlinesData
	if err := c.getData(ctx, "/v1/market/klines", q, &out); err != nil {
		return nil, err
	}
	return out.Klines, nil
}

func (c *Client) GetSymbols(ctx context.Context, scope models.SymbolScope, sector string) ([]string, error) {
	q := url.Values{}
	if scope != "" {
		q.Set("scope", string(scope))
	}
	if sector != "" {
		q.Set("sector", sector)
	}
	var out models.SymbolsData
	if err := c.getData(ctx, "/v1/market/symbols", q, &out); err != nil {
		return nil, err
	}
	return out.Symbols, nil
}

// PlaceOrder assigns a client_req_id when the caller left it empty. Every
// retry resends the same id so a deduplicating gateway fills at most once.
func (c *Client) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	if req.ClientReqID == "" {
		req.ClientReqID = c.newID()
	}
	var out models.Order
	if err := c.postData(ctx, "/v1/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelOrder(ctx context.Context, accountID, orderID string) (*models.CancelResult, error) {
	var out models.CancelResult
	req := models.CancelOrderRequest{AccountID: accountID, OrderID: orderID}
	if err := c.postData(ctx, "/v1/orders/cancel", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getData(ctx context.Context, path string, q url.Values, out any) error {
	env := models.Envelope{Data: out}
	return c.do(ctx, http.MethodGet, path, q, nil, &env)
}

func (c *Client) postData(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encode request")
	}
	env := models.Envelope{Data: out}
	return c.do(ctx, http.MethodPost, path, nil, payload, &env)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, payload []byte, out any) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	b := c.newBackOff()
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		var retry bool
		retry, lastErr = c.send(ctx, method, target, payload, out)
		if lastErr == nil || !retry || ctx.Err() != nil || attempt == c.maxAttempts {
			break
		}

		wait := b.NextBackOff()
		if wait == backoff.Stop {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), lastErr.Error())
		case <-time.After(wait):
		}
	}
	return lastErr
}

// send performs one attempt and reports whether a failure is worth retrying:
// transport errors and temporary gateway errors are, local encode and decode
// failures are not.
func (c *Client) send(ctx context.Context, method, target string, payload []byte, out any) (retry bool, err error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return false, errors.Wrap(err, "build request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, errors.Wrapf(err, "%s %s", method, target)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, errors.Wrap(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var er models.ErrorResponse
		if json.Unmarshal(raw, &er) == nil && er.Error != "" {
			apiErr.Code = er.Code
			apiErr.Message = er.Error
			apiErr.ValidationErrors = er.ValidationErrors
		}
		return apiErr.Temporary(), apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, errors.Wrap(err, "decode response")
	}
	return false, nil
}
