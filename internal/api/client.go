package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/exp/slog"

	"medisync/internal/sync"
)

// Client talks to the sync server. All responses map onto the sync error
// taxonomy so callers can route on kind instead of string-matching.
type Client struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func New(baseURL string, log *slog.Logger) *Client {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &Client{
		client:    client,
		log:       log,
		baseURL:   baseURL,
		userAgent: "MediSync-Client/1.0",
	}
}

// SetToken installs the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

// HealthCheck probes server reachability without auth.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/health", nil)
	if err != nil {
		return &sync.UnexpectedError{Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return &sync.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &sync.ServerError{Code: resp.StatusCode}
	}
	return nil
}

// Login exchanges credentials for a bearer token and installs it on the
// client.
func (c *Client) Login(ctx context.Context, login, password string) (string, error) {
	body := struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}{login, password}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", body)
	if err != nil {
		return "", err
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := c.parseResponse(resp, &loginResp); err != nil {
		return "", err
	}

	c.SetToken(loginResp.Token)
	return loginResp.Token, nil
}

// Register creates a user account.
func (c *Client) Register(ctx context.Context, login, password string) error {
	body := struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}{login, password}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", body)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, nil)
}

// pushResponse carries per-record validation errors. The batch itself is
// all-or-nothing at the transport level; record-level errors are reported
// but do not fail the push.
type pushResponse struct {
	Errors []RecordError `json:"errors,omitempty"`
}

// RecordError is one server-side validation complaint about a pushed record.
type RecordError struct {
	ID       string   `json:"id"`
	Messages []string `json:"schema_error_messages,omitempty"`
}

// Push sends one batch of payloads under the entity's wire key, e.g.
// {"patients": [...]}.
func Push[P any](ctx context.Context, c *Client, path, entityKey string, payloads []P) error {
	body := map[string]any{entityKey: payloads}

	resp, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}

	var result pushResponse
	if err := c.parseResponse(resp, &result); err != nil {
		return err
	}

	for _, recErr := range result.Errors {
		c.log.Warn("server rejected record payload",
			"entity", entityKey,
			"id", recErr.ID,
			"messages", recErr.Messages,
		)
	}
	return nil
}

// Pull fetches one page of the entity's change feed. An empty token starts
// from the beginning.
func Pull[P any](ctx context.Context, c *Client, path, entityKey string, batchSize int, token string) (sync.Page[P], error) {
	query := url.Values{"limit": {strconv.Itoa(batchSize)}}
	if token != "" {
		query.Set("process_token", token)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path+"?"+query.Encode(), nil)
	if err != nil {
		return sync.Page[P]{}, err
	}

	var raw map[string]json.RawMessage
	if err := c.parseResponse(resp, &raw); err != nil {
		return sync.Page[P]{}, err
	}

	var page sync.Page[P]
	if data, ok := raw[entityKey]; ok {
		if err := json.Unmarshal(data, &page.Payloads); err != nil {
			return sync.Page[P]{}, &sync.UnexpectedError{Err: fmt.Errorf("decode %s page: %w", entityKey, err)}
		}
	}
	if data, ok := raw["process_token"]; ok {
		if err := json.Unmarshal(data, &page.Token); err != nil {
			return sync.Page[P]{}, &sync.UnexpectedError{Err: fmt.Errorf("decode process token: %w", err)}
		}
	}
	return page, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &sync.UnexpectedError{Err: fmt.Errorf("marshal request body: %w", err)}
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &sync.UnexpectedError{Err: fmt.Errorf("build request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &sync.NetworkError{Err: err}
	}
	return resp, nil
}

func (c *Client) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &sync.NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}

	c.log.Debug("received response", "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &sync.UnauthenticatedError{}
	case resp.StatusCode >= 400:
		return &sync.ServerError{Code: resp.StatusCode, Body: string(body)}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return &sync.UnexpectedError{Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}
