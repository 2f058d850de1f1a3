// Package api is the client-side wrapper around the Wayfinder backend: one
// configured HTTP client that attaches the stored bearer token to every
// request, decodes responses into typed results, and classifies failures.
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
	"strings"
	"time"

	"github.com/npatel/wayfinder/internal/session"
	"github.com/sirupsen/logrus"
)

// TokenSource yields the current access token, or "" when logged out.
// *session.Store satisfies it.
type TokenSource interface {
	Get() string
}

var _ TokenSource = (*session.Store)(nil)

// Client talks to the Wayfinder backend. No retries, no token refresh:
// every call is one request, and failures are returned to the caller.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
}

// NewClient builds a Client for the given base URL and token source.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

// LoginResult is the POST /auth/login response.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// DistanceResult is the POST /routes/distance response.
type DistanceResult struct {
	Source        string  `json:"source"`
	Destination   string  `json:"destination"`
	Unit          string  `json:"unit"`
	DistanceKM    float64 `json:"distance_km"`
	DistanceMiles float64 `json:"distance_miles"`
}

// HistoryRecord is one row of a history page.
type HistoryRecord struct {
	Source        string  `json:"source"`
	Destination   string  `json:"destination"`
	DistanceKM    float64 `json:"distance_km"`
	DistanceMiles float64 `json:"distance_miles"`
}

// HistoryPage is the GET /routes/history response.
type HistoryPage struct {
	Items []HistoryRecord `json:"items"`
	Total int             `json:"total"`
}

// InsightsResult is the POST /routes/history-insights response.
type InsightsResult struct {
	Answer string `json:"answer"`
}

// Login posts form-encoded credentials and returns the issued token. The
// caller stores it; this package never writes the session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("api: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out LoginResult
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, email, password, firstName, lastName string) error {
	payload := map[string]string{
		"email":      email,
		"password":   password,
		"first_name": firstName,
		"last_name":  lastName,
	}
	req, err := c.jsonRequest(ctx, http.MethodPost, "/auth/signup", payload)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// Distance requests a distance calculation between two addresses.
func (c *Client) Distance(ctx context.Context, source, destination, unit string) (*DistanceResult, error) {
	payload := map[string]string{
		"source":      source,
		"destination": destination,
		"unit":        unit,
	}
	req, err := c.jsonRequest(ctx, http.MethodPost, "/routes/distance", payload)
	if err != nil {
		return nil, err
	}
	var out DistanceResult
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History fetches one page of past queries.
func (c *Client) History(ctx context.Context, offset, limit int) (*HistoryPage, error) {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/routes/history?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("api: build history request: %w", err)
	}
	var out HistoryPage
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HistoryInsights asks the assistant a question about the history.
func (c *Client) HistoryInsights(ctx context.Context, question, sessionID string) (*InsightsResult, error) {
	payload := map[string]string{
		"question":   question,
		"session_id": sessionID,
	}
	req, err := c.jsonRequest(ctx, http.MethodPost, "/routes/history-insights", payload)
	if err != nil {
		return nil, err
	}
	var out InsightsResult
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, payload interface{}) (*http.Request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("api: marshal %s body: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("api: build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do sends the request with the bearer token attached, classifies the
// outcome, and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(req *http.Request, out interface{}) error {
	if token := c.tokens.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		logrus.WithError(err).Error("no response from server")
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classify(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("api: decode %s response: %w", req.URL.Path, err)
		}
	}
	return nil
}

// classify turns a non-2xx response into an *APIError, logging the failure
// class before returning it to the caller for view-specific handling.
func (c *Client) classify(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &detail) == nil {
			apiErr.Detail = detail.Detail
		}
	}

	entry := logrus.WithFields(logrus.Fields{
		"status": resp.StatusCode,
		"path":   resp.Request.URL.Path,
	})
	switch {
	case resp.StatusCode == 401:
		entry.Warn("unauthorized, please login")
	case resp.StatusCode == 403:
		entry.Warn("forbidden")
	case resp.StatusCode >= 500:
		entry.Error("server error")
	}
	return apiErr
}
