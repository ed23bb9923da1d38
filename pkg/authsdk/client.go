package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	// Transport budget for calls to the authority. Connect and read are
	// bounded separately so a dead host fails fast while a slow response
	// still gets room to arrive.
	connectTimeout = 5 * time.Second
	readTimeout    = 10 * time.Second
)

// Client talks to the token authority over HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates an authority client with bounded connect/read timeouts.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: readTimeout,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: connectTimeout}).DialContext,
				TLSHandshakeTimeout: connectTimeout,
			},
		},
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// Register creates a new principal. The authority assigns role and enabled
// state.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	var info UserInfo
	if err := c.postJSON(ctx, "/api/v1/auth/register", req, "", http.StatusCreated, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, userName, password string) (*TokenResponse, error) {
	var tokens TokenResponse
	req := LoginRequest{UserName: userName, Password: password}
	if err := c.postJSON(ctx, "/api/v1/auth/login", req, "", http.StatusOK, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Refresh exchanges the current refresh token for a new pair. The authority
// rotates the stored token, so the presented one is dead after this call
// succeeds.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var tokens TokenResponse
	req := RefreshRequest{RefreshToken: refreshToken}
	if err := c.postJSON(ctx, "/api/v1/auth/refresh", req, "", http.StatusOK, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Logout invalidates the caller's stored refresh token.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	return c.postJSON(ctx, "/api/v1/auth/logout", nil, accessToken, http.StatusNoContent, nil)
}

// UsernameExists asks whether a username is already taken.
func (c *Client) UsernameExists(ctx context.Context, username string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/api/v1/auth/duplicate/"+username), nil)
	if err != nil {
		return false, fmt.Errorf("authsdk: failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("authsdk: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("authsdk: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return false, errorFromEnvelope(resp.StatusCode, body)
	}

	var avail AvailabilityResponse
	if err := json.Unmarshal(body, &avail); err != nil {
		return false, fmt.Errorf("authsdk: failed to decode response: %w", err)
	}
	return avail.Exists, nil
}

// Livez probes the authority's liveness endpoint.
func (c *Client) Livez(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/livez"), nil)
	if err != nil {
		return fmt.Errorf("authsdk: failed to create request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("authsdk: authority unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("authsdk: authority unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// postJSON performs a POST with a JSON body and decodes the expected
// response. POSTs are never retried: none of the authority's mutating
// endpoints are idempotent.
func (c *Client) postJSON(
	ctx context.Context,
	path string,
	payload any,
	accessToken string,
	expectedStatus int,
	target any,
) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("authsdk: failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), body)
	if err != nil {
		return fmt.Errorf("authsdk: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("authsdk: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("authsdk: failed to read response: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return errorFromEnvelope(resp.StatusCode, respBody)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, target); err != nil {
		return fmt.Errorf("authsdk: failed to decode response: %w", err)
	}
	return nil
}
