package authsdk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/vocabhq/vocab/pkg/httpx"
)

const (
	whoamiPath = "/api/v1/auth/me"

	// Retry budget for the whoami GET: three attempts total. Only this
	// idempotent GET is ever retried.
	whoamiMaxRetries = 2
)

// WhoAmI forwards the Authorization header verbatim to the authority and
// returns the profile it vouches for. Every failure mode maps to a typed
// *httpx.AuthError:
//
//	401       -> INVALID_TOKEN
//	403       -> UNAUTHORIZED_ACCESS
//	404       -> USER_NOT_FOUND
//	503       -> AUTH_SERVICE_UNAVAILABLE
//	other 5xx -> AUTH_SERVICE_ERROR
//	no answer -> AUTH_SERVICE_ERROR
//
// The design fails closed: not being able to reach the authority is an
// authentication failure, never a pass.
func (c *Client) WhoAmI(ctx context.Context, authorization string) (*UserInfo, error) {
	var info *UserInfo

	operation := func() error {
		var err error
		info, err = c.whoamiOnce(ctx, authorization)
		return err
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 100 * time.Millisecond
	expo.MaxInterval = time.Second

	policy := backoff.WithContext(backoff.WithMaxRetries(expo, whoamiMaxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return info, nil
}

// GatewayFunc adapts WhoAmI to the shape httpx.RemoteAuthnGateway consumes,
// turning the vouched profile into a request principal. The role string is
// the principal's single authority.
func (c *Client) GatewayFunc() httpx.WhoAmIFunc {
	return func(ctx context.Context, authorization string) (httpx.Principal, error) {
		info, err := c.WhoAmI(ctx, authorization)
		if err != nil {
			return httpx.Principal{}, err
		}
		return httpx.Principal{
			Username:    info.UserName,
			Authorities: []string{info.Role},
		}, nil
	}
}

func (c *Client) whoamiOnce(ctx context.Context, authorization string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(whoamiPath), nil)
	if err != nil {
		return nil, backoff.Permanent(httpx.ErrAuthServiceError.WithDetails("failed to create request: %v", err))
	}
	req.Header.Set("Authorization", authorization)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// Transport-level failure: no response at all. Retryable.
		return nil, httpx.ErrAuthServiceError.WithDetails("authority unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, httpx.ErrAuthServiceError.WithDetails("failed to read authority response")
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var info UserInfo
		if err := json.Unmarshal(body, &info); err != nil {
			return nil, backoff.Permanent(httpx.ErrAuthServiceError.WithDetails("malformed authority response"))
		}
		return &info, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, backoff.Permanent(httpx.ErrInvalidToken.Err())
	case resp.StatusCode == http.StatusForbidden:
		return nil, backoff.Permanent(httpx.ErrUnauthorizedAccess.Err())
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(httpx.ErrUserNotFound.Err())
	case resp.StatusCode == http.StatusServiceUnavailable:
		// Worth retrying: the authority may come back within the budget.
		return nil, httpx.ErrAuthServiceUnavailable.Err()
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, httpx.ErrAuthServiceError.Err()
	default:
		return nil, backoff.Permanent(httpx.ErrAuthServiceError.WithDetails("unexpected authority status %d", resp.StatusCode))
	}
}

// errorFromEnvelope turns a non-2xx authority response into a typed error by
// decoding the shared envelope. Responses without a recognizable envelope
// fail closed as internal errors.
func errorFromEnvelope(status int, body []byte) error {
	var envelope httpx.ErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Code != "" {
		return &httpx.AuthError{Kind: httpx.KindForCode(envelope.Code), Details: envelope.Details}
	}
	return httpx.ErrInternal.WithDetails("HTTP %d: %s", status, http.StatusText(status))
}
