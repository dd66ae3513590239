// Copyright 2026 The FastControl Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/fastcontrol/console/lib/netutil"
	"github.com/fastcontrol/console/lib/secret"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the base URL of the FastControl API (e.g., "http://localhost:8000").
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Client is an unauthenticated FastControl API client. It holds the
// base URL and HTTP transport, shared across Sessions.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new unauthenticated FastControl API client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}

	// Validate the URL structure. We store the string form (with the
	// trailing slash stripped) and build request URLs by direct
	// concatenation, avoiding url.URL re-encoding surprises.
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Ping checks that the API is reachable. It calls the unauthenticated
// root endpoint and returns the service status message.
func (c *Client) Ping(ctx context.Context) (string, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return "", fmt.Errorf("api: ping failed: %w", err)
	}

	var status statusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return "", fmt.Errorf("api: failed to parse ping response: %w", err)
	}
	return status.Message, nil
}

// Login exchanges credentials for a bearer token and returns an
// authenticated Session. The password Buffer is read but not closed —
// the caller retains ownership.
//
// Login performs only the token exchange. Fetching the profile (Me)
// and committing the session to a store are the caller's steps, so a
// failed profile fetch never leaves a half-authenticated state behind.
func (c *Client) Login(ctx context.Context, username string, password *secret.Buffer) (*Session, error) {
	if username == "" {
		return nil, fmt.Errorf("api: username is required for login")
	}
	if password == nil {
		return nil, fmt.Errorf("api: password is required for login")
	}

	// Password is converted to string at the JSON serialization
	// boundary. The heap copy is short-lived.
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/login", nil, loginRequest{
		Username: username,
		Password: password.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("api: login failed: %w", err)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("api: failed to parse login response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("api: login response missing access_token")
	}

	tokenBuffer, err := secret.NewFromString(token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("api: protecting access token: %w", err)
	}

	c.logger.Info("logged in to fastcontrol api", "username", username)

	return &Session{
		client: c,
		token:  tokenBuffer,
	}, nil
}

// doRequest performs an HTTP request against the API and returns the
// response body. On 2xx, returns the body. On 4xx/5xx, returns an
// *APIError with the server's detail message. token may be nil for
// unauthenticated endpoints.
func (c *Client) doRequest(ctx context.Context, method, path string, token *secret.Buffer, requestBody any) ([]byte, error) {
	requestURL := c.baseURL + path

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: failed to create request: %w", err)
	}

	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != nil {
		request.Header.Set("Authorization", "Bearer "+token.String())
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("api: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	// All API error responses share the {"detail": ...} shape. A
	// non-JSON body (proxy error page, crash output) leaves Detail
	// empty; the raw body is kept for diagnostics.
	apiErr := &APIError{StatusCode: response.StatusCode}
	if jsonErr := json.Unmarshal(responseBody, apiErr); jsonErr != nil || apiErr.Detail == "" {
		apiErr.Body = string(responseBody)
	}

	return nil, apiErr
}
