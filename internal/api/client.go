// Package api provides the authenticated HTTP client for the
// recruiting-search backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/RK-HR-org/rsq/internal/output"
	"github.com/RK-HR-org/rsq/internal/version"
)

// traceWriter is where verbose request tracing goes; swapped in tests.
var traceWriter io.Writer = os.Stderr

// CredentialSource supplies and persists the access/refresh token pair.
// Implementations must treat storage unavailability as "absent".
type CredentialSource interface {
	// Tokens returns the stored pair; empty strings when absent.
	Tokens() (access, refresh string)
	// SetTokens persists a new pair.
	SetTokens(access, refresh string) error
	// ClearTokens destroys the stored pair.
	ClearTokens() error
}

// Client is an HTTP client for the backend API. It attaches the bearer token
// to every request and transparently refreshes an expired session: when
// concurrent requests hit a 401, exactly one refresh call is issued and every
// waiting request is replayed (or failed) with the refresh outcome.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      CredentialSource
	verbose    bool

	// onAuthExpired is invoked once per recovery attempt when the session is
	// unrecoverable (no refresh token, or the refresh call itself was
	// rejected). By then the stored credentials are already cleared; the hook
	// exists for callers that need to observe the expiry.
	onAuthExpired func()

	mu         sync.Mutex
	refreshing bool
	waiters    []chan string
}

// Response wraps an API response.
type Response struct {
	Data       json.RawMessage
	StatusCode int
	Headers    http.Header
}

// UnmarshalData unmarshals the response data into the given value.
func (r *Response) UnmarshalData(v any) error {
	if len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

// NewClient creates a new API client.
func NewClient(baseURL string, creds CredentialSource) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		creds:   creds,
	}
}

// SetVerbose enables request tracing to stderr.
func (c *Client) SetVerbose(v bool) {
	c.verbose = v
}

// OnAuthExpired registers the unrecoverable-session callback.
func (c *Client) OnAuthExpired(fn func()) {
	c.onAuthExpired = fn
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request. Query may be nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ForceRefresh rotates the token pair without waiting for a 401. It joins
// the same exactly-once protocol as transparent recovery, so a concurrent
// in-flight refresh is reused rather than doubled.
func (c *Client) ForceRefresh(ctx context.Context) error {
	_, err := c.recoverSession(ctx, output.ErrAuth("Session expired"))
	return err
}

// do issues the request once and, on a 401, runs the refresh protocol and
// replays exactly once. A 401 on the replay propagates as-is; a request is
// never retried twice.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	access, _ := c.creds.Tokens()

	resp, err := c.send(ctx, method, path, query, body, access)
	if httpStatus(err) != http.StatusUnauthorized {
		return resp, err
	}

	token, refreshErr := c.recoverSession(ctx, err)
	if refreshErr != nil {
		return nil, refreshErr
	}
	return c.send(ctx, method, path, query, body, token)
}

// recoverSession runs the exactly-once refresh protocol. The first request to
// observe the expiry performs the refresh; concurrent requests park on the
// waiter list and are released with the shared outcome. Waiters that lose
// receive their own original 401 (origErr), never the refresh error.
func (c *Client) recoverSession(ctx context.Context, origErr error) (string, error) {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan string, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		select {
		case token := <-ch:
			if token == "" {
				return "", origErr
			}
			return token, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	var newToken string
	defer func() {
		c.mu.Lock()
		c.refreshing = false
		waiters := c.waiters
		c.waiters = nil
		c.mu.Unlock()
		for _, ch := range waiters {
			ch <- newToken
		}
	}()

	_, refresh := c.creds.Tokens()
	if refresh == "" {
		_ = c.creds.ClearTokens()
		c.notifyAuthExpired()
		return "", output.ErrAuth("Session expired")
	}

	pair, err := c.callRefresh(ctx, refresh)
	if err != nil {
		_ = c.creds.ClearTokens()
		c.notifyAuthExpired()
		return "", err
	}
	if err := c.creds.SetTokens(pair.AccessToken, pair.RefreshToken); err != nil {
		return "", err
	}
	newToken = pair.AccessToken
	return newToken, nil
}

func (c *Client) notifyAuthExpired() {
	if c.onAuthExpired != nil {
		c.onAuthExpired()
	}
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// callRefresh exchanges the refresh token for a new pair. It goes around do()
// on purpose: a 401 here must surface as a rejected refresh, not recurse into
// the refresh protocol.
func (c *Client) callRefresh(ctx context.Context, refreshToken string) (*tokenPair, error) {
	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/auth/refresh", strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	if c.verbose {
		fmt.Fprintf(traceWriter, "[rsq] POST %s/v1/auth/refresh\n", c.baseURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, output.ErrNetwork(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, output.ErrCredentials(fmt.Sprintf("Token refresh rejected (HTTP %d)", resp.StatusCode))
	}

	var pair tokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return nil, fmt.Errorf("failed to decode refresh response: %w", err)
	}
	return &pair, nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, token string) (*Response, error) {
	u := c.buildURL(path, query)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		bodyReader = strings.NewReader(string(bodyBytes))
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.verbose {
		fmt.Fprintf(traceWriter, "[rsq] %s %s\n", method, u)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, output.ErrNetwork(err)
	}
	defer resp.Body.Close()

	if c.verbose {
		fmt.Fprintf(traceWriter, "[rsq] HTTP %d\n", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return &Response{
			Data:       respBody,
			StatusCode: resp.StatusCode,
			Headers:    resp.Header,
		}, nil

	case http.StatusUnauthorized:
		return nil, &output.Error{
			Code:       output.CodeAuth,
			Message:    errorMessage(respBody, "Authentication failed"),
			HTTPStatus: http.StatusUnauthorized,
		}

	case http.StatusForbidden:
		return nil, output.ErrForbidden(errorMessage(respBody, "Access denied"))

	case http.StatusNotFound:
		return nil, output.ErrNotFound("Resource", path)

	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return nil, output.ErrValidation(resp.StatusCode, errorMessage(respBody, "Validation failed"), validationDetails(respBody))

	case http.StatusTooManyRequests:
		return nil, output.ErrRateLimit(parseRetryAfter(resp.Header.Get("Retry-After")))

	default:
		return nil, output.ErrAPI(resp.StatusCode, errorMessage(respBody, fmt.Sprintf("Request failed (HTTP %d)", resp.StatusCode)))
	}
}

func (c *Client) buildURL(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func httpStatus(err error) int {
	if err == nil {
		return 0
	}
	if e := output.AsError(err); e != nil {
		return e.HTTPStatus
	}
	return 0
}

// errorMessage extracts a human-readable message from an error body.
// The backend emits either {"detail": ...} or {"error"/"message": ...}.
func errorMessage(body []byte, fallback string) string {
	var parsed struct {
		Detail  json.RawMessage `json:"detail"`
		Error   string          `json:"error"`
		Message string          `json:"message"`
	}
	if json.Unmarshal(body, &parsed) != nil {
		return fallback
	}
	if len(parsed.Detail) > 0 {
		var s string
		if json.Unmarshal(parsed.Detail, &s) == nil && s != "" {
			return s
		}
		return fallback
	}
	if parsed.Error != "" {
		return parsed.Error
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	return fallback
}

// validationDetails returns the structured field errors, if the body carries
// any, so they can be rendered verbatim.
func validationDetails(body []byte) json.RawMessage {
	var parsed struct {
		Detail json.RawMessage `json:"detail"`
		Errors json.RawMessage `json:"errors"`
	}
	if json.Unmarshal(body, &parsed) != nil {
		return nil
	}
	if len(parsed.Errors) > 0 {
		return parsed.Errors
	}
	// Only structured detail (array/object) counts as field errors.
	if len(parsed.Detail) > 0 && (parsed.Detail[0] == '[' || parsed.Detail[0] == '{') {
		return parsed.Detail
	}
	return nil
}

// parseRetryAfter parses the Retry-After header value.
func parseRetryAfter(header string) int {
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return seconds
	}
	return 0
}
