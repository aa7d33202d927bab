package wapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Default client configuration values.
const (
	// DefaultEndpoint is the production WAPI endpoint.
	DefaultEndpoint = "https://api.wedos.com/wapi/json"

	// DefaultTimeout is the default HTTP timeout for API requests.
	DefaultTimeout = 30 * time.Second
)

// RequestStat describes one completed API request for instrumentation
// hooks. Code is zero when the request never produced a decodable envelope.
type RequestStat struct {
	Command string
	Code    int
	Err     error
	Elapsed time.Duration
}

// RequestObserver receives a RequestStat after every API request, including
// failed ones. Observers run on the calling goroutine and must not block.
type RequestObserver func(RequestStat)

// Client is a WEDOS WAPI client. Credentials are fixed at construction and
// never logged; the client holds no mutable state and is safe for
// concurrent use.
type Client struct {
	user     string
	secret   string
	endpoint string
	testMode bool

	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
	observer   RequestObserver

	location *time.Location
	now      func() time.Time
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEndpoint overrides the API endpoint. Intended for tests and staging
// proxies.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithTestMode toggles the WAPI test flag. Commands sent with the flag set
// are validated and billed-checked by the API but not executed.
func WithTestMode(enabled bool) ClientOption {
	return func(c *Client) {
		c.testMode = enabled
	}
}

// WithRateLimiter sets a limiter the client waits on before every request.
// The public API enforces a fair-use quota; a shared limiter keeps batch
// jobs under it.
func WithRateLimiter(limiter *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithObserver registers an instrumentation hook.
func WithObserver(observer RequestObserver) ClientOption {
	return func(c *Client) {
		c.observer = observer
	}
}

// WithLocation overrides the timezone used to derive the hourly
// authentication token. The public API validates against Europe/Prague;
// override only when talking to a private deployment that expects a
// different clock.
func WithLocation(loc *time.Location) ClientOption {
	return func(c *Client) {
		if loc != nil {
			c.location = loc
		}
	}
}

// NewClient creates a WAPI client for the given login and WAPI password.
// Both values are required; construction performs no network I/O and never
// consults the process environment, so callers decide where credentials
// come from.
func NewClient(user, secret string, opts ...ClientOption) (*Client, error) {
	if user == "" {
		return nil, ErrConfigMissing("user")
	}
	if secret == "" {
		return nil, ErrConfigMissing("secret")
	}

	c := &Client{
		user:     user,
		secret:   secret,
		endpoint: DefaultEndpoint,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.location == nil {
		loc, err := time.LoadLocation(authTimezone)
		if err != nil {
			return nil, ErrConfigInvalid("timezone", authTimezone, err.Error())
		}
		c.location = loc
	}

	return c, nil
}

// User returns the login the client authenticates as.
func (c *Client) User() string {
	return c.user
}

// TestMode reports whether requests are sent with the WAPI test flag.
func (c *Client) TestMode() bool {
	return c.testMode
}

// Do sends a single WAPI command and returns the decoded response envelope.
// A non-success result code is reported as an error while the envelope is
// still returned, so callers can inspect the code and transaction
// identifiers. Do is the escape hatch for commands without a typed wrapper;
// every typed method goes through it.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if req.Command == "" {
		return nil, errors.New("command must not be empty")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	resp, err := c.post(ctx, req)
	if err == nil {
		err = resp.Err()
	}

	if c.observer != nil {
		stat := RequestStat{
			Command: req.Command,
			Err:     err,
			Elapsed: time.Since(start),
		}
		if resp != nil {
			stat.Code = resp.Code
		}
		c.observer(stat)
	}

	return resp, err
}

// Ping verifies connectivity and credentials with the ping command.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.Do(ctx, Request{Command: "ping"}); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// post performs one HTTP exchange with the API. The command is wrapped in
// the envelope, signed with a fresh auth token, and posted as the form
// field "request".
func (c *Client) post(ctx context.Context, req Request) (*Response, error) {
	clTRID := req.ClTRID
	if clTRID == "" {
		clTRID = req.Command
	}

	testFlag := 0
	if c.testMode {
		testFlag = 1
	}

	payload, err := json.Marshal(requestBody{Request: requestPayload{
		User:    c.user,
		Auth:    authToken(c.user, c.secret, c.now().In(c.location)),
		Command: req.Command,
		ClTRID:  clTRID,
		Test:    testFlag,
		Data:    req.Data,
	}})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	form := url.Values{}
	form.Set("request", string(payload))

	c.logger.Debug("sending wapi request",
		slog.String("command", req.Command),
		slog.String("clTRID", clTRID),
		slog.Bool("test", c.testMode),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", ErrUnavailable, err)
	}

	// The API answers application errors with code 200 and an error code in
	// the envelope. Other statuses mean the request never reached it.
	if httpResp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrUnavailable, httpResp.StatusCode)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrMalformedResponse, httpResp.StatusCode)
	}

	resp, err := decodeResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("received wapi response",
		slog.String("command", req.Command),
		slog.Int("code", resp.Code),
		slog.String("result", resp.Result),
		slog.String("svTRID", resp.SvTRID),
	)

	return resp, nil
}
