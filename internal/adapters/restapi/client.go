// Package restapi implements ports.UserAPI against a Directus-style REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainuser "github.com/target/mmk-usersession/internal/domain/user"
	apperrors "github.com/target/mmk-usersession/internal/errors"
	"github.com/target/mmk-usersession/internal/observability/statsd"
	"github.com/target/mmk-usersession/internal/ports"
	"golang.org/x/oauth2"
)

const (
	usersMePath   = "/users/me"
	trackPagePath = "/users/me/track/page"

	// MetricRequestLatency is emitted for requests tagged for latency measurement.
	MetricRequestLatency = "api.request.latency"

	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "mmk-usersession"
	maxErrorBody     = 64 << 10
)

var _ ports.UserAPI = (*Client)(nil)

// Config groups dependencies for Client.
type Config struct {
	BaseURL   string
	Token     string // static access token sent as a bearer credential; optional
	Timeout   time.Duration
	UserAgent string

	// HTTPClient supplies the base transport. Defaults to http.DefaultTransport.
	HTTPClient *http.Client
	Metrics    statsd.Sink
	Logger     *slog.Logger
}

// Client is a thin JSON client for the current-user endpoints.
type Client struct {
	baseURL   *url.URL
	hc        *http.Client
	userAgent string
	metrics   statsd.Sink
	logger    *slog.Logger
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("api base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api base url must be http or https, got %q", base.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	if token := strings.TrimSpace(cfg.Token); token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		}))
	} else {
		cp := *hc
		hc = &cp
	}
	hc.Timeout = timeout

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = statsd.Nop{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:   base,
		hc:        hc,
		userAgent: userAgent,
		metrics:   metrics,
		logger:    logger,
	}, nil
}

// GetCurrentUser fetches /users/me with the given field selectors.
func (c *Client) GetCurrentUser(ctx context.Context, fields []string) (domainuser.Record, error) {
	query := url.Values{}
	if sel := joinFields(fields); sel != "" {
		query.Set("fields", sel)
	}

	var envelope struct {
		Data domainuser.Record `json:"data"`
	}
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   usersMePath,
		query:  query,
		out:    &envelope,
	}); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, apperrors.NotFound("current user not found")
	}
	return envelope.Data, nil
}

// TrackPage records lastPage as the user's last visited page.
func (c *Client) TrackPage(ctx context.Context, lastPage string) error {
	return c.do(ctx, request{
		method:         http.MethodPatch,
		path:           trackPagePath,
		body:           map[string]string{domainuser.FieldLastPage: lastPage},
		measureLatency: true,
	})
}

type request struct {
	method         string
	path           string
	query          url.Values
	body           any
	out            any
	measureLatency bool
}

func (c *Client) do(ctx context.Context, r request) error {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.observe(r, start, "error")
		return apperrors.FromTransport(err, fmt.Sprintf("%s %s", r.method, r.path))
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(ctx, "close response body", "error", cerr)
		}
	}()
	c.observe(r, start, strconv.Itoa(resp.StatusCode))

	c.logger.DebugContext(ctx, "api request",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(r, resp)
	}
	if r.out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(r.out); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "decode %s %s response", r.method, r.path)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	u := c.baseURL.JoinPath(r.path)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		buf, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", r.path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) observe(r request, start time.Time, status string) {
	if !r.measureLatency {
		return
	}
	c.metrics.Timing(MetricRequestLatency, time.Since(start), map[string]string{
		"method": r.method,
		"route":  r.path,
		"status": status,
	})
}

// apiErrors is the error envelope returned by the users API.
type apiErrors struct {
	Errors []struct {
		Message    string `json:"message"`
		Extensions struct {
			Code string `json:"code"`
		} `json:"extensions"`
	} `json:"errors"`
}

func decodeError(r request, resp *http.Response) error {
	code := apperrors.CodeForStatus(resp.StatusCode)
	msg := fmt.Sprintf("%s %s: unexpected status %d", r.method, r.path, resp.StatusCode)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && len(data) > 0 {
		var env apiErrors
		if json.Unmarshal(data, &env) == nil && len(env.Errors) > 0 && env.Errors[0].Message != "" {
			msg = fmt.Sprintf("%s %s: %s", r.method, r.path, env.Errors[0].Message)
		}
	}
	return apperrors.New(code, msg)
}

// joinFields drops blank selectors and joins the rest with commas.
func joinFields(fields []string) string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return strings.Join(out, ",")
}
