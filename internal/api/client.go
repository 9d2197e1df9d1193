// Package api is a typed client for the event HTTP API consumed by the dashboard.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	herrors "github.com/cb-innovatekare/hokage/internal/errors"
	"github.com/cb-innovatekare/hokage/internal/logging"
	"github.com/cb-innovatekare/hokage/internal/team"
)

// Endpoint paths, relative to the base URL.
const (
	PathTeams        = "/event/students"
	PathDomains      = "/domains"
	PathVerifyPrefix = "/event/event/verify/"
	PathUpdateDomain = "/admin/updateDomain"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxBody bounds how much of a response body is read.
const maxBody = 8 << 20

// Client talks to the event API. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      string
	logger     *logging.Logger
	newID      func() string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, herrors.NewValidationError("invalid api base url").WithField("api.base_url").WithCause(err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, herrors.NewValidationError("api base url must be http or https").
			WithField("api.base_url").WithValue(baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logging.NopLogger(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListTeams fetches every team (GET /event/students).
func (c *Client) ListTeams(ctx context.Context) ([]team.Team, error) {
	var teams []team.Team
	if err := c.do(ctx, http.MethodGet, PathTeams, nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// ListDomains fetches the domain catalog (GET /domains).
func (c *Client) ListDomains(ctx context.Context) ([]team.Domain, error) {
	var domains []team.Domain
	if err := c.do(ctx, http.MethodGet, PathDomains, nil, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}

// VerifyTeam marks a team verified (POST /event/event/verify/{teamId}).
func (c *Client) VerifyTeam(ctx context.Context, id team.ID) error {
	if id == "" {
		return herrors.NewValidationError("team id cannot be empty").WithField("teamId")
	}
	return c.do(ctx, http.MethodPost, PathVerifyPrefix+url.PathEscape(id.String()), nil, nil)
}

// UpdateDomainRequest is the body of POST /admin/updateDomain.
type UpdateDomainRequest struct {
	TeamID team.ID `json:"teamId"`
	Domain string  `json:"domain"`
}

// UpdateDomain reassigns a team's domain (POST /admin/updateDomain).
func (c *Client) UpdateDomain(ctx context.Context, id team.ID, domain string) error {
	if id == "" {
		return herrors.NewValidationError("team id cannot be empty").WithField("teamId")
	}
	return c.do(ctx, http.MethodPost, PathUpdateDomain, UpdateDomainRequest{TeamID: id, Domain: domain}, nil)
}

// do performs a request and decodes a JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	reqID := c.newID()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log := c.logger.With("method", method, "path", path, "request_id", reqID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "error", err.Error())
		return herrors.NewTransportError(method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return herrors.NewTransportError(method, path, err)
	}

	log.Debug("request completed", "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return herrors.NewAPIError(method, path, resp.StatusCode).WithBody(string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return herrors.NewAPIError(method, path, resp.StatusCode).
			WithCause(fmt.Errorf("%w: %v", herrors.ErrInvalidPayload, err))
	}
	return nil
}
