// Package client is the gateway every front end uses to reach the API. It
// resolves the API base, attaches the admin token to writes and turns
// every failure into either an *APIError or ErrNetwork. Read paths used by
// the public site degrade to defaults instead of failing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/rs/zerolog"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

// Client talks to the portfolio API.
type Client struct {
	base    string
	http    *http.Client
	session *Session
	log     zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithSession supplies the token store used for authenticated calls.
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

// WithLogger sets the logger for absorbed read failures.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a Client for baseURL, e.g. "http://localhost:5000/api".
// Calls carry no timeout of their own; bound them with the request context
// or pass a client with a deadline through WithHTTPClient.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		session: NewMemorySession(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved API base.
func (c *Client) BaseURL() string { return c.base }

// Session returns the session backing authenticated calls.
func (c *Client) Session() *Session { return c.session }

// do sends a request and decodes a 2xx JSON body into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, authed bool, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return errors.Annotatef(err, "encoding %s %s", method, path)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return errors.Annotatef(err, "building %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		// an empty token is still sent; the server answers 401
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WithType(errors.Annotatef(err, "%s %s", method, path), ErrNetwork)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WithType(errors.Annotatef(err, "reading %s %s", method, path), ErrNetwork)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Annotatef(err, "decoding %s %s", method, path)
	}
	return nil
}

// GetSettings returns the stored settings merged over the defaults. Any
// failure yields the defaults.
func (c *Client) GetSettings(ctx context.Context) data.SiteSettings {
	var stored data.SiteSettings
	if err := c.do(ctx, http.MethodGet, "/settings", false, nil, &stored); err != nil {
		c.log.Warn().Err(err).Str("url", c.base+"/settings").Msg("settings unavailable; using defaults")
		return data.DefaultSettings()
	}
	return data.WithDefaults(&stored)
}

// UpdateSettings writes the given top-level fields; fields not named keep
// their stored values.
func (c *Client) UpdateSettings(ctx context.Context, fields map[string]any) (*data.SiteSettings, error) {
	var out data.SiteSettings
	if err := c.do(ctx, http.MethodPut, "/settings", true, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProjects returns every project, or an empty slice on failure.
func (c *Client) GetProjects(ctx context.Context) []data.Project {
	projects, err := c.ListProjects(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("projects unavailable; showing none")
		return []data.Project{}
	}
	return projects
}

// ListProjects is GetProjects with the error reported.
func (c *Client) ListProjects(ctx context.Context) ([]data.Project, error) {
	var projects []data.Project
	if err := c.do(ctx, http.MethodGet, "/projects", false, nil, &projects); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []data.Project{}
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (*data.Project, error) {
	var p data.Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), false, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) SaveProject(ctx context.Context, in data.NewProject) (*data.Project, error) {
	var p data.Project
	if err := c.do(ctx, http.MethodPost, "/projects", true, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, patch data.ProjectPatch) (*data.Project, error) {
	var p data.Project
	if err := c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), true, patch, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), true, nil, nil)
}

// GetMessages returns the inbox, or an empty slice on failure.
func (c *Client) GetMessages(ctx context.Context) []data.Message {
	msgs, err := c.ListMessages(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("messages unavailable; showing none")
		return []data.Message{}
	}
	return msgs
}

// ListMessages is GetMessages with the error reported, so callers can tell
// an expired session from an empty inbox.
func (c *Client) ListMessages(ctx context.Context) ([]data.Message, error) {
	var msgs []data.Message
	if err := c.do(ctx, http.MethodGet, "/messages", true, nil, &msgs); err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []data.Message{}
	}
	return msgs, nil
}

// SendMessage posts a visitor's contact form. No token is sent.
func (c *Client) SendMessage(ctx context.Context, in data.NewMessage) error {
	return c.do(ctx, http.MethodPost, "/messages", false, in, nil)
}

func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/messages/"+url.PathEscape(id), true, nil, nil)
}

// DeleteMessages removes the given messages in one call.
func (c *Client) DeleteMessages(ctx context.Context, ids []string) (data.BatchDeleteResult, error) {
	var res data.BatchDeleteResult
	err := c.do(ctx, http.MethodDelete, "/messages", true, map[string][]string{"ids": ids}, &res)
	return res, err
}

// ClearMessages empties the inbox in one call.
func (c *Client) ClearMessages(ctx context.Context) (data.BatchDeleteResult, error) {
	var res data.BatchDeleteResult
	err := c.do(ctx, http.MethodDelete, "/messages", true, nil, &res)
	return res, err
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login exchanges the passphrase for a token and stores it in the session.
// A wrong passphrase returns false with no error; transport failures are
// returned.
func (c *Client) Login(ctx context.Context, password string) (bool, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login", false, map[string]string{"password": password}, &resp)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if resp.Token == "" {
		return false, errors.New("login response carried no token")
	}
	if err := c.session.SetToken(resp.Token, resp.ExpiresAt); err != nil {
		return true, err
	}
	return true, nil
}

// Logout forgets the token.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// Health is the API's liveness report.
type Health struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	err := c.do(ctx, http.MethodGet, "/health", false, nil, &h)
	return h, err
}
