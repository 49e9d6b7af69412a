package ticktick

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/harrisonrobin/ticked/pkg/auth"
	"github.com/harrisonrobin/ticked/pkg/logging"
	"google.golang.org/api/googleapi"
)

// DefaultBaseURL is the public TickTick API host. Dida365 accounts use https://api.dida365.com.
const DefaultBaseURL = "https://api.ticktick.com"

const (
	signOnPath   = "/api/v2/user/signon"
	batchPath    = "/api/v2/batch/check/0"
	projectsPath = "/api/v2/projects"
)

// ErrConnection matches any failure to reach the service at the transport level.
var ErrConnection = errors.New("connection failed")

// ConnectionError reports that a request never got a response.
type ConnectionError struct {
	Host string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not connect to %s: %v", e.Host, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrConnection) match.
func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

// Client is a single HTTP session against the service.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is added if it has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a session client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", baseURL)
	}

	c := &Client{baseURL: u, http: &http.Client{}, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		hc := *c.http
		hc.Jar = jar
		c.http = &hc
	}
	return c, nil
}

// SignOn submits the credentials and keeps the resulting session for later calls.
// Only the status of the reply matters; a body without a readable token leaves
// the session on cookies alone.
func (c *Client) SignOn(ctx context.Context, creds auth.Credentials) error {
	body, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	q := url.Values{}
	q.Set("wc", "true")
	q.Set("remember", "true")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(signOnPath, q), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, "signon")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tok, err := auth.DecodeToken(resp.Body)
	if err != nil {
		logging.WithOperation(c.logger, "signon").Debug("no session token in reply", logging.Err(err))
		tok = nil
	}
	c.http = auth.Client(c.http, tok)
	return nil
}

// Tasks fetches the "updated tasks" sequence of a full batch check.
// The _ parameter keeps intermediate caches from serving an old snapshot.
func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	q := url.Values{}
	q.Set("_", strconv.FormatInt(c.now().UnixMilli(), 10))
	var out batchCheckResponse
	if err := c.getJSON(ctx, batchPath, q, "batch_check", &out); err != nil {
		return nil, err
	}
	return out.SyncTaskBean.Update, nil
}

// Projects fetches the project list.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.getJSON(ctx, projectsPath, nil, "projects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, op string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, q), nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req, op)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}

// do sends req once. Transport failures become *ConnectionError and
// non-2xx replies become *googleapi.Error.
func (c *Client) do(req *http.Request, op string) (*http.Response, error) {
	logger := logging.WithOperation(c.logger, op)
	logger.Debug("request", slog.String("method", req.Method), slog.String("url", req.URL.Redacted()))

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("request failed", logging.Err(err))
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ConnectionError{Host: c.baseURL.Host, Err: unwrapURLError(err)}
	}
	logger.Debug("response", logging.Status(resp.Status))

	if err := googleapi.CheckResponse(resp); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = q.Encode()
	return u.String()
}

func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
