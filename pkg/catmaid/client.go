// Package catmaid fetches neuron reconstructions from a CATMAID server.
//
// The client converts server payloads into the in-memory types the rest
// of the library operates on: skeleton.Skeleton, measure.ConnectorDetail
// and spatial.Volume. Responses are cached as raw bytes behind a
// cache.Cache, and transient failures (timeouts, 5xx) are retried with
// backoff. The tree and metric packages never import this one.
package catmaid

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arborlabs/arbor/pkg/cache"
	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/observability"
)

const httpTimeout = 30 * time.Second

// Config identifies one CATMAID instance. Every client call carries an
// explicit Config; there is no package-level default server.
type Config struct {
	// BaseURL is the server base URL, e.g. https://catmaid.example.org.
	BaseURL string
	// Token is the CATMAID API token, sent as an X-Authorization header.
	Token string
	// User and Password enable HTTP basic auth, used by servers that
	// gate the API behind it in addition to the token.
	User     string
	Password string
	// Project is the CATMAID project id all requests are scoped to.
	Project int64
}

// Client provides access to one CATMAID server.
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	cfg    Config
	http   *http.Client
	store  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
}

// NewClient creates a CATMAID client. A nil store disables caching and a
// nil logger falls back to log.Default().
func NewClient(cfg Config, store cache.Cache, ttl time.Duration, logger *log.Logger) *Client {
	if store == nil {
		store = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: httpTimeout},
		store:  store,
		keyer:  cache.NewDefaultKeyer(),
		ttl:    ttl,
		logger: logger,
	}
}

// endpoint builds a project-scoped API URL.
func (c *Client) endpoint(format string, args ...any) string {
	return fmt.Sprintf("%s/%d/%s", strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.Project, fmt.Sprintf(format, args...))
}

// cached returns the payload for key, fetching and storing it on a miss.
// The kind and id only feed the observability hooks.
func (c *Client) cached(ctx context.Context, kind, id, key string, fetch func() ([]byte, error)) ([]byte, error) {
	if data, hit, err := c.store.Get(ctx, key); err == nil && hit {
		c.logger.Debug("cache hit", "key", key)
		observability.Cache().OnCacheHit(ctx, kind)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, kind)

	observability.Fetch().OnFetchStart(ctx, kind, id)
	start := time.Now()
	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var ferr error
		data, ferr = fetch()
		return ferr
	})
	observability.Fetch().OnFetchComplete(ctx, kind, id, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("cache store failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, kind, len(data))
	}
	return data, nil
}

// get performs an authenticated GET and returns the response body.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, rawURL, nil)
}

// postForm performs an authenticated form POST and returns the body.
func (c *Client) postForm(ctx context.Context, rawURL string, form url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "building request for %s", rawURL)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.cfg.Token != "" {
		req.Header.Set("X-Authorization", "Token "+c.cfg.Token)
	}
	if c.cfg.User != "" {
		req.SetBasicAuth(c.cfg.User, c.cfg.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "requesting %s", rawURL))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, rawURL); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(code int, rawURL string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s does not exist on the server", rawURL)
	case code >= 500:
		return cache.Retryable(errors.New(errors.ErrCodeNetwork, "server error %d for %s", code, rawURL))
	default:
		return errors.New(errors.ErrCodeNetwork, "unexpected status %d for %s", code, rawURL)
	}
}
