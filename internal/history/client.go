package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrEmpty is returned when the upstream answers with no fixes for the
	// requested range.
	ErrEmpty = errors.New("history: empty result set")

	// ErrStale is returned when a fetch was superseded by a newer one before
	// its response arrived. The result must be discarded, never applied.
	ErrStale = errors.New("history: response superseded by a newer query")
)

// Query is a time-bounded history request for one vehicle. Start and End are
// local ISO-8601-like strings as produced by the back-office date pickers.
type Query struct {
	Vehicle string
	Start   string
	End     string
}

// Client fetches history sequences from the upstream tracking API. Issuing a
// new fetch cancels and supersedes any fetch still in flight: only the most
// recently initiated query may ever deliver data.
type Client struct {
	base string
	http *http.Client

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewClient returns a history client for the given API base URL. A nil
// httpClient falls back to a client with a sane timeout.
func NewClient(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{base: strings.TrimRight(base, "/"), http: httpClient}
}

// Fetch retrieves, sanitizes and returns the fix sequence for q. It returns
// ErrStale when another Fetch was started before this one resolved, and
// ErrEmpty when the range holds no usable fixes. No retries are attempted.
func (c *Client) Fetch(ctx context.Context, q Query) ([]Point, error) {
	c.mu.Lock()
	c.gen++
	token := c.gen
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	reqURL := fmt.Sprintf("%s/history?%s", c.base, url.Values{
		"vehicle": {q.Vehicle},
		"start":   {NormalizeTimestamp(q.Start)},
		"end":     {NormalizeTimestamp(q.End)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("history: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if c.superseded(token) {
			return nil, ErrStale
		}
		return nil, fmt.Errorf("history: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("history: upstream returned status %d", resp.StatusCode)
	}

	var payload struct {
		Data []Point `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("history: decode response: %w", err)
	}

	if c.superseded(token) {
		logrus.WithFields(logrus.Fields{
			"vehicle": q.Vehicle,
			"points":  len(payload.Data),
		}).Debug("Discarding stale history response.")
		return nil, ErrStale
	}

	points := Sanitize(payload.Data)
	if len(points) == 0 {
		return nil, ErrEmpty
	}
	return points, nil
}

func (c *Client) superseded(token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return token != c.gen
}

// NormalizeTimestamp prepares a picker-supplied timestamp for the upstream
// API: trailing "Z" and fractional seconds are stripped, and a bare
// "YYYY-MM-DDTHH:mm" value is padded with ":00" seconds.
func NormalizeTimestamp(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "Z")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	if len(s) == len("2006-01-02T15:04") {
		s += ":00"
	}
	return s
}
