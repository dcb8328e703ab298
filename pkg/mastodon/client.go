// Package mastodon is a minimal read-only client for the two Mastodon REST
// endpoints the word cloud needs: account search and account statuses.
package mastodon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dtnitsch/mastodon-wordcloud/internal/common"
	"github.com/dtnitsch/mastodon-wordcloud/models"
	"golang.org/x/time/rate"
)

// PageSize is the number of statuses the server returns per page by default.
const PageSize = 20

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	defaultUserAgent    = "toot-cloud/1.0"
)

type Client struct {
	base      *url.URL
	token     string
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client. The default has no timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit paces requests to at most r per second. It only spaces
// requests out; failed requests are never retried.
func WithRateLimit(r rate.Limit) Option {
	return func(c *Client) {
		if r > 0 {
			c.limiter = rate.NewLimiter(r, 1)
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func NewClient(serverURL, accessToken string, opts ...Option) (*Client, error) {
	base, err := common.NormalizeServerURL(serverURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		base:      base,
		token:     accessToken,
		http:      &http.Client{},
		limiter:   rate.NewLimiter(rate.Inf, 1),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// LookupAccount resolves an account name to its ID and status count via
// GET /api/v2/search?q=<name>&resolve=true&limit=1.
func (c *Client) LookupAccount(ctx context.Context, name string) (models.Account, error) {
	q := url.Values{}
	q.Set("q", name)
	q.Set("resolve", "true")
	q.Set("limit", "1")

	var result models.SearchResult
	if err := c.getJSON(ctx, "api/v2/search", q, &result); err != nil {
		return models.Account{}, fmt.Errorf("account search for %s: %w", name, err)
	}
	if len(result.Accounts) == 0 {
		return models.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, name)
	}
	return result.Accounts[0], nil
}

// ListStatuses returns one page of an account's statuses, newest first,
// limited to ids <= the cursor bound when it has one.
func (c *Client) ListStatuses(ctx context.Context, accountID string, cursor models.Cursor) ([]models.Status, error) {
	q := url.Values{}
	if maxID, ok := cursor.MaxID(); ok {
		q.Set("max_id", strconv.FormatInt(maxID, 10))
	}

	var statuses []models.Status
	path := "api/v1/accounts/" + accountID + "/statuses"
	if err := c.getJSON(ctx, path, q, &statuses); err != nil {
		return nil, fmt.Errorf("statuses for account %s: %w", accountID, err)
	}
	return statuses, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.base.ResolveReference(&url.URL{Path: path})
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, u.Path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
