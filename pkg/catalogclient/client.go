// Package catalogclient is a read-only client for the saree catalog API.
//
// Successful responses are cached for the lifetime of the Client and never
// refetched until invalidated. Concurrent requests for the same resource
// share one round trip. There are no retries.
package catalogclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	// ListingLimit is the collection size requested for a full listing page
	ListingLimit = 100
	// SimilarLimit caps SimilarProducts
	SimilarLimit = 4

	requestIDHeader = "X-Request-Id"
)

// StatusError is returned for any non-2xx response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
	group      singleflight.Group
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache shares a cache between clients
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New returns a client for the API rooted at baseURL, for example
// "http://localhost:8080/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("catalogclient: invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("catalogclient: base URL %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: http.DefaultClient,
		cache:      NewCache(),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Cache exposes the client's cache for invalidation
func (c *Client) Cache() *Cache {
	return c.cache
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Category(ctx context.Context, slug string) (*Category, error) {
	var out Category
	if err := c.get(ctx, "/categories/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Products(ctx context.Context, search ProductSearch) ([]Product, error) {
	var out []Product
	if err := c.get(ctx, "/products", search.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var out Product
	if err := c.get(ctx, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	var out []Product
	if err := c.get(ctx, "/products/category/"+url.PathEscape(category), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Collection lists a collection; limit <= 0 leaves the server default
func (c *Client) Collection(ctx context.Context, collectionType string, limit int) ([]Product, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": {strconv.Itoa(limit)}}
	}

	var out []Product
	if err := c.get(ctx, "/collections/"+url.PathEscape(collectionType), query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Search(ctx context.Context, q string) ([]Product, error) {
	var out []Product
	if err := c.get(ctx, "/search", url.Values{"q": {q}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListingProducts loads the products behind a listing page slug: the first
// ListingLimit items of a collection, or every product of a category.
func (c *Client) ListingProducts(ctx context.Context, slug string) ([]Product, error) {
	if IsCollection(slug) {
		return c.Collection(ctx, slug, ListingLimit)
	}
	return c.ProductsByCategory(ctx, slug)
}

// SimilarProducts returns up to SimilarLimit other products in p's category
func (c *Client) SimilarProducts(ctx context.Context, p *Product) ([]Product, error) {
	if p.Category == "" {
		return []Product{}, nil
	}

	same, err := c.Products(ctx, ProductSearch{Category: p.Category})
	if err != nil {
		return nil, err
	}

	out := make([]Product, 0, SimilarLimit)
	for _, candidate := range same {
		if candidate.ID == p.ID {
			continue
		}
		out = append(out, candidate)
		if len(out) == SimilarLimit {
			break
		}
	}
	return out, nil
}

func cacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	key := cacheKey(path, query)

	body, ok := c.cache.Get(key)
	if !ok {
		v, err, shared := c.group.Do(key, func() (any, error) {
			body, err := c.fetch(ctx, key)
			if err != nil {
				return nil, err
			}
			c.cache.Set(key, body)
			return body, nil
		})
		if err != nil {
			return err
		}
		if shared {
			c.logger.DebugContext(ctx, "shared in-flight request", slog.String("key", key))
		}
		body = v.([]byte)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("catalogclient: decode %s: %w", key, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+key, nil)
	if err != nil {
		return nil, fmt.Errorf("catalogclient: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	c.logger.DebugContext(ctx, "fetching", slog.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalogclient: GET %s: %w", key, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalogclient: read %s: %w", key, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(body))
		if text == "" {
			text = http.StatusText(resp.StatusCode)
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: text}
	}

	c.logger.DebugContext(ctx, "fetched",
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
	)
	return body, nil
}
