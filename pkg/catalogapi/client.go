package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tentenco/stellantis/internal/catalog"
	"github.com/tentenco/stellantis/internal/dealers"
	"github.com/tentenco/stellantis/internal/stock"
	"github.com/tentenco/stellantis/pkg/enums"
	pkgerrors "github.com/tentenco/stellantis/pkg/errors"
)

const responseBodyReadLimit int64 = 1024

var errBaseURLRequired = errors.New("catalog api base url is required")

// Cache is the slice of the redis client the catalog client reads through.
// Misses surface as errors and fall back to the backend; cache failures never
// fail a fetch.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogModelKey(brand, modelSlug string) string
	CatalogConfigKey(brand, modelSlug string) string
	DealersKey(brand string) string
}

// Client talks to the remote vehicle catalog and dealer stock backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      Cache
	cacheTTL   time.Duration
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithCache enables read-through caching of model, configuration, and dealer
// fetches. Stock is live inventory and is never cached.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds the catalog backend client.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// ModelBySlug fetches the model document for the brand and slug.
func (c *Client) ModelBySlug(ctx context.Context, brand enums.Brand, slug string) (catalog.Model, error) {
	if strings.TrimSpace(slug) == "" {
		return catalog.Model{}, pkgerrors.New(pkgerrors.CodeValidation, "model slug is required")
	}

	var cacheKey string
	if c.cache != nil {
		cacheKey = c.cache.CatalogModelKey(brand.String(), slug)
	}

	var dto modelDTO
	path := fmt.Sprintf("brands/%s/models/%s", url.PathEscape(brand.String()), url.PathEscape(slug))
	if err := c.getJSON(ctx, path, cacheKey, &dto); err != nil {
		return catalog.Model{}, err
	}
	return dto.toDomain(), nil
}

// Configurations fetches the combination list for the model.
func (c *Client) Configurations(ctx context.Context, brand enums.Brand, slug string) ([]catalog.Combination, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "model slug is required")
	}

	var cacheKey string
	if c.cache != nil {
		cacheKey = c.cache.CatalogConfigKey(brand.String(), slug)
	}

	var dtos []combinationDTO
	path := fmt.Sprintf("brands/%s/models/%s/configurations", url.PathEscape(brand.String()), url.PathEscape(slug))
	if err := c.getJSON(ctx, path, cacheKey, &dtos); err != nil {
		return nil, err
	}

	combos := make([]catalog.Combination, 0, len(dtos))
	for _, dto := range dtos {
		combos = append(combos, dto.toDomain())
	}
	return combos, nil
}

// Dealers fetches the brand's dealer list.
func (c *Client) Dealers(ctx context.Context, brand enums.Brand) ([]dealers.Dealer, error) {
	var cacheKey string
	if c.cache != nil {
		cacheKey = c.cache.DealersKey(brand.String())
	}

	var dtos []dealerDTO
	path := fmt.Sprintf("brands/%s/dealers", url.PathEscape(brand.String()))
	if err := c.getJSON(ctx, path, cacheKey, &dtos); err != nil {
		return nil, err
	}

	list := make([]dealers.Dealer, 0, len(dtos))
	for _, dto := range dtos {
		list = append(list, dto.toDomain())
	}
	return list, nil
}

// Stock queries live dealer inventory for the model, optionally narrowed to
// one dealer. Never cached.
func (c *Client) Stock(ctx context.Context, brand enums.Brand, modelsCode, dealerName string) ([]stock.Unit, error) {
	if strings.TrimSpace(modelsCode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "models code is required")
	}

	body := stockRequest{
		Brand:      brand.Code(),
		Model:      modelsCode,
		DealerName: dealerName,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal stock request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL("stocks"), bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build stock request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute stock request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, "stock request failed")
	}

	var dtos []stockUnitDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode stock response")
	}

	units := make([]stock.Unit, 0, len(dtos))
	for _, dto := range dtos {
		units = append(units, dto.toDomain())
	}
	return units, nil
}

// getJSON fetches a GET endpoint into out, reading through the cache when a
// key is given.
func (c *Client) getJSON(ctx context.Context, path, cacheKey string, out any) error {
	if cacheKey != "" {
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			if err := json.Unmarshal([]byte(cached), out); err == nil {
				return nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute catalog request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return pkgerrors.New(pkgerrors.CodeNotFound, "catalog resource not found")
	}
	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp, "catalog request failed")
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read catalog response")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}

	if cacheKey != "" {
		// best effort; a failed write just means the next request refetches
		_ = c.cache.Set(ctx, cacheKey, string(raw), c.cacheTTL)
	}
	return nil
}

func (c *Client) statusError(resp *http.Response, action string) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	return pkgerrors.Wrap(
		pkgerrors.CodeDependency,
		fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
		action,
	)
}

func (c *Client) buildURL(path string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
}
