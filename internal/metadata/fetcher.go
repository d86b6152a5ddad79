package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/utils"
)

const (
	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 3 * time.Second
	// DefaultCacheTTL is how long a parsed page stays cached.
	DefaultCacheTTL = 24 * time.Hour

	// browserUserAgent avoids the bot walls some sites put in front of unknown clients.
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"

	maxBodyBytes = 2 << 20
)

// ErrInvalidURL is returned for URLs that are not absolute http(s) addresses.
var ErrInvalidURL = errors.New("invalid url")

// timeNow is swapped by tests.
var timeNow = time.Now

// Cache stores parsed metadata by page URL. A miss is (nil, nil).
type Cache interface {
	GetCachedMetadata(ctx context.Context, pageURL string) (*Metadata, error)
	CacheMetadata(ctx context.Context, m *Metadata, ttl time.Duration) error
}

// Options tunes a Fetcher. Zero values select the defaults.
type Options struct {
	Timeout  time.Duration
	CacheTTL time.Duration
	Client   *http.Client
}

// Fetcher downloads pages and extracts their metadata.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	cacheTTL time.Duration
	cache    Cache
	logger   logger.Logger
}

// NewFetcher creates a fetcher. cache may be nil.
func NewFetcher(opts Options, cache Cache, log logger.Logger) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}
	return &Fetcher{
		client:   opts.Client,
		timeout:  opts.Timeout,
		cacheTTL: opts.CacheTTL,
		cache:    cache,
		logger:   log,
	}
}

// ValidateURL checks that rawURL is an absolute http or https URL.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not an absolute http(s) url", ErrInvalidURL, rawURL)
	}
	return nil
}

// Fetch returns metadata for rawURL. Network and parse failures are not
// errors: they yield URL-derived fallback metadata, which is never cached.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Metadata, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}
	rawURL = strings.TrimSpace(rawURL)

	if f.cache != nil {
		cached, err := f.cache.GetCachedMetadata(ctx, rawURL)
		if err != nil {
			f.logger.Debug("metadata cache read failed", logger.String("url", rawURL), logger.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	m, err := f.fetch(ctx, rawURL)
	if err != nil {
		f.logger.Debug("metadata fetch failed, using fallback",
			logger.String("url", rawURL),
			logger.Error(err))
		return fallback(rawURL, timeNow()), nil
	}

	if f.cache != nil {
		if err := f.cache.CacheMetadata(ctx, m, f.cacheTTL); err != nil {
			f.logger.Debug("metadata cache write failed", logger.String("url", rawURL), logger.Error(err))
		}
	}
	return m, nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (*Metadata, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if ct := strings.ToLower(resp.Header.Get("Content-Type")); ct != "" && !strings.Contains(ct, "text/html") {
		return nil, fmt.Errorf("unexpected content type %q", ct)
	}

	return Parse(io.LimitReader(resp.Body, maxBodyBytes), rawURL)
}
