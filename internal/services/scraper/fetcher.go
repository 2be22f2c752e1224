package scraper

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

// ErrPageNotFound signals an HTTP 404. Pagination treats it as the end
// of a category's list pages, unlike other fetch errors.
var ErrPageNotFound = errors.New("page not found")

// Fetcher performs paced HTTP GETs against the source site. TLS
// verification is disabled because the site serves an incomplete
// certificate chain.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    arbor.ILogger
}

// NewFetcher creates a fetcher with the given minimum interval between
// requests.
func NewFetcher(userAgent string, timeout time.Duration, interval time.Duration, logger arbor.ILogger) *Fetcher {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}

	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		limiter:   rate.NewLimiter(limit, 1),
		userAgent: userAgent,
		logger:    logger,
	}
}

// Get fetches a URL and returns the response body as a string.
func (f *Fetcher) Get(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("fetch canceled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	f.logger.Debug().Str("url", url).Msg("Fetching page")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrPageNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body of %s: %w", url, err)
	}

	return string(body), nil
}
