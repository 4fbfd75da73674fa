package provider

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/spoolscan/backend/internal/domain"
)

// ClientConfig holds configuration for the outbound page client
type ClientConfig struct {
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	RequestsPerSec float64
	Burst          int
}

// Client fetches product pages from a barcode search provider. One lookup
// is one GET round trip; retries are the caller's concern.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	debug      bool
}

// NewClient creates a page client for the given provider endpoint
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	perSec := cfg.RequestsPerSec
	if perSec <= 0 {
		perSec = 1 // polite default for scraping public pages
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = 3
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "spoolscan/1.0"
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Limit(perSec), burst),
	}
}

// SetDebug enables request logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// FetchPage issues GET {base}?q={digits} with fixed headers and returns the
// raw body as text. Network failures and non-2xx responses surface as
// ErrFetchFailed; the body is treated as text regardless of content type.
func (c *Client) FetchPage(ctx context.Context, digits string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	reqURL := fmt.Sprintf("%s?q=%s", c.baseURL, url.QueryEscape(digits))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")
	req.Header.Set("Accept-Language", "en")

	if c.debug {
		log.Printf("[PROVIDER] GET %s", reqURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: status %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	return string(body), nil
}
