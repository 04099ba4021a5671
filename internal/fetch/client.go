// Package fetch wraps the outbound HTTP client used for every platform
// request. Both delivery platforms sit behind bot-detection CDNs, so plain
// net/http gets challenged; requests go out with a real browser TLS profile
// and a Romanian-localized header set instead.
package fetch

import (
	"context"
	"fmt"
	"io"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/120.0.0.0 Safari/537.36"

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client issues GET requests with a Chrome TLS fingerprint and a bounded
// per-request timeout. Safe for concurrent use.
type Client struct {
	hc tls_client.HttpClient
}

// New creates a Client with the given per-request timeout.
func New(timeout time.Duration) (*Client, error) {
	jar := tls_client.NewCookieJar()
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutMilliseconds(int(timeout.Milliseconds())),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithCookieJar(jar),
	}

	hc, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("fetch: building tls client: %w", err)
	}
	return &Client{hc: hc}, nil
}

// Get fetches url and reads the whole body. A non-2xx status is not an
// error here; callers decide what a 4xx/5xx means for their signal.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header = http.Header{
		"accept":          {"text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8"},
		"accept-language": {"ro-RO,ro;q=0.9,en;q=0.8"},
		"user-agent":      {userAgent},
		http.HeaderOrderKey: {
			"accept",
			"accept-language",
			"user-agent",
		},
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
