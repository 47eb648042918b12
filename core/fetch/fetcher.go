// Package fetch implements the Fetcher interface.
// It performs single-attempt HTTP GET requests against the wiki; there is no
// retry policy and no caching, since at most two pages are fetched per run.
package fetch

import (
	"context"
	"log/slog"

	"github.com/gaurav-prasanna/grimoire/core"
	"github.com/go-resty/resty/v2"
)

// HTTPFetcher fetches wiki pages via HTTP.
type HTTPFetcher struct {
	client *resty.Client
}

// New creates an HTTPFetcher from the pipeline configuration.
func New(cfg core.Config) *HTTPFetcher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml")
	return &HTTPFetcher{client: client}
}

// Fetch retrieves the markup at url. A transport failure surfaces as a
// *core.NetworkError, a non-2xx status as a *core.HTTPError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	slog.DebugContext(ctx, "fetching page", "url", url)

	res, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", &core.NetworkError{URL: url, Err: err}
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return "", &core.HTTPError{Status: res.StatusCode(), URL: url}
	}
	return string(res.Body()), nil
}
