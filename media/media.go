// Package media resolves titles and descriptions for content hosted off-site
// (imgur albums, youtube videos), so text rules can scan embedded metadata.
// Lookups are cached for 48 hours and every failure mode — malformed URL,
// upstream error, unrecognized payload — resolves to "absent", never to an
// error the filter chain would have to handle.
package media

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/subwatch/modbot/automod/cachestore"
	"github.com/subwatch/modbot/automod/helpers"
)

const userAgent = "modbot/2 (subreddit janitor)"

// CacheTTL is how long resolver payloads stay fresh.
const CacheTTL = 48 * time.Hour

// Meta is the embedded text of one piece of hosted media.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func newHTTPClient() *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.Logger = nil
	rc.HTTPClient = &http.Client{Timeout: 20 * time.Second}
	return rc
}

// fetchCached returns the response body for the URL, going to the network
// only on a cache miss. A non-200 response or transport error returns "".
func fetchCached(ctx context.Context, client *retryablehttp.Client, cache cachestore.CacheStore, name, rawurl string, headers map[string]string) string {
	key := helpers.HashOfString(rawurl)
	if cache != nil {
		if cached, err := cache.Get(ctx, name, key); err == nil && cached != "" {
			return cached
		}
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", rawurl, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ""
	}
	if !json.Valid(body) {
		return ""
	}
	if cache != nil {
		_ = cache.Set(ctx, name, key, string(body))
	}
	return string(body)
}
