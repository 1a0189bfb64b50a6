package media

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/subwatch/modbot/automod/cachestore"
)

const imgurAPIHost = "https://api.imgur.com"

// Imgur resolves an imgur URL (single image, album, or gallery) into the
// titles and descriptions of everything behind it.
type Imgur struct {
	Host     string
	ClientID string

	httpClient *retryablehttp.Client
	cache      cachestore.CacheStore
	logger     *slog.Logger
}

func NewImgur(clientID string, cache cachestore.CacheStore, logger *slog.Logger) *Imgur {
	if logger == nil {
		logger = slog.Default()
	}
	return &Imgur{
		Host:       imgurAPIHost,
		ClientID:   clientID,
		httpClient: newHTTPClient(),
		cache:      cache,
		logger:     logger,
	}
}

var imgurPathRegex = regexp.MustCompile(`(?i)imgur\.com(?:/gallery|/a)?/`)
var imgurIDSplitRegex = regexp.MustCompile(`[,&]`)

// extractIDs turns an imgur URL into the set of imgur ids it references.
func extractIDs(rawurl string) []string {
	u := strings.SplitN(rawurl, "#", 2)[0]
	u = strings.TrimSuffix(u, "/")
	u = strings.TrimSuffix(u, "/all")
	parts := imgurPathRegex.Split(u, 2)
	if len(parts) < 2 || parts[1] == "" {
		return nil
	}
	var ids []string
	seen := make(map[string]bool)
	for _, id := range imgurIDSplitRegex.Split(parts[1], -1) {
		if id != "" && !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	return ids
}

type imgurData struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Images      []imgurData `json:"images"`
	Error       json.RawMessage `json:"error"`
}

type imgurEnvelope struct {
	Data imgurData `json:"data"`
}

func (im *Imgur) request(ctx context.Context, rawurl string) *imgurData {
	headers := map[string]string{"Authorization": "Client-id " + im.ClientID}
	body := fetchCached(ctx, im.httpClient, im.cache, "imgur", rawurl, headers)
	if body == "" {
		return nil
	}
	var env imgurEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return nil
	}
	if len(env.Data.Error) > 0 {
		return nil
	}
	return &env.Data
}

// lookup tries the id as an album first and falls back to an individual
// image.
func (im *Imgur) lookup(ctx context.Context, id string, gallery bool) []Meta {
	prefix := im.Host + "/3"
	if gallery {
		prefix += "/gallery"
	}
	if album := im.request(ctx, fmt.Sprintf("%s/album/%s.json", prefix, id)); album != nil {
		out := []Meta{{Title: album.Title, Description: album.Description}}
		for _, img := range album.Images {
			out = append(out, Meta{Title: img.Title, Description: img.Description})
		}
		return out
	}
	if img := im.request(ctx, fmt.Sprintf("%s/image/%s.json", prefix, id)); img != nil {
		return []Meta{{Title: img.Title, Description: img.Description}}
	}
	return nil
}

// Resolve returns the metadata of every image behind the URL, or nil when
// the URL is unrecognized or the lookup fails.
func (im *Imgur) Resolve(ctx context.Context, rawurl string) []Meta {
	rawurl = strings.ReplaceAll(rawurl, "&amp;", "&")
	ids := extractIDs(rawurl)
	if len(ids) == 0 {
		return nil
	}
	gallery := strings.Contains(strings.ToLower(rawurl), "gallery")
	var out []Meta
	for _, id := range ids {
		out = append(out, im.lookup(ctx, id, gallery)...)
	}
	return out
}
