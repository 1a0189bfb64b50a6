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

const youtubeAPIHost = "http://gdata.youtube.com"

// YouTube resolves video URLs to their title/description, and to the
// uploading channel's id (which is how the video-spam heuristic groups a
// user's submissions by who actually made the videos).
type YouTube struct {
	Host string

	httpClient *retryablehttp.Client
	cache      cachestore.CacheStore
	logger     *slog.Logger
}

func NewYouTube(cache cachestore.CacheStore, logger *slog.Logger) *YouTube {
	if logger == nil {
		logger = slog.Default()
	}
	return &YouTube{
		Host:       youtubeAPIHost,
		httpClient: newHTTPClient(),
		cache:      cache,
		logger:     logger,
	}
}

// VideoDomains are the link domains treated as youtube videos.
var VideoDomains = map[string]bool{
	"youtube.com":   true,
	"m.youtube.com": true,
	"youtu.be":      true,
}

func IsVideoDomain(domain string) bool {
	return VideoDomains[strings.ToLower(domain)]
}

// The usual zoo of video URL shapes: watch?v=, /v/, /embed/, youtu.be short
// links. First non-empty capture group wins.
var videoIDRegex = regexp.MustCompile(`(?i)(?:v|i)=([a-zA-Z0-9_-]+)|(?:v|i)/([^&\s?#"]+)|embed/([^&\s?#"]+)|youtu\.be/([^&\s?#"]+)`)

// ExtractVideoID pulls the video id out of a URL, or returns "".
func ExtractVideoID(rawurl string) string {
	m := videoIDRegex.FindStringSubmatch(rawurl)
	if m == nil {
		return ""
	}
	for _, group := range m[1:] {
		if group != "" {
			id := strings.SplitN(group, "#", 2)[0]
			id = strings.SplitN(id, "?", 2)[0]
			return id
		}
	}
	return ""
}

var channelRegex = regexp.MustCompile(`(?i)\.com/(?:user/|channel/)?(.*?)(?:/|\?|$)`)

func extractChannelName(rawurl string) string {
	m := channelRegex.FindStringSubmatch(rawurl)
	if m == nil {
		return ""
	}
	return m[1]
}

type ytText struct {
	Value string `json:"$t"`
}

type ytEntry struct {
	Title      ytText `json:"title"`
	MediaGroup *struct {
		Description ytText `json:"media$description"`
	} `json:"media$group"`
	Author []struct {
		UserID ytText `json:"yt$userId"`
	} `json:"author"`
}

type ytEnvelope struct {
	Entry  *ytEntry        `json:"entry"`
	Errors json.RawMessage `json:"errors"`
}

func (y *YouTube) request(ctx context.Context, rawurl string) *ytEntry {
	body := fetchCached(ctx, y.httpClient, y.cache, "youtube", rawurl, nil)
	if body == "" {
		return nil
	}
	var env ytEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return nil
	}
	if len(env.Errors) > 0 {
		return nil
	}
	return env.Entry
}

// entryFor resolves either the video entry or, for channel URLs without a
// video id, the channel profile entry.
func (y *YouTube) entryFor(ctx context.Context, rawurl string) *ytEntry {
	if id := ExtractVideoID(rawurl); id != "" {
		return y.request(ctx, fmt.Sprintf("%s/feeds/api/videos/%s?v=2&alt=json", y.Host, id))
	}
	if name := extractChannelName(rawurl); name != "" {
		return y.request(ctx, fmt.Sprintf("%s/feeds/api/users/%s?v=2&alt=json", y.Host, name))
	}
	return nil
}

// VideoAuthor returns the uploading channel's id, or "".
func (y *YouTube) VideoAuthor(ctx context.Context, rawurl string) string {
	entry := y.entryFor(ctx, rawurl)
	if entry == nil || len(entry.Author) == 0 {
		return ""
	}
	return entry.Author[0].UserID.Value
}

// VideoInfo returns the video's title and description, or nil.
func (y *YouTube) VideoInfo(ctx context.Context, rawurl string) *Meta {
	entry := y.entryFor(ctx, rawurl)
	if entry == nil || entry.MediaGroup == nil {
		return nil
	}
	return &Meta{
		Title:       entry.Title.Value,
		Description: entry.MediaGroup.Description.Value,
	}
}
