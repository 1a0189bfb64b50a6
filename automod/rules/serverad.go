package rules

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/subwatch/modbot/automod/engine"
	"github.com/subwatch/modbot/media"
)

// WikiFetcher pulls the markdown body of a wiki-hosted document.
type WikiFetcher interface {
	WikiContent(ctx context.Context, rawurl string) (string, error)
}

// ImgurResolver expands an imgur link into the metadata behind it.
type ImgurResolver interface {
	Resolve(ctx context.Context, rawurl string) []media.Meta
}

// VideoInfoResolver fetches a video's title and description.
type VideoInfoResolver interface {
	VideoInfo(ctx context.Context, rawurl string) *media.Meta
}

// BlocklistRefreshInterval is how often the hosted domain blocklist is
// re-fetched.
const BlocklistRefreshInterval = 30 * time.Minute

// ServerAdRule removes game-server advertisements. Detection is two-pronged:
// a hosted blocklist of server domains, and bare IPv4 addresses (public
// ranges only). For imgur and youtube submissions the hosted media's title
// and description are scanned too, since ads routinely live in the image
// caption rather than the reddit post.
type ServerAdRule struct {
	Wiki         WikiFetcher
	Imgur        ImgurResolver
	YouTube      VideoInfoResolver
	BlocklistURL string

	// refreshed lazily from BlocklistURL; a failed refresh keeps the
	// previous list
	lastRefresh time.Time
	domains     []string
}

func NewServerAdRule(wiki WikiFetcher, imgur ImgurResolver, youtube VideoInfoResolver, blocklistURL string) *ServerAdRule {
	return &ServerAdRule{
		Wiki:         wiki,
		Imgur:        imgur,
		YouTube:      youtube,
		BlocklistURL: blocklistURL,
	}
}

var serverIPRegex = regexp.MustCompile(
	`(?i)(?:^|\s|ip(?:=|:)|\*)(\d{1,3}(?:\.\d{1,3}){3})\.?(?:\s|$|:|\*|!|\.|,|;|\?)`)

// publicIPv4 rejects loopback, RFC1918-style private addresses, the zero
// address, and anything with an out-of-range octet.
func publicIPv4(addr string) bool {
	parts := strings.Split(addr, ".")
	if len(parts) != 4 {
		return false
	}
	octets := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n > 255 {
			return false
		}
		octets[i] = n
	}
	switch {
	case octets[0] == 10 && octets[1] == 0 && octets[2] == 0:
		return false
	case octets[0] == 127 && octets[1] == 0 && octets[2] == 0:
		return false
	case octets[0] == 192 && octets[1] == 168:
		return false
	case octets[0] == 0 && octets[1] == 0 && octets[2] == 0 && octets[3] == 0:
		return false
	}
	return true
}

func (r *ServerAdRule) refresh(c *engine.ItemContext) {
	if time.Since(r.lastRefresh) < BlocklistRefreshInterval {
		return
	}
	r.lastRefresh = time.Now()
	content, err := r.Wiki.WikiContent(c.Ctx, r.BlocklistURL)
	if err != nil {
		c.Logger.Warn("failed to refresh server domain blocklist", "url", r.BlocklistURL, "err", err)
		return
	}
	var domains []string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		domains = append(domains, line)
	}
	if len(domains) != len(r.domains) {
		c.Logger.Info("server domain blocklist updated", "before", len(r.domains), "after", len(domains))
	}
	r.domains = domains
}

func (r *ServerAdRule) serverIn(c *engine.ItemContext, text string) bool {
	r.refresh(c)
	if text == "" {
		return false
	}
	lowered := strings.ToLower(text)
	for _, d := range r.domains {
		if strings.Contains(lowered, strings.ToLower(d)) {
			return true
		}
	}
	m := serverIPRegex.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	return publicIPv4(m[1])
}

func (r *ServerAdRule) imgurHit(c *engine.ItemContext, rawurl string) bool {
	if r.Imgur == nil {
		return false
	}
	for _, meta := range r.Imgur.Resolve(c.Ctx, rawurl) {
		if meta.Description != "" && r.serverIn(c, meta.Description) {
			return true
		}
		if meta.Title != "" && r.serverIn(c, meta.Title) {
			return true
		}
	}
	return false
}

func (r *ServerAdRule) youtubeHit(c *engine.ItemContext, rawurl string) bool {
	if r.YouTube == nil {
		return false
	}
	meta := r.YouTube.VideoInfo(c.Ctx, rawurl)
	if meta == nil {
		return false
	}
	return r.serverIn(c, meta.Title) || r.serverIn(c, meta.Description)
}

// trailing URL text, past the "http://" scheme prefix, so the match cannot
// fire on the scheme itself
func urlTail(rawurl string) string {
	if len(rawurl) <= 7 {
		return ""
	}
	return rawurl[7:]
}

func (r *ServerAdRule) CheckSubmission(c *engine.ItemContext) error {
	it := c.Item
	hit := r.serverIn(c, it.Title) || r.serverIn(c, it.SelfText) || r.serverIn(c, urlTail(it.URL))
	if !hit {
		switch {
		case it.Domain == "imgur.com":
			hit = r.imgurHit(c, it.URL)
		case media.IsVideoDomain(it.Domain):
			hit = r.youtubeHit(c, it.URL)
		}
	}
	if !hit {
		return nil
	}
	c.Note("found server advertisement in submission")
	c.Remove()
	c.ReplyWith(removalComment(it.Subreddit, "server advertisements are not allowed", c.Permalink()))
	return nil
}

func (r *ServerAdRule) CheckComment(c *engine.ItemContext) error {
	if !r.serverIn(c, c.Item.Body) {
		return nil
	}
	c.Note("found server advertisement in comment")
	c.Remove()
	return nil
}
