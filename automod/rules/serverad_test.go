package rules

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subwatch/modbot/automod/engine"
	"github.com/subwatch/modbot/media"
)

type fakeWiki struct {
	content string
	err     error
	calls   int
}

func (f *fakeWiki) WikiContent(ctx context.Context, rawurl string) (string, error) {
	f.calls++
	return f.content, f.err
}

type fakeImgur struct {
	metas map[string][]media.Meta
}

func (f *fakeImgur) Resolve(ctx context.Context, rawurl string) []media.Meta {
	return f.metas[rawurl]
}

type fakeYouTube struct {
	infos map[string]*media.Meta
}

func (f *fakeYouTube) VideoInfo(ctx context.Context, rawurl string) *media.Meta {
	return f.infos[rawurl]
}

const testBlocklist = "// maintained by the mods\nexample-server.com\n\ncraftyserver.net"

func TestServerAdBlocklistDomain(t *testing.T) {
	wiki := &fakeWiki{content: testBlocklist}
	rule := NewServerAdRule(wiki, nil, nil, "http://example.com/domains")

	eff := evalRule(t, rule.CheckSubmission, submission("Join Example-Server.com today!", "self.minecraft", "", "we have diamonds"))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionRemove, eff.Action)
	assert.Contains(t, eff.ReplyText, "server advertisements")

	eff = evalRule(t, rule.CheckComment, comment("come play on craftyserver.net"))
	assert.True(t, eff.Matched)
	assert.Empty(t, eff.ReplyText)

	eff = evalRule(t, rule.CheckComment, comment("come play with me"))
	assert.False(t, eff.Matched)
}

func TestServerAdIPDetection(t *testing.T) {
	wiki := &fakeWiki{content: testBlocklist}
	rule := NewServerAdRule(wiki, nil, nil, "http://example.com/domains")

	cases := []struct {
		body string
		hit  bool
	}{
		{"join my server at 203.0.113.7!", true},
		{"server ip: 198.51.100.4", true},
		{"my local test runs on 10.0.0.5", false},
		{"it binds to 127.0.0.1 only", false},
		{"lan play on 192.168.1.1", false},
		{"listening on 0.0.0.0", false},
		{"version 999.1.1.1 is out", false},
	}
	for _, tc := range cases {
		eff := evalRule(t, rule.CheckComment, comment(tc.body))
		assert.Equal(t, tc.hit, eff.Matched, "body: %s", tc.body)
	}
}

func TestServerAdBlocklistRefreshInterval(t *testing.T) {
	wiki := &fakeWiki{content: testBlocklist}
	rule := NewServerAdRule(wiki, nil, nil, "http://example.com/domains")

	for i := 0; i < 5; i++ {
		evalRule(t, rule.CheckComment, comment(fmt.Sprintf("hello %d", i)))
	}
	assert.Equal(t, 1, wiki.calls)

	rule.lastRefresh = time.Now().Add(-BlocklistRefreshInterval - time.Minute)
	evalRule(t, rule.CheckComment, comment("hello again"))
	assert.Equal(t, 2, wiki.calls)
}

func TestServerAdFetchFailureKeepsPreviousList(t *testing.T) {
	wiki := &fakeWiki{content: testBlocklist}
	rule := NewServerAdRule(wiki, nil, nil, "http://example.com/domains")

	eff := evalRule(t, rule.CheckComment, comment("join example-server.com"))
	require.True(t, eff.Matched)

	wiki.err = errors.New("wiki unavailable")
	rule.lastRefresh = time.Time{}
	eff = evalRule(t, rule.CheckComment, comment("join example-server.com"))
	assert.True(t, eff.Matched)
	assert.Equal(t, 2, wiki.calls)
}

func TestServerAdScansImgurMetadata(t *testing.T) {
	wiki := &fakeWiki{content: testBlocklist}
	imgur := &fakeImgur{metas: map[string][]media.Meta{
		"http://imgur.com/serverpic": {
			{Title: "spawn area", Description: "join us at example-server.com"},
		},
	}}
	rule := NewServerAdRule(wiki, imgur, nil, "http://example.com/domains")

	eff := evalRule(t, rule.CheckSubmission, submission("check out our spawn", "imgur.com", "http://imgur.com/serverpic", ""))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionRemove, eff.Action)

	eff = evalRule(t, rule.CheckSubmission, submission("check out my house", "imgur.com", "http://imgur.com/unknown", ""))
	assert.False(t, eff.Matched)
}

func TestServerAdScansYoutubeMetadata(t *testing.T) {
	wiki := &fakeWiki{content: testBlocklist}
	yt := &fakeYouTube{infos: map[string]*media.Meta{
		"http://youtube.com/watch?v=abc": {
			Title:       "server trailer",
			Description: "come play on 203.0.113.9",
		},
	}}
	rule := NewServerAdRule(wiki, nil, yt, "http://example.com/domains")

	eff := evalRule(t, rule.CheckSubmission, submission("new trailer", "youtube.com", "http://youtube.com/watch?v=abc", ""))
	assert.True(t, eff.Matched)
}
