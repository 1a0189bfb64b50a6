package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subwatch/modbot/automod/engine"
	"github.com/subwatch/modbot/reddit"
)

func evalRule(t *testing.T, fn engine.RuleFunc, item *reddit.Item) *engine.Effects {
	t.Helper()
	eng, _ := engine.EngineTestFixture()
	c := engine.NewItemContext(context.Background(), eng, item)
	require.NoError(t, fn(&c))
	return engine.ExtractEffects(&c)
}

func submission(title, domain, rawurl, selftext string) *reddit.Item {
	return &reddit.Item{
		Kind:      "t3",
		Name:      "t3_abc123",
		ID:        "abc123",
		Author:    "someuser",
		Subreddit: "minecraft",
		Title:     title,
		Domain:    domain,
		URL:       rawurl,
		SelfText:  selftext,
	}
}

func comment(body string) *reddit.Item {
	return &reddit.Item{
		Kind:      "t1",
		Name:      "t1_def456",
		ID:        "def456",
		Author:    "someuser",
		Subreddit: "minecraft",
		LinkID:    "t3_abc123",
		Body:      body,
	}
}

func TestSuggestionRule(t *testing.T) {
	eff := evalRule(t, SuggestionSubmissionRule, submission("[Suggestion] Add dragons", "imgur.com", "http://imgur.com/a", ""))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionRemove, eff.Action)
	assert.Contains(t, eff.ReplyText, "self-post only")

	eff = evalRule(t, SuggestionSubmissionRule, submission("[Suggestion] Add dragons", "self.minecraft", "", ""))
	assert.True(t, eff.Matched)
	assert.Contains(t, eff.ReplyText, "description")

	eff = evalRule(t, SuggestionSubmissionRule, submission("[Suggestion] Add dragons", "self.minecraft", "", "dragons would be cool because..."))
	assert.False(t, eff.Matched)

	eff = evalRule(t, SuggestionSubmissionRule, submission("My castle build", "imgur.com", "http://imgur.com/a", ""))
	assert.False(t, eff.Matched)
}

func TestFixedRule(t *testing.T) {
	eff := evalRule(t, FixedSubmissionRule, submission("[Fixed] the broken fountain", "imgur.com", "http://imgur.com/b", ""))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionRemove, eff.Action)

	eff = evalRule(t, FixedSubmissionRule, submission("I see your castle and raise you a fortress", "imgur.com", "http://imgur.com/b", ""))
	assert.True(t, eff.Matched)

	eff = evalRule(t, FixedSubmissionRule, submission("fixed my redstone clock", "self.minecraft", "", "details"))
	assert.False(t, eff.Matched)
}

func TestInaneTitleRule(t *testing.T) {
	eff := evalRule(t, InaneTitleSubmissionRule, submission("Minecraft logic at its finest", "imgur.com", "http://imgur.com/c", ""))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionRemove, eff.Action)
	assert.Contains(t, eff.ReplyText, "inane")
	assert.Contains(t, eff.ReplyText, "/r/minecraft/submit?")

	eff = evalRule(t, InaneTitleSubmissionRule, submission("Too soon?", "imgur.com", "http://imgur.com/c", ""))
	assert.True(t, eff.Matched)

	eff = evalRule(t, InaneTitleSubmissionRule, submission("A survival base tour", "imgur.com", "http://imgur.com/c", ""))
	assert.False(t, eff.Matched)
}

func TestAllCapsBoundaries(t *testing.T) {
	// exactly ten letters never triggers, whatever the case
	eff := evalRule(t, AllCapsSubmissionRule, submission("ABCDEFGHIJ", "imgur.com", "http://imgur.com/d", ""))
	assert.False(t, eff.Matched)

	// eleven letters, eight uppercase: ratio 0.727
	eff = evalRule(t, AllCapsSubmissionRule, submission("ABCDEFGH zzz", "imgur.com", "http://imgur.com/d", ""))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionRemove, eff.Action)
	assert.Contains(t, eff.ReplyText, "yelling")
	assert.Contains(t, eff.ReplyText, "/r/minecraft/submit?")

	// twenty letters, fourteen uppercase: ratio exactly 0.70 is not over the line
	eff = evalRule(t, AllCapsSubmissionRule, submission("ABCDEFGHIJKLMN abcdef", "imgur.com", "http://imgur.com/d", ""))
	assert.False(t, eff.Matched)
}

func TestChunkErrorIsCaseSensitive(t *testing.T) {
	eff := evalRule(t, ChunkErrorSubmissionRule, submission("found a terrain generation error today", "imgur.com", "http://imgur.com/e", ""))
	assert.True(t, eff.Matched)

	eff = evalRule(t, ChunkErrorSubmissionRule, submission("Terrain Generation Error", "imgur.com", "http://imgur.com/e", ""))
	assert.False(t, eff.Matched)
}

func TestBareLinkSelfPostRule(t *testing.T) {
	eff := evalRule(t, BareLinkSelfPostRule, submission("my stuff", "self.minecraft", "", "http://imgur.com/a www.example.com/b"))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionRemove, eff.Action)

	// one token of prose keeps the post up
	eff = evalRule(t, BareLinkSelfPostRule, submission("my stuff", "self.minecraft", "", "http://imgur.com/a www.example.com/b enjoy"))
	assert.False(t, eff.Matched)

	eff = evalRule(t, BareLinkSelfPostRule, submission("my stuff", "imgur.com", "http://imgur.com/a", ""))
	assert.False(t, eff.Matched)
}

func TestFreeMinecraftRule(t *testing.T) {
	eff := evalRule(t, FreeMinecraftSubmissionRule, submission("get your codes at free-minecraft-codes.me", "free-minecraft-codes.me", "http://free-minecraft-codes.me/", ""))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionSpam, eff.Action)
	assert.True(t, eff.BanAuthor)
	assert.Contains(t, eff.ReplyText, "free minecraft")

	// the official domain matches the pattern shape but no qualifying group
	eff = evalRule(t, FreeMinecraftSubmissionRule, submission("buy it on minecraft.net", "minecraft.net", "http://minecraft.net/", ""))
	assert.False(t, eff.Matched)

	eff = evalRule(t, FreeMinecraftCommentRule, comment("go to minecraft-gift-code-generator.com for free stuff"))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionSpam, eff.Action)
	assert.True(t, eff.BanAuthor)
	assert.Empty(t, eff.ReplyText)
}

func TestAmazonReferralRule(t *testing.T) {
	eff := evalRule(t, AmazonReferralSubmissionRule, submission("great book", "amazon.com", "http://www.amazon.com/gp/product/B003?tag=spam-20", ""))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionSpam, eff.Action)
	require.NotNil(t, eff.AuthorReport)
	assert.Equal(t, ReportSpammersSubreddit, eff.AuthorReport.Subreddit)
	assert.False(t, eff.AuthorReport.SkipAgeCheck)

	// plain amazon link, no affiliate tag
	eff = evalRule(t, AmazonReferralSubmissionRule, submission("great book", "amazon.com", "http://www.amazon.com/gp/product/B003", ""))
	assert.False(t, eff.Matched)

	eff = evalRule(t, AmazonReferralCommentRule, comment("buy it here http://amazon.co.uk/thing?tag=ref-20"))
	assert.True(t, eff.Matched)
}

func TestShortURLRule(t *testing.T) {
	eff := evalRule(t, ShortURLSubmissionRule, submission("cool map", "bit.ly", "http://bit.ly/abc", ""))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionRemove, eff.Action)
	assert.Contains(t, eff.ReplyText, "short urls")

	eff = evalRule(t, ShortURLCommentRule, comment("see http://tinyurl.com/xyz"))
	assert.True(t, eff.Matched)
	assert.Empty(t, eff.ReplyText)

	eff = evalRule(t, ShortURLCommentRule, comment("see http://example.com/xyz"))
	assert.False(t, eff.Matched)
}

func TestMinebookRule(t *testing.T) {
	eff := evalRule(t, MinebookSubmissionRule, submission("new social site", "minebook.me", "http://minebook.me/", ""))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionSpam, eff.Action)

	eff = evalRule(t, MinebookCommentRule, comment("join minebook.me today"))
	assert.True(t, eff.Matched)
}

func TestSpamCampaignRule(t *testing.T) {
	eff := evalRule(t, SpamCampaignSubmissionRule, submission("seeds!", "topminecraftworldseeds.com", "http://topminecraftworldseeds.com/s", ""))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionSpam, eff.Action)
	assert.True(t, eff.BanAuthor)

	eff = evalRule(t, SpamCampaignCommentRule, comment("nothing to see here"))
	assert.False(t, eff.Matched)
}

func TestReditrRule(t *testing.T) {
	eff := evalRule(t, ReditrCommentRule, comment("nice build!\n\n^Sent ^from ^[Reditr](http://reditr.com)"))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionSpam, eff.Action)

	eff = evalRule(t, ReditrCommentRule, comment("nice build!"))
	assert.False(t, eff.Matched)
}

func TestMemeRule(t *testing.T) {
	eff := evalRule(t, MemeSubmissionRule, submission("funny", "quickmeme.com", "http://quickmeme.com/meme/abc", ""))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionSpam, eff.Action)
	assert.Contains(t, eff.ReplyText, "/r/memecraft/submit?")

	// "meme" in the URL but not a known generator: human review only
	eff = evalRule(t, MemeSubmissionRule, submission("funny", "example.com", "http://example.com/my-meme.jpg", ""))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionReport, eff.Action)
	assert.Empty(t, eff.ReplyText)

	// self posts are exempt from the generator-site removal
	selfPost := submission("discussing memes", "self.minecraft", "http://reddit.com/r/minecraft/abc123", "quickmeme.com sure is popular")
	eff = evalRule(t, MemeSubmissionRule, selfPost)
	assert.False(t, eff.Matched)
}

func TestFacebookRule(t *testing.T) {
	eff := evalRule(t, FacebookSubmissionRule, submission("my build", "www.facebook.com", "http://www.facebook.com/photo", ""))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionRemove, eff.Action)
	assert.Contains(t, eff.ReplyText, "re-upload")
}

func TestFileDownloadRule(t *testing.T) {
	eff := evalRule(t, FileDownloadSubmissionRule, submission("my map download", "mediafire.com", "http://mediafire.com/file/abc", ""))
	assert.True(t, eff.Matched)
	// comment only, the submission stays up
	assert.Equal(t, engine.ActionNone, eff.Action)
	assert.NotEmpty(t, eff.ReplyText)
}

func TestBrokenLinkRule(t *testing.T) {
	eff := evalRule(t, BrokenLinkSubmissionRule, submission("my map", "[cool map](http://example.com)", "[cool map](http://example.com)", ""))
	assert.True(t, eff.Matched)
	assert.Contains(t, eff.ReplyText, "markdown")

	eff = evalRule(t, BrokenLinkSubmissionRule, submission("my map", "examplecom", "http://examplecom", ""))
	assert.True(t, eff.Matched)
	assert.Contains(t, eff.ReplyText, "valid url")

	eff = evalRule(t, BrokenLinkSubmissionRule, submission("my map", "example.com", "http://example.com", ""))
	assert.False(t, eff.Matched)
}

func TestBadWordsRule(t *testing.T) {
	rule := BadWordsCommentRule(DefaultReviewWords)

	eff := evalRule(t, rule, comment("what a retard"))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionReport, eff.Action)

	// already reported by a user: leave the report count alone
	reported := comment("what a retard")
	reported.NumReports = 2
	eff = evalRule(t, rule, reported)
	assert.False(t, eff.Matched)

	eff = evalRule(t, rule, comment("nice build"))
	assert.False(t, eff.Matched)
}

func TestBannedSubredditsRule(t *testing.T) {
	rule := BannedSubredditsCommentRule([]string{"awfulplace"})

	eff := evalRule(t, rule, comment("crosspost this to /r/awfulplace"))
	assert.True(t, eff.Matched)
	assert.Equal(t, engine.ActionSpam, eff.Action)

	reported := comment("crosspost this to /r/awfulplace")
	reported.NumReports = 1
	eff = evalRule(t, rule, reported)
	assert.False(t, eff.Matched)

	eff = evalRule(t, rule, comment("crosspost this to /r/minecraftseeds"))
	assert.False(t, eff.Matched)
}

func TestFlairRule(t *testing.T) {
	rule := NewFlairRule()

	eff := evalRule(t, rule.CheckSubmission, submission("My Xbox 360 world tour", "imgur.com", "http://imgur.com/f", ""))
	assert.Equal(t, rule.XboxTemplateID, eff.FlairTemplateID)
	assert.False(t, eff.Matched)

	eff = evalRule(t, rule.CheckSubmission, submission("Building in MCPE", "imgur.com", "http://imgur.com/f", ""))
	assert.Equal(t, rule.PocketTemplateID, eff.FlairTemplateID)

	eff = evalRule(t, rule.CheckSubmission, submission("A nice castle", "imgur.com", "http://imgur.com/f", ""))
	assert.Equal(t, rule.DefaultTemplateID, eff.FlairTemplateID)

	flaired := submission("My Xbox 360 world tour", "imgur.com", "http://imgur.com/f", "")
	flaired.LinkFlairCSSClass = "xbox"
	eff = evalRule(t, rule.CheckSubmission, flaired)
	assert.Empty(t, eff.FlairTemplateID)
}
