package rules

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/subwatch/modbot/automod/engine"
	"github.com/subwatch/modbot/automod/helpers"
)

// Rules keyed off the link domain.

var memeSites = []string{
	"memecreator.org", "memegenerator.net", "quickmeme.com", "qkme.me",
	"mememaker.net", "knowyourmeme.com", "weknowmemes.com", "elol.com",
	"memecdn.com", "livememe.com",
}

var _ engine.RuleFunc = MemeSubmissionRule

// MemeSubmissionRule spams known meme generators and redirects the poster,
// and flags anything else with "meme" in the URL for human review.
func MemeSubmissionRule(c *engine.ItemContext) error {
	it := c.Item
	selfDomain := it.Domain == "self."+it.Subreddit
	for _, site := range memeSites {
		if !selfDomain && strings.Contains(it.Domain, site) {
			c.Note("found meme submission")
			params := url.Values{}
			params.Set("title", helpers.TitleCase(it.Title))
			params.Set("url", it.URL)
			params.Set("resubmit", "True")
			resubmit := fmt.Sprintf("/r/memecraft/submit?%s", params.Encode())
			c.MarkSpam()
			c.ReplyWith(removalComment(it.Subreddit, "meme submissions are not allowed", c.Permalink()) +
				resubmitSuffix(resubmit))
			return nil
		}
	}
	if strings.Contains(it.URL, "meme") {
		c.Note("found suspected meme submission")
		c.ReportForReview()
	}
	return nil
}

var facebookRegex = regexp.MustCompile(`facebook|fbcdn|picsimgesite`)

var _ engine.RuleFunc = FacebookSubmissionRule

func FacebookSubmissionRule(c *engine.ItemContext) error {
	it := c.Item
	if !facebookRegex.MatchString(it.Domain) {
		return nil
	}
	c.Note("found facebook submission")
	c.Remove()
	c.ReplyWith(
		"Hey there! I removed your post since it linked to a facebook page, which can " +
			"be traced back to a user profile. You should re-upload the picture somewhere " +
			"else like [imgur](http://imgur.com) or [minus](http://minus.com) and resubmit.")
	return nil
}

var fileDownloadRegex = regexp.MustCompile(
	`(?i)filestube|4shared|mediafire|rapidshare|box\.net|hotfile|zshare|uploading\.com|` +
		`depositfiles|fileserve|zippyshare|esnips|filefactory|uploaded\.to|2shared|` +
		`fileswap|filehosting|assets\.minecraft\.net|\.jar$|\.exe$|\.zip$|\.tar\.gz$|` +
		`\.tar\.bz2$|dl\.dropbox\.com`)

var _ engine.RuleFunc = FileDownloadSubmissionRule

// File lockers get a warning comment but the submission stays up.
func FileDownloadSubmissionRule(c *engine.ItemContext) error {
	it := c.Item
	if !fileDownloadRegex.MatchString(it.URL) {
		return nil
	}
	c.Note("found file download submission")
	c.ReplyWith(
		"Hey, you seem to be linking directly to a file download site.  That's generally " +
			"considered rude, so you might want to consider resubmitting with a screenshot " +
			"and linking to the download in the comments.  Thanks!")
	return nil
}

var _ engine.RuleFunc = BrokenLinkSubmissionRule

// BrokenLinkSubmissionRule catches submissions whose URL never parsed: a
// markdown-formatted "domain" or one with no dot in it.
func BrokenLinkSubmissionRule(c *engine.ItemContext) error {
	it := c.Item
	if strings.HasPrefix(it.Domain, "[") {
		c.Note("found submission with formatting in the url")
		c.Remove()
		c.ReplyWith(
			"You've seemed to try to use markdown or other markup in the url field when you " +
				"made this submission. Markdown formatting is only for self text and commenting; " +
				"other formatting code is invalid on reddit. When you make a link submission, " +
				"please only enter the bare link in the url field.\n\nFeel free to try submitting again.")
		return nil
	}
	if !strings.Contains(it.Domain, ".") {
		c.Note("found submission with invalid url")
		c.Remove()
		c.ReplyWith(
			"The submission you've made does not have a valid url in it.  Please try " +
				"resubmitting and pay special attention to what you're typing/pasting in the url field.")
	}
	return nil
}
