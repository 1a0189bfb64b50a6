package rules

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/subwatch/modbot/automod/engine"
	"github.com/subwatch/modbot/automod/helpers"
)

// Rules keyed entirely off the submission title.

var suggestionRegex = regexp.MustCompile(
	`(?i)((?:\[|<|\(|{|\*|\|)?sug*estion(?:\s|s?\]|s?>|s?\)|:|}|\*|\|)|(?:^|\[|<|\(|{|\*|\|)ideas?(?:\]|>|\)|:|}|\*|\|))`)

var _ engine.RuleFunc = SuggestionSubmissionRule

// SuggestionSubmissionRule enforces that [Suggestion]/[Idea] posts are
// self-posts with a description.
func SuggestionSubmissionRule(c *engine.ItemContext) error {
	it := c.Item
	if !suggestionRegex.MatchString(it.Title) {
		return nil
	}
	if it.Domain != "self."+it.Subreddit {
		c.Note("found [Suggestion] submission that is not a self post")
		c.Remove()
		c.ReplyWith(removalComment(it.Subreddit, "suggestions must be self-post only", c.Permalink()))
	} else if it.SelfText == "" {
		c.Note("found [Suggestion] submission that has no self text")
		c.Remove()
		c.ReplyWith(removalComment(it.Subreddit,
			"suggestion posts must have a description along with them, which is something you cannot convey with only a title",
			c.Permalink()))
	}
	return nil
}

var fixedRegex = regexp.MustCompile(
	`(?i)[\[|<\({\*]fixed[\]|>\):}\*]|i(?:'?ll)? see you'?re?,? .*? and raise you`)

var _ engine.RuleFunc = FixedSubmissionRule

func FixedSubmissionRule(c *engine.ItemContext) error {
	it := c.Item
	if !fixedRegex.MatchString(it.Title) {
		return nil
	}
	c.Note("found [Fixed] submission")
	c.Remove()
	c.ReplyWith(removalComment(it.Subreddit, "[Fixed] submissions are not allowed", c.Permalink()))
	return nil
}

var inaneTitleRegex = regexp.MustCompile(
	`(?i)(?:you(?:'?re|r| are)|ur) drunk|minecraft logic|seems legit|` +
		`what does (?:/?r/minecraft|reddit) think|yo,? d(?:o|aw)g|` +
		`^\.*?(?:too )?(?:soon|late)[.!?]*?$|am i the only(?: one)?|you had one job|` +
		`^\S*ception$|when suddenly|first post|am i doin(?:g|')? (?:this|it) ri(?:te|ght)`)

var _ engine.RuleFunc = InaneTitleSubmissionRule

func InaneTitleSubmissionRule(c *engine.ItemContext) error {
	it := c.Item
	matches := inaneTitleRegex.FindAllString(strings.TrimSpace(it.Title), -1)
	if len(matches) == 0 {
		return nil
	}
	c.Note("found submission with inane title")
	params := url.Values{}
	params.Set("resubmit", "True")
	if it.SelfText != "" {
		params.Set("text", it.SelfText)
	} else {
		params.Set("url", it.URL)
	}
	c.Remove()
	c.ReplyWith(fmt.Sprintf(
		"Hey there, you seem to be using an inane title!  You can probably think of "+
			"something a little more original than that.  [Here's a link to resubmit to help "+
			"you on your way](/r/%s/submit?%s 'click here to submit').  Here's what was in "+
			"your title that has been deemed inane:\n\n* %s",
		it.Subreddit, params.Encode(), strings.Join(matches, "\n\n* ")))
	return nil
}

var _ engine.RuleFunc = AllCapsSubmissionRule

// AllCapsSubmissionRule removes shouty titles: more than ten letters, over
// 70% of them uppercase.
func AllCapsSubmissionRule(c *engine.ItemContext) error {
	it := c.Item
	letters, caps := helpers.CountLetters(it.Title)
	if letters <= 10 {
		return nil
	}
	if float64(caps)/float64(letters) <= 0.7 {
		return nil
	}
	c.Note("found submission with all-caps title")
	params := url.Values{}
	params.Set("title", helpers.TitleCase(it.Title))
	params.Set("resubmit", "True")
	if it.SelfText != "" {
		params.Set("text", it.SelfText)
	} else {
		params.Set("url", it.URL)
	}
	c.Remove()
	c.ReplyWith(fmt.Sprintf(
		"Hey there, you seem to be yelling!  You don't need to be so loud with your "+
			"title, your submission should be the one doing the talking for you. [Here's a "+
			"link to resubmit with a more appropriate title](/r/%s/submit?%s 'click here to submit').",
		it.Subreddit, params.Encode()))
	return nil
}

// deliberately case-sensitive, matching lowercase glitch-report phrasing only
var chunkErrorRegex = regexp.MustCompile(`terrain(?: generation)? (?:error|glitch)`)

var _ engine.RuleFunc = ChunkErrorSubmissionRule

func ChunkErrorSubmissionRule(c *engine.ItemContext) error {
	it := c.Item
	if !chunkErrorRegex.MatchString(it.Title) {
		return nil
	}
	c.Note("found chunk error/glitch submission")
	c.Remove()
	c.ReplyWith(removalComment(it.Subreddit,
		"terrain generation glitches/errors submissions are not allowed", c.Permalink()))
	return nil
}
