package rules

import (
	"regexp"
	"strings"

	"github.com/subwatch/modbot/automod/engine"
)

// Link-spam campaigns. These rules mark the item as spam (training the site
// filter) rather than plain-removing it, and the worst offenders also ban
// and report the account.

// ReportSpammersSubreddit is where spammer accounts get cross-posted for
// triage.
const ReportSpammersSubreddit = "reportthespammers"

var freeMinecraftRegex = regexp.MustCompile(
	`(?i)(?:(free|cracked)?-?minecraft-?(install|get|(?:gift-?)?codes?(?:-?gen(?:erator)?)?|rewards?|acc(?:t|ount)s?(?:free)?|now|forever)?(?:\.blogspot)?|epicfreeprizes)[\[\(\{\.]*[\]\)\}]*?(?:me|info|com|net|org|ru|co\.uk|us)`)

// freeMinecraftHit requires at least one non-empty capture group: the bare
// alternation would match ordinary strings like "minecraft.net".
func freeMinecraftHit(texts ...string) bool {
	for _, text := range texts {
		for _, m := range freeMinecraftRegex.FindAllStringSubmatch(text, -1) {
			for _, group := range m[1:] {
				if group != "" {
					return true
				}
			}
		}
	}
	return false
}

var _ engine.RuleFunc = FreeMinecraftSubmissionRule
var _ engine.RuleFunc = FreeMinecraftCommentRule

func FreeMinecraftSubmissionRule(c *engine.ItemContext) error {
	it := c.Item
	if !freeMinecraftHit(it.Title, it.SelfText, it.URL) {
		return nil
	}
	c.Note("found free minecraft submission")
	c.MarkSpam()
	c.BanSubmitter()
	c.ReplyWith(removalComment(it.Subreddit, "free minecraft links are not allowed", c.Permalink()))
	return nil
}

func FreeMinecraftCommentRule(c *engine.ItemContext) error {
	if !freeMinecraftHit(c.Item.Body) {
		return nil
	}
	c.Note("found free minecraft comment")
	c.MarkSpam()
	c.BanSubmitter()
	return nil
}

var amazonReferralRegex = regexp.MustCompile(
	`(?i)amazon\.(?:at|fr|com|ca|cn|de|es|it|co\.(?:jp|uk)).*?tag=.*?-20`)

var _ engine.RuleFunc = AmazonReferralSubmissionRule
var _ engine.RuleFunc = AmazonReferralCommentRule

// Amazon links with an affiliate tag. The account gets cross-posted for
// review but is not banned outright.
func AmazonReferralSubmissionRule(c *engine.ItemContext) error {
	it := c.Item
	if !amazonReferralRegex.MatchString(it.Title) &&
		!amazonReferralRegex.MatchString(it.SelfText) &&
		!amazonReferralRegex.MatchString(it.URL) {
		return nil
	}
	c.Note("found amazon referral submission")
	c.MarkSpam()
	c.ReportSubmitter(ReportSpammersSubreddit, "[Amazon Referral Spam]", false)
	return nil
}

func AmazonReferralCommentRule(c *engine.ItemContext) error {
	if !amazonReferralRegex.MatchString(c.Item.Body) {
		return nil
	}
	c.Note("found amazon referral comment")
	c.MarkSpam()
	c.ReportSubmitter(ReportSpammersSubreddit, "[Amazon Referral Spam]", false)
	return nil
}

var shortURLRegex = regexp.MustCompile(
	`(?i)(?:bit\.ly|goo\.gl|adf\.ly|is\.gd|t\.co|tinyurl\.com|j\.mp|tiny\.cc|soc\.li|ultrafiles\.net|linkbucks\.com|lnk\.co|qvvo\.com|ht\.ly|pulse\.me|lmgtfy\.com|\.tk)/`)

var _ engine.RuleFunc = ShortURLSubmissionRule
var _ engine.RuleFunc = ShortURLCommentRule

func ShortURLSubmissionRule(c *engine.ItemContext) error {
	it := c.Item
	if !shortURLRegex.MatchString(it.Title) &&
		!shortURLRegex.MatchString(it.SelfText) &&
		!shortURLRegex.MatchString(it.URL) {
		return nil
	}
	c.Note("found short url submission")
	c.Remove()
	c.ReplyWith(removalComment(it.Subreddit, "short urls are not allowed", c.Permalink()))
	return nil
}

func ShortURLCommentRule(c *engine.ItemContext) error {
	if !shortURLRegex.MatchString(c.Item.Body) {
		return nil
	}
	c.Note("found short url comment")
	c.Remove()
	return nil
}

var minebookRegex = regexp.MustCompile(`(?i)minebook\.me`)

var _ engine.RuleFunc = MinebookSubmissionRule
var _ engine.RuleFunc = MinebookCommentRule

func MinebookSubmissionRule(c *engine.ItemContext) error {
	it := c.Item
	if !minebookRegex.MatchString(it.Title) &&
		!minebookRegex.MatchString(it.SelfText) &&
		!strings.EqualFold(it.Domain, "minebook.me") {
		return nil
	}
	c.Note("found minebook submission")
	c.MarkSpam()
	return nil
}

func MinebookCommentRule(c *engine.ItemContext) error {
	if !minebookRegex.MatchString(c.Item.Body) {
		return nil
	}
	c.Note("found minebook comment")
	c.MarkSpam()
	return nil
}

// One-off spam campaigns spotted by hand; match anywhere, spam and ban.
var spamDomainRegex = regexp.MustCompile(`teslabots\.jimbo\.com|topminecraftworldseeds\.com`)

var _ engine.RuleFunc = SpamCampaignSubmissionRule
var _ engine.RuleFunc = SpamCampaignCommentRule

func SpamCampaignSubmissionRule(c *engine.ItemContext) error {
	it := c.Item
	if !spamDomainRegex.MatchString(it.Title) &&
		!spamDomainRegex.MatchString(it.SelfText) &&
		!spamDomainRegex.MatchString(it.URL) {
		return nil
	}
	c.Note("found spam-campaign submission")
	c.MarkSpam()
	c.BanSubmitter()
	return nil
}

func SpamCampaignCommentRule(c *engine.ItemContext) error {
	if !spamDomainRegex.MatchString(c.Item.Body) {
		return nil
	}
	c.Note("found spam-campaign comment")
	c.MarkSpam()
	c.BanSubmitter()
	return nil
}

const reditrSignature = "^Sent ^from ^[Reditr](http://reditr.com)"

var _ engine.RuleFunc = ReditrCommentRule

// Reditr appends an ad signature to every comment sent through it.
func ReditrCommentRule(c *engine.ItemContext) error {
	if !strings.Contains(c.Item.Body, reditrSignature) {
		return nil
	}
	c.Note("found Reditr advertisement comment")
	c.MarkSpam()
	return nil
}
