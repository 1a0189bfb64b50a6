package rules

import (
	"github.com/subwatch/modbot/automod/engine"
	"github.com/subwatch/modbot/automod/helpers"
)

// DefaultReviewWords is the stock slur/abuse list for the comment-review
// rule. Substring matching is deliberate: it catches embedded variants at
// the cost of the occasional clbuttic false positive, which is acceptable
// because matches are only reported, never removed.
var DefaultReviewWords = []string{
	"gay", "fag", "fgt", "cunt", "nigger", "nigga", "retard", "autis",
}

// BadWordsCommentRule reports comments containing any listed word for human
// review. Comments that already carry a user report are left alone so the
// report count is not reset.
func BadWordsCommentRule(words []string) engine.RuleFunc {
	return func(c *engine.ItemContext) error {
		it := c.Item
		if it.NumReports > 0 {
			return nil
		}
		if word := helpers.ContainsAnyWord(it.Body, words); word != "" {
			c.Note("found comment for review")
			c.ReportForReview()
		}
		return nil
	}
}

// BannedSubredditsCommentRule spams comments that mention or link any listed
// community. The list is deployment configuration; an empty list disables the
// rule. Already-reported comments are skipped, same as the review rule.
func BannedSubredditsCommentRule(subs []string) engine.RuleFunc {
	return func(c *engine.ItemContext) error {
		it := c.Item
		if it.NumReports > 0 {
			return nil
		}
		if sub := helpers.ContainsAnyWord(it.Body, subs); sub != "" {
			c.Note("found comment mentioning banned subreddit")
			c.MarkSpam()
		}
		return nil
	}
}
