package rules

import (
	"strings"

	"github.com/subwatch/modbot/automod/engine"
	"github.com/subwatch/modbot/automod/helpers"
)

var _ engine.RuleFunc = BareLinkSelfPostRule

// BareLinkSelfPostRule removes self-posts whose body is nothing but URLs.
// Every whitespace-separated token must look like a link; a single word of
// actual prose keeps the post up.
func BareLinkSelfPostRule(c *engine.ItemContext) error {
	it := c.Item
	if it.SelfText == "" {
		return nil
	}
	tokens := strings.Fields(it.SelfText)
	if len(tokens) == 0 {
		return nil
	}
	for _, tok := range tokens {
		if !helpers.IsBareURL(tok) {
			return nil
		}
	}
	c.Note("found self post that only contained links")
	c.Remove()
	c.ReplyWith(
		"This submission has been removed automatically.  You appear to have only included " +
			"links in your self-post with no explanatory text.  Please resubmit or edit " +
			"your post accordingly.")
	return nil
}
