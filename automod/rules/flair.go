package rules

import (
	"regexp"

	"github.com/subwatch/modbot/automod/engine"
)

var xboxTitleRegex = regexp.MustCompile(`(?i)(?:\W|^)(?:xbox|360|xbla)(?:\W|$)`)
var pocketTitleRegex = regexp.MustCompile(`(?i)(?:\W|^)(?:(?:MC)?PE|Pocket Edition)(?:\W|$)`)

// FlairRule assigns a link-flair template to unflaired submissions based on
// the platform named in the title. Assigning flair is not a remediation:
// the chain keeps running afterwards.
type FlairRule struct {
	XboxTemplateID    string
	PocketTemplateID  string
	DefaultTemplateID string
}

func NewFlairRule() *FlairRule {
	return &FlairRule{
		XboxTemplateID:    "be349730-0660-11e2-942a-12313b088941",
		PocketTemplateID:  "c14d511e-0660-11e2-a2db-12313b0ce1e2",
		DefaultTemplateID: "3a838fd2-065f-11e2-a15c-12313d14a568",
	}
}

func (r *FlairRule) CheckSubmission(c *engine.ItemContext) error {
	it := c.Item
	if it.LinkFlairCSSClass != "" {
		return nil
	}
	switch {
	case xboxTitleRegex.MatchString(it.Title):
		c.SetFlair(r.XboxTemplateID)
	case pocketTitleRegex.MatchString(it.Title):
		c.SetFlair(r.PocketTemplateID)
	default:
		c.SetFlair(r.DefaultTemplateID)
	}
	return nil
}
