package rules

import (
	"fmt"
)

// Standard removal notice, interpolated with the community, the reason, and
// the item's permalink (so the dispute link pre-fills).
func removalComment(subreddit, reason, link string) string {
	return fmt.Sprintf(
		"##This submission has been removed automatically.\n"+
			"According to our [subreddit rules](/r/%s/wiki/rules/) %s.  "+
			"If you feel this was in error, please [message the moderators]"+
			"(/message/compose/?to=/r/%s&subject=Removal%%20Dispute&message=%s).",
		subreddit, reason, subreddit, link)
}

func resubmitSuffix(resubmitLink string) string {
	return fmt.Sprintf(
		"\n\nYou are free to [resubmit to a more appropriate subreddit](%s 'click here to resubmit').",
		resubmitLink)
}
