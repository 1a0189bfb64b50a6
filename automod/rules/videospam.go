package rules

import (
	"context"
	"fmt"
	"time"

	"github.com/subwatch/modbot/automod/engine"
	"github.com/subwatch/modbot/automod/userstore"
	"github.com/subwatch/modbot/media"
	"github.com/subwatch/modbot/reddit"
)

// ProfileReader fetches an author's recent activity.
type ProfileReader interface {
	UserComments(ctx context.Context, author string) ([]reddit.Item, error)
	UserSubmitted(ctx context.Context, author string) ([]reddit.Item, error)
}

// VideoAuthorResolver maps a video URL to the uploading channel's id.
type VideoAuthorResolver interface {
	VideoAuthor(ctx context.Context, rawurl string) string
}

// profileCheckWindow rate-limits profile scoring to once per day per author.
const profileCheckWindow = 24 * time.Hour

const (
	videoPercentThreshold = 0.85
	spammerValueThreshold = 0.85
	minVideoSubmissions   = 3
)

// VideoSpamRule catches accounts that exist to promote their own videos.
// On a video submission, the author's recent profile is scored: if nearly
// all their video submissions come from one channel and they do little on
// the site besides submit and comment on their own posts, they are a
// self-promoter. First detection gets a warning comment; a second detection
// after a warning gets the submission removed, the account banned, and a
// cross-post to the triage subreddit.
type VideoSpamRule struct {
	Profiles ProfileReader
	Videos   VideoAuthorResolver
	Users    userstore.UserStore

	// ReportSubreddit receives confirmed spammers.
	ReportSubreddit string
}

func NewVideoSpamRule(profiles ProfileReader, videos VideoAuthorResolver, users userstore.UserStore) *VideoSpamRule {
	return &VideoSpamRule{
		Profiles:        profiles,
		Videos:          videos,
		Users:           users,
		ReportSubreddit: ReportSpammersSubreddit,
	}
}

func (r *VideoSpamRule) CheckSubmission(c *engine.ItemContext) error {
	it := c.Item
	if !media.IsVideoDomain(it.Domain) {
		return nil
	}
	rec, err := r.Users.Get(c.Ctx, it.Author)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = &userstore.UserRecord{Author: it.Author}
	}
	if rec.CheckedWithin(profileCheckWindow) {
		return nil
	}
	rec.CheckedLast = time.Now().Unix()

	c.Logger.Info("scoring author profile for video spam", "author", it.Author)
	flagged, err := r.scoreProfile(c.Ctx, it.Author)
	if err != nil {
		// shadowbanned and deleted accounts read as fetch errors; score as clean
		c.Logger.Warn("could not fetch profile, probably shadowbanned or deleted",
			"author", it.Author, "err", err)
		flagged = false
	}
	if flagged {
		if rec.Warned {
			rec.Banned = true
			c.Note("confirmed video spammer")
			c.Remove()
			c.BanSubmitter()
			c.ReportSubmitter(r.ReportSubreddit, "[Youtube Spam]", true)
		} else {
			rec.Warned = true
			c.Note("found potential video spammer")
			c.ReplyWith(videoSpamWarning(it.Subreddit, c.Permalink()))
		}
	}
	return r.Users.Put(c.Ctx, rec)
}

// scoreProfile inspects the author's last 100 comments and submissions.
// Submissions are grouped by the video channel they link to; comments on the
// author's own video submissions count against them too.
func (r *VideoSpamRule) scoreProfile(ctx context.Context, author string) (bool, error) {
	comments, err := r.Profiles.UserComments(ctx, author)
	if err != nil {
		return false, err
	}
	submitted, err := r.Profiles.UserSubmitted(ctx, author)
	if err != nil {
		return false, err
	}

	videoCount := make(map[string]int)
	videoSubmissions := make(map[string]bool)
	for _, item := range submitted {
		if !media.IsVideoDomain(item.Domain) {
			continue
		}
		channel := r.Videos.VideoAuthor(ctx, item.URL)
		if channel == "" {
			continue
		}
		videoCount[channel]++
		videoSubmissions[item.Name] = true
	}

	total, top := 0, 0
	for _, n := range videoCount {
		total += n
		if n > top {
			top = n
		}
	}
	if total < minVideoSubmissions {
		return false, nil
	}
	if float64(top)/float64(total) <= videoPercentThreshold {
		return false, nil
	}

	commentsOnSelf := 0
	for _, cm := range comments {
		if videoSubmissions[cm.LinkID] {
			commentsOnSelf++
		}
	}
	spammerValue := float64(total+commentsOnSelf) / float64(len(comments)+len(submitted))
	return spammerValue > spammerValueThreshold, nil
}

func videoSpamWarning(subreddit, link string) string {
	return fmt.Sprintf(
		"It looks like you might be skirting on the line with submitting your videos, "+
			"so consider this a friendly warning/guideline:\n\n"+
			"Reddit has [guidelines as to what constitutes spam](/help/faq#Whatconstitutesspam).  "+
			"To quote the page:\n\n"+
			"* It's not strictly forbidden to submit a link to a site that you own or otherwise "+
			"benefit from in some way, but you should sort of consider yourself on thin ice. "+
			"So please pay careful attention to the rest of these bullet points.\n\n"+
			"* If you spend more time submitting to reddit than reading it, you're almost "+
			"certainly a spammer.\n\n"+
			"* If your contribution to Reddit consists mostly of submitting links to a site(s) "+
			"that you own or otherwise benefit from in some way, and additionally if you do not "+
			"participate in discussion, or reply to people's questions, regardless of how many "+
			"upvotes your submissions get, you are a spammer.\n\n"+
			"* If people historically downvote your links or ones similar to yours, and you "+
			"feel the need to keep submitting them anyway, they're probably spam.\n\n"+
			"* If people historically upvote your links or ones like them -- and we're talking "+
			"about real people here, not sockpuppets or people you asked to go vote for you -- "+
			"congratulations! It's almost certainly not spam. But we're serious about the "+
			"\"not people you asked to go vote for you\" part.\n\n"+
			"* If nobody's submitted a link like yours before, give it a shot. But don't flood "+
			"the new queue; submit one or two times and see what happens.\n\n"+
			"For right now, this is just a friendly message, but here in /r/%s, we take action "+
			"against anyone that fits the above definition.\n\n"+
			"If you feel this was in error, feel free to [message the moderators]"+
			"(/message/compose/?to=/r/%s&subject=Video%%20Spam&message=%s).",
		subreddit, subreddit, link)
}
