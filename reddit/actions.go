package reddit

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Moderation actions. Each maps to one or two reddit API form posts; callers
// treat failures as log-and-continue, so these return plain errors with
// enough context to be useful in a log line.

// RemoveOrMarkSpam removes the item from the subreddit. With spam set the
// removal also trains the spam filter. Removed submissions are additionally
// hidden from the bot's own front page.
func (c *Client) RemoveOrMarkSpam(ctx context.Context, item *Item, spam bool) error {
	form := url.Values{}
	form.Set("r", item.Subreddit)
	form.Set("id", item.Name)
	if spam {
		form.Set("spam", "true")
	} else {
		form.Set("spam", "false")
	}
	if err := c.Post(ctx, c.Host+"/api/remove", form, nil); err != nil {
		return fmt.Errorf("removing %s: %w", item.Name, err)
	}
	if item.IsSubmission() {
		return c.hide(ctx, item)
	}
	return nil
}

// ReportItem files a report on the item for human moderator review, and hides
// submissions so they are not re-surfaced to the bot account.
func (c *Client) ReportItem(ctx context.Context, item *Item) error {
	form := url.Values{}
	form.Set("id", item.Name)
	if err := c.Post(ctx, c.Host+"/api/report", form, nil); err != nil {
		return fmt.Errorf("reporting %s: %w", item.Name, err)
	}
	if item.IsSubmission() {
		return c.hide(ctx, item)
	}
	return nil
}

func (c *Client) hide(ctx context.Context, item *Item) error {
	form := url.Values{}
	form.Set("id", item.Name)
	return c.Post(ctx, c.Host+"/api/hide", form, nil)
}

type commentResponse struct {
	JSON struct {
		Data struct {
			Things []struct {
				Data struct {
					ID string `json:"id"`
				} `json:"data"`
			} `json:"things"`
		} `json:"data"`
	} `json:"json"`
}

// Comment posts a reply on the item and returns the new comment's id.
func (c *Client) Comment(ctx context.Context, thing string, text string) (string, error) {
	form := url.Values{}
	form.Set("thing_id", thing)
	form.Set("text", text)
	var resp commentResponse
	if err := c.Post(ctx, c.Host+"/api/comment", form, &resp); err != nil {
		return "", fmt.Errorf("commenting on %s: %w", thing, err)
	}
	if len(resp.JSON.Data.Things) == 0 {
		return "", fmt.Errorf("comment on %s: empty response", thing)
	}
	return resp.JSON.Data.Things[0].Data.ID, nil
}

// DistinguishComment marks a comment as moderator-authored.
func (c *Client) DistinguishComment(ctx context.Context, commentID string) error {
	form := url.Values{}
	form.Set("id", commentID)
	if err := c.Post(ctx, c.Host+"/api/distinguish/yes", form, nil); err != nil {
		return fmt.Errorf("distinguishing %s: %w", commentID, err)
	}
	return nil
}

// BanUser bans the author from the subreddit.
func (c *Client) BanUser(ctx context.Context, author, subreddit string) error {
	form := url.Values{}
	form.Set("action", "add")
	form.Set("type", "banned")
	form.Set("name", author)
	form.Set("id", "#banned")
	form.Set("r", subreddit)
	if err := c.Post(ctx, c.Host+"/api/friend", form, nil); err != nil {
		return fmt.Errorf("banning %s from r/%s: %w", author, subreddit, err)
	}
	return nil
}

// ReportUser cross-posts the author's profile as a link submission to the
// given subreddit, tagged for triage. With checkAge set, only accounts
// younger than a day are reported; older accounts are silently skipped.
func (c *Client) ReportUser(ctx context.Context, author, tag, subreddit string, checkAge bool) error {
	if checkAge {
		about, err := c.AboutUser(ctx, author)
		if err != nil {
			return fmt.Errorf("looking up %s: %w", author, err)
		}
		if time.Since(about.Created()) > 24*time.Hour {
			return nil
		}
	}
	c.logger.Info("submitting author report", "author", author, "subreddit", subreddit, "tag", tag)
	form := url.Values{}
	form.Set("title", fmt.Sprintf("%s %s", author, tag))
	form.Set("sr", subreddit)
	form.Set("url", "http://reddit.com/u/"+author)
	form.Set("kind", "link")
	if err := c.Post(ctx, c.Host+"/api/submit", form, nil); err != nil {
		return fmt.Errorf("reporting %s to r/%s: %w", author, subreddit, err)
	}
	return nil
}

// SelectFlair assigns a link flair template to the submission.
func (c *Client) SelectFlair(ctx context.Context, item *Item, templateID string) error {
	form := url.Values{}
	form.Set("link", item.Name)
	form.Set("name", item.Name)
	form.Set("text", "")
	form.Set("flair_template_id", templateID)
	if err := c.Post(ctx, c.Host+"/api/selectflair", form, nil); err != nil {
		return fmt.Errorf("setting flair on %s: %w", item.Name, err)
	}
	return nil
}
