package reddit

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	KindComment    = "t1"
	KindSubmission = "t3"
)

// Item is a single thing out of a listing: either a link submission or a
// comment. Submissions carry Title/SelfText/URL/Domain; comments carry Body
// and LinkID. The Kind field holds the reddit thing kind (t1/t3) and is set
// by the listing decoder.
type Item struct {
	Kind string `json:"-"`

	Name      string `json:"name"`
	ID        string `json:"id"`
	Author    string `json:"author"`
	Subreddit string `json:"subreddit"`

	Title             string `json:"title"`
	SelfText          string `json:"selftext"`
	URL               string `json:"url"`
	Domain            string `json:"domain"`
	LinkFlairCSSClass string `json:"link_flair_css_class"`

	Body   string `json:"body"`
	LinkID string `json:"link_id"`

	ApprovedBy string   `json:"approved_by"`
	BannedBy   ModActor `json:"banned_by"`
	NumReports int      `json:"num_reports"`
	CreatedUTC float64  `json:"created_utc"`
}

func (it *Item) IsComment() bool {
	if it.Kind != "" {
		return it.Kind == KindComment
	}
	return it.Body != "" || it.LinkID != ""
}

func (it *Item) IsSubmission() bool {
	return !it.IsComment()
}

// Permalink returns the canonical reddit URL for the item.
func (it *Item) Permalink() string {
	if it.IsComment() {
		return fmt.Sprintf("http://reddit.com/r/%s/comments/%s/a/%s",
			it.Subreddit, strings.TrimPrefix(it.LinkID, KindSubmission+"_"), it.ID)
	}
	return fmt.Sprintf("http://reddit.com/r/%s/comments/%s/", it.Subreddit, it.ID)
}

func (it *Item) Created() time.Time {
	return time.Unix(int64(it.CreatedUTC), 0).UTC()
}

// ModActor decodes reddit's three-valued removal attribution: JSON null when
// nothing removed the item, boolean true when the site-wide spam filter did,
// and the moderator's username otherwise.
type ModActor struct {
	// Filtered is set when the removal came from the spam filter rather than
	// a human moderator.
	Filtered bool
	Name     string
}

func (m *ModActor) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch s {
	case "null":
		return nil
	case "true":
		m.Filtered = true
		return nil
	case "false":
		return nil
	}
	return json.Unmarshal(b, &m.Name)
}

func (m ModActor) MarshalJSON() ([]byte, error) {
	if m.Name != "" {
		return json.Marshal(m.Name)
	}
	if m.Filtered {
		return []byte("true"), nil
	}
	return []byte("null"), nil
}

// ByModerator reports whether a human moderator removed the item. The spam
// filter sentinel does not count.
func (m ModActor) ByModerator() bool {
	return m.Name != ""
}

// UserAbout is the subset of /user/{name}/about.json consumed here.
type UserAbout struct {
	Name       string  `json:"name"`
	CreatedUTC float64 `json:"created_utc"`
}

func (u *UserAbout) Created() time.Time {
	return time.Unix(int64(u.CreatedUTC), 0).UTC()
}
