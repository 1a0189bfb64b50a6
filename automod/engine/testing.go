package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/subwatch/modbot/automod/seenstore"
	"github.com/subwatch/modbot/reddit"
)

// RecordingModClient captures remediation calls instead of hitting the
// platform. Intentionally exported for use in other packages' tests.
type RecordingModClient struct {
	Calls []string

	FailComment bool
}

var _ ModClient = (*RecordingModClient)(nil)

func (m *RecordingModClient) record(format string, args ...any) {
	m.Calls = append(m.Calls, fmt.Sprintf(format, args...))
}

func (m *RecordingModClient) RemoveOrMarkSpam(ctx context.Context, item *reddit.Item, spam bool) error {
	m.record("remove/%s/spam=%v", item.Name, spam)
	return nil
}

func (m *RecordingModClient) ReportItem(ctx context.Context, item *reddit.Item) error {
	m.record("report/%s", item.Name)
	return nil
}

func (m *RecordingModClient) Comment(ctx context.Context, thing string, text string) (string, error) {
	if m.FailComment {
		return "", fmt.Errorf("comment refused")
	}
	m.record("comment/%s", thing)
	return "c_" + thing, nil
}

func (m *RecordingModClient) DistinguishComment(ctx context.Context, commentID string) error {
	m.record("distinguish/%s", commentID)
	return nil
}

func (m *RecordingModClient) BanUser(ctx context.Context, author, subreddit string) error {
	m.record("ban/%s/%s", author, subreddit)
	return nil
}

func (m *RecordingModClient) ReportUser(ctx context.Context, author, tag, subreddit string, checkAge bool) error {
	m.record("report-user/%s/%s/age=%v", author, subreddit, checkAge)
	return nil
}

func (m *RecordingModClient) SelectFlair(ctx context.Context, item *reddit.Item, templateID string) error {
	m.record("flair/%s/%s", item.Name, templateID)
	return nil
}

// EngineTestFixture returns an engine wired to in-memory state and a
// recording client, with no rules; tests append the rules they exercise.
func EngineTestFixture() (*Engine, *RecordingModClient) {
	client := &RecordingModClient{}
	eng := &Engine{
		Logger:         slog.Default(),
		Client:         client,
		Seen:           seenstore.NewMemSeenStore(),
		BotUser:        "modbot",
		TrustedAuthors: map[string]bool{"tweet_poster": true},
	}
	return eng, client
}

// Helper to access the private effects field from a context. Intended for
// test code, *not* for rules.
func ExtractEffects(c *ItemContext) *Effects {
	return c.effects
}
