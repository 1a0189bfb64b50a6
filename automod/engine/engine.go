package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/subwatch/modbot/automod/seenstore"
	"github.com/subwatch/modbot/reddit"
)

// ModClient is the slice of the platform API the engine needs to carry out
// remediation. *reddit.Client satisfies it.
type ModClient interface {
	RemoveOrMarkSpam(ctx context.Context, item *reddit.Item, spam bool) error
	ReportItem(ctx context.Context, item *reddit.Item) error
	Comment(ctx context.Context, thing string, text string) (string, error)
	DistinguishComment(ctx context.Context, commentID string) error
	BanUser(ctx context.Context, author, subreddit string) error
	ReportUser(ctx context.Context, author, tag, subreddit string, checkAge bool) error
	SelectFlair(ctx context.Context, item *reddit.Item, templateID string) error
}

// runtime for evaluating the filter chain against items and executing the
// winning rule's remediation.
//
// Single flow of control: one item at a time, rules strictly sequential, no
// internal concurrency.
type Engine struct {
	Logger *slog.Logger
	Rules  RuleSet
	Client ModClient
	Seen   seenstore.SeenStore

	// BotUser and TrustedAuthors are exempt from all rules.
	BotUser        string
	TrustedAuthors map[string]bool
}

// ProcessItem runs one item through the filter chain and dispatches the first
// matching rule's remediation. Already-processed items are skipped, so
// re-feeding the same item is a no-op.
func (eng *Engine) ProcessItem(ctx context.Context, item *reddit.Item) error {
	// similar to an HTTP server, we want to recover any panics from rule execution
	defer func() {
		if r := recover(); r != nil {
			eng.Logger.Error("automod event execution exception", "err", r, "name", item.Name)
		}
	}()
	start := time.Now()
	kind := "submission"
	if item.IsComment() {
		kind = "comment"
	}

	seen, err := eng.Seen.IsItemSeen(ctx, item.Name)
	if err != nil {
		return fmt.Errorf("checking processed set: %w", err)
	}
	if seen {
		return nil
	}
	if err := eng.Seen.MarkItem(ctx, item.Name); err != nil {
		return fmt.Errorf("updating processed set: %w", err)
	}

	logger := eng.Logger.With("name", item.Name, "author", item.Author)
	logger.Debug("processing item", "kind", kind)

	for _, rule := range eng.Rules.Rules {
		// The override gates sit inside the loop on purpose: a moderator
		// action recorded on the item takes effect between rule dispatches,
		// not just once up front.
		if item.BannedBy.ByModerator() {
			break
		}
		if item.Author == eng.BotUser || eng.TrustedAuthors[item.Author] {
			break
		}
		if item.ApprovedBy != "" {
			break
		}

		fn := rule.forKind(item.IsComment())
		if fn == nil {
			continue
		}
		c := NewItemContext(ctx, eng, item)
		if err := eng.invokeRule(&c, rule.Name, fn); err != nil {
			logger.Error("rule execution failed", "rule", rule.Name, "err", err)
			ruleErrorCount.WithLabelValues(rule.Name).Inc()
			continue
		}
		if c.Err != nil {
			logger.Warn("rule helper error", "rule", rule.Name, "err", c.Err)
		}

		// flair assignment happens even without a match, and the chain keeps going
		if c.effects.FlairTemplateID != "" {
			if err := eng.Client.SelectFlair(ctx, item, c.effects.FlairTemplateID); err != nil {
				logger.Error("failed to set flair", "rule", rule.Name, "err", err)
				actionErrorCount.WithLabelValues("flair").Inc()
			}
		}

		if !c.effects.Matched {
			continue
		}
		ruleMatchCount.WithLabelValues(rule.Name).Inc()
		eng.dispatchEffects(&c, rule.Name)
		break
	}

	itemProcessCount.WithLabelValues(kind).Inc()
	itemProcessDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	return nil
}

// invokeRule isolates one rule invocation: a panic inside a rule is converted
// to an error so the rest of the chain (and later items) are unaffected.
func (eng *Engine) invokeRule(c *ItemContext, name string, fn RuleFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rule %s panicked: %v", name, r)
		}
	}()
	return fn(c)
}
