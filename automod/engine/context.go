package engine

import (
	"context"
	"log/slog"

	"github.com/subwatch/modbot/reddit"
)

// ItemContext is the interface exposed to rules: the item under evaluation,
// a pre-populated logger, and directive methods that accumulate on the
// invocation's Effects.
type ItemContext struct {
	// Actual golang "context.Context", for timeouts on rule-initiated lookups
	Ctx context.Context
	// Errors from context helper methods roll up here (nullable)
	Err error
	// slog handle with item-specific fields pre-populated; never nil
	Logger *slog.Logger

	Item *reddit.Item

	engine  *Engine
	effects *Effects
}

func NewItemContext(ctx context.Context, eng *Engine, item *reddit.Item) ItemContext {
	return ItemContext{
		Ctx:     ctx,
		Logger:  eng.Logger.With("name", item.Name, "author", item.Author, "subreddit", item.Subreddit),
		Item:    item,
		engine:  eng,
		effects: &Effects{},
	}
}

// Permalink of the item under evaluation, for reply templates and audit logs.
func (c *ItemContext) Permalink() string {
	return c.Item.Permalink()
}

// update effects (indirect) ======

func (c *ItemContext) Remove()               { c.effects.Remove() }
func (c *ItemContext) MarkSpam()             { c.effects.MarkSpam() }
func (c *ItemContext) ReportForReview()      { c.effects.ReportForReview() }
func (c *ItemContext) ReplyWith(text string) { c.effects.ReplyWith(text) }
func (c *ItemContext) BanSubmitter()         { c.effects.BanSubmitter() }
func (c *ItemContext) SetFlair(id string)    { c.effects.SetFlair(id) }
func (c *ItemContext) Note(text string)      { c.effects.Note(text) }

func (c *ItemContext) ReportSubmitter(subreddit, tag string, skipAgeCheck bool) {
	c.effects.ReportSubmitter(subreddit, tag, skipAgeCheck)
}
