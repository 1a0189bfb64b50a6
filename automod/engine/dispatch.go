package engine

// Executes a matched rule's effects against the platform, in a fixed order:
// item remediation, then the mod reply, then the author cross-post report,
// then the ban. Each step's failure is logged and the remaining steps still
// run; nothing here can abort the polling loop.

func (eng *Engine) dispatchEffects(c *ItemContext, ruleName string) {
	ctx := c.Ctx
	item := c.Item
	eff := c.effects
	logger := c.Logger.With("rule", ruleName)

	if eff.AuditNote != "" {
		logger.Info(eff.AuditNote, "link", item.Permalink())
	}

	switch eff.Action {
	case ActionRemove, ActionSpam:
		if err := eng.Client.RemoveOrMarkSpam(ctx, item, eff.Action == ActionSpam); err != nil {
			logger.Error("failed to remove item", "err", err)
			actionErrorCount.WithLabelValues(string(eff.Action)).Inc()
		} else {
			actionCount.WithLabelValues(string(eff.Action)).Inc()
		}
	case ActionReport:
		if err := eng.Client.ReportItem(ctx, item); err != nil {
			logger.Error("failed to report item", "err", err)
			actionErrorCount.WithLabelValues("report").Inc()
		} else {
			actionCount.WithLabelValues("report").Inc()
		}
	}

	if eff.ReplyText != "" {
		commentID, err := eng.Client.Comment(ctx, item.Name, eff.ReplyText)
		if err != nil {
			logger.Error("failed to post reply", "err", err)
			actionErrorCount.WithLabelValues("comment").Inc()
		} else {
			actionCount.WithLabelValues("comment").Inc()
			if err := eng.Client.DistinguishComment(ctx, commentID); err != nil {
				logger.Error("failed to distinguish reply", "comment", commentID, "err", err)
				actionErrorCount.WithLabelValues("distinguish").Inc()
			}
		}
	}

	if eff.AuthorReport != nil {
		ar := eff.AuthorReport
		if err := eng.Client.ReportUser(ctx, item.Author, ar.Tag, ar.Subreddit, !ar.SkipAgeCheck); err != nil {
			logger.Error("failed to report author", "err", err)
			actionErrorCount.WithLabelValues("report-author").Inc()
		} else {
			actionCount.WithLabelValues("report-author").Inc()
		}
	}

	if eff.BanAuthor {
		banned, err := eng.Seen.IsAuthorBanned(ctx, item.Author)
		if err != nil {
			logger.Error("failed to check banned set", "err", err)
			return
		}
		if banned {
			return
		}
		logger.Info("banning author", "link", "http://reddit.com/u/"+item.Author)
		if err := eng.Client.BanUser(ctx, item.Author, item.Subreddit); err != nil {
			logger.Error("failed to ban author", "err", err)
			actionErrorCount.WithLabelValues("ban").Inc()
			return
		}
		actionCount.WithLabelValues("ban").Inc()
		if err := eng.Seen.MarkAuthorBanned(ctx, item.Author); err != nil {
			logger.Error("failed to record ban", "err", err)
		}
	}
}
