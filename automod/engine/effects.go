package engine

// RemediationAction is what happens to the item itself when a rule matches.
type RemediationAction string

const (
	// ActionNone leaves the item up (detection-only or reply-only rules).
	ActionNone RemediationAction = ""
	// ActionRemove removes the item without training the spam filter.
	ActionRemove RemediationAction = "remove"
	// ActionSpam removes the item and trains the spam filter.
	ActionSpam RemediationAction = "spam"
	// ActionReport files a report for human review instead of removing.
	ActionReport RemediationAction = "report"
)

// AuthorReport is a cross-post of the offending author to a triage subreddit.
type AuthorReport struct {
	Subreddit string
	Tag       string
	// SkipAgeCheck reports the author regardless of account age. The default
	// is to only report accounts younger than a day.
	SkipAgeCheck bool
}

// Effects is the mutable container for everything one rule invocation wants
// done. Rules record directives through the context; the engine dispatches
// the whole set after the rule returns, in a fixed order. Any remediation
// directive marks the rule as matched and stops the chain; flair assignment
// alone does not.
type Effects struct {
	Matched bool

	Action       RemediationAction
	ReplyText    string
	BanAuthor    bool
	AuthorReport *AuthorReport

	// FlairTemplateID is applied even without a match.
	FlairTemplateID string

	// AuditNote is a free-text line for the action log.
	AuditNote string
}

func (e *Effects) Remove() {
	e.Matched = true
	e.Action = ActionRemove
}

func (e *Effects) MarkSpam() {
	e.Matched = true
	e.Action = ActionSpam
}

func (e *Effects) ReportForReview() {
	e.Matched = true
	e.Action = ActionReport
}

// ReplyWith posts text as a distinguished moderator comment on the item.
// Reply-only rules (no removal) still count as a match and halt the chain.
func (e *Effects) ReplyWith(text string) {
	if text == "" {
		return
	}
	e.Matched = true
	e.ReplyText = text
}

func (e *Effects) BanSubmitter() {
	e.Matched = true
	e.BanAuthor = true
}

func (e *Effects) ReportSubmitter(subreddit, tag string, skipAgeCheck bool) {
	e.Matched = true
	e.AuthorReport = &AuthorReport{
		Subreddit:    subreddit,
		Tag:          tag,
		SkipAgeCheck: skipAgeCheck,
	}
}

func (e *Effects) SetFlair(templateID string) {
	e.FlairTemplateID = templateID
}

func (e *Effects) Note(text string) {
	e.AuditNote = text
}
