package engine

// RuleFunc evaluates one item against one detection policy, recording
// remediation directives on the context when it matches. Returning an error
// (or panicking) is treated as "no match" for this rule only; the chain
// moves on.
type RuleFunc = func(c *ItemContext) error

// Rule is one independent detection+remediation policy. A rule implements
// either or both of the submission and comment evaluators; a nil evaluator
// means the rule is skipped for that item kind.
type Rule struct {
	Name            string
	CheckSubmission RuleFunc
	CheckComment    RuleFunc
}

// RuleSet holds the filter chain in priority order. Order matters: the first
// matching rule wins and later rules never see the item.
type RuleSet struct {
	Rules []Rule
}

// forKind returns the rule's evaluator for the item kind, or nil.
func (r *Rule) forKind(comment bool) RuleFunc {
	if comment {
		return r.CheckComment
	}
	return r.CheckSubmission
}
