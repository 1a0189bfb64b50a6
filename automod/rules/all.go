// Package rules holds the detection+remediation policies for the moderation
// engine. Each rule is self-contained; ordering and first-match-wins
// semantics live in the engine.
package rules

import (
	"github.com/subwatch/modbot/automod/engine"
	"github.com/subwatch/modbot/automod/userstore"
)

// Deps carries the shared services the stateful rules need. Purely textual
// rules take nothing.
type Deps struct {
	Wiki     WikiFetcher
	Imgur    ImgurResolver
	YouTube  VideoInfoResolver
	Profiles ProfileReader
	Videos   VideoAuthorResolver
	Users    userstore.UserStore

	// BlocklistURL is the wiki page listing advertised server domains.
	BlocklistURL string

	// ReviewWords overrides the stock review-word list when non-nil.
	// BannedSubreddits has no stock list; empty disables the rule.
	ReviewWords      []string
	BannedSubreddits []string
}

// DefaultRules assembles the standard filter chain, in priority order.
func DefaultRules(deps Deps) engine.RuleSet {
	reviewWords := deps.ReviewWords
	if reviewWords == nil {
		reviewWords = DefaultReviewWords
	}

	flair := NewFlairRule()
	serverAd := NewServerAdRule(deps.Wiki, deps.Imgur, deps.YouTube, deps.BlocklistURL)
	videoSpam := NewVideoSpamRule(deps.Profiles, deps.Videos, deps.Users)

	return engine.RuleSet{
		Rules: []engine.Rule{
			{
				Name:            "flair",
				CheckSubmission: flair.CheckSubmission,
			},
			{
				Name:            "suggestion",
				CheckSubmission: SuggestionSubmissionRule,
			},
			{
				Name:            "fixed",
				CheckSubmission: FixedSubmissionRule,
			},
			{
				Name:            "server-ad",
				CheckSubmission: serverAd.CheckSubmission,
				CheckComment:    serverAd.CheckComment,
			},
			{
				Name:            "free-minecraft",
				CheckSubmission: FreeMinecraftSubmissionRule,
				CheckComment:    FreeMinecraftCommentRule,
			},
			{
				Name:            "amazon-referral",
				CheckSubmission: AmazonReferralSubmissionRule,
				CheckComment:    AmazonReferralCommentRule,
			},
			{
				Name:            "short-url",
				CheckSubmission: ShortURLSubmissionRule,
				CheckComment:    ShortURLCommentRule,
			},
			{
				Name:            "broken-link",
				CheckSubmission: BrokenLinkSubmissionRule,
			},
			{
				Name:            "minebook",
				CheckSubmission: MinebookSubmissionRule,
				CheckComment:    MinebookCommentRule,
			},
			{
				Name:            "bare-link-self-post",
				CheckSubmission: BareLinkSelfPostRule,
			},
			{
				Name:         "bad-words",
				CheckComment: BadWordsCommentRule(reviewWords),
			},
			{
				Name:            "video-spam",
				CheckSubmission: videoSpam.CheckSubmission,
			},
			{
				Name:         "banned-subreddits",
				CheckComment: BannedSubredditsCommentRule(deps.BannedSubreddits),
			},
			{
				Name:            "meme",
				CheckSubmission: MemeSubmissionRule,
			},
			{
				Name:            "inane-title",
				CheckSubmission: InaneTitleSubmissionRule,
			},
			{
				Name:            "spam-campaign",
				CheckSubmission: SpamCampaignSubmissionRule,
				CheckComment:    SpamCampaignCommentRule,
			},
			{
				Name:            "all-caps",
				CheckSubmission: AllCapsSubmissionRule,
			},
			{
				Name:            "file-download",
				CheckSubmission: FileDownloadSubmissionRule,
			},
			{
				Name:            "chunk-error",
				CheckSubmission: ChunkErrorSubmissionRule,
			},
			{
				Name:            "facebook",
				CheckSubmission: FacebookSubmissionRule,
			},
			{
				Name:         "reditr",
				CheckComment: ReditrCommentRule,
			},
		},
	}
}
