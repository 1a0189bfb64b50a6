package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/subwatch/modbot/reddit"
)

func removeRule(c *ItemContext) error {
	c.Remove()
	return nil
}

func TestShortCircuit(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, client := EngineTestFixture()
	laterInvoked := false
	eng.Rules = RuleSet{Rules: []Rule{
		{Name: "first", CheckSubmission: removeRule},
		{Name: "second", CheckSubmission: func(c *ItemContext) error {
			laterInvoked = true
			c.Remove()
			return nil
		}},
	}}

	item := reddit.Item{Kind: reddit.KindSubmission, Name: "t3_aaa", ID: "aaa", Author: "alice", Subreddit: "testsub", Title: "hello"}
	assert.NoError(eng.ProcessItem(ctx, &item))
	assert.False(laterInvoked)
	assert.Equal([]string{"remove/t3_aaa/spam=false"}, client.Calls)
}

func TestGatePrecedence(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, client := EngineTestFixture()
	eng.Rules = RuleSet{Rules: []Rule{{Name: "always", CheckSubmission: removeRule}}}

	// a human moderator already acted: nothing runs
	item := reddit.Item{Kind: reddit.KindSubmission, Name: "t3_bbb", Author: "alice", Subreddit: "testsub", Title: "x",
		BannedBy: reddit.ModActor{Name: "somemod"}}
	assert.NoError(eng.ProcessItem(ctx, &item))
	assert.Empty(client.Calls)

	// the spam-filter sentinel (banned_by: true) does NOT gate
	item2 := reddit.Item{Kind: reddit.KindSubmission, Name: "t3_ccc", Author: "alice", Subreddit: "testsub", Title: "x",
		BannedBy: reddit.ModActor{Filtered: true}}
	assert.NoError(eng.ProcessItem(ctx, &item2))
	assert.Equal([]string{"remove/t3_ccc/spam=false"}, client.Calls)
}

func TestGateTrustedAndApproved(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, client := EngineTestFixture()
	eng.Rules = RuleSet{Rules: []Rule{{Name: "always", CheckSubmission: removeRule}}}

	own := reddit.Item{Kind: reddit.KindSubmission, Name: "t3_d1", Author: "modbot", Subreddit: "testsub", Title: "x"}
	assert.NoError(eng.ProcessItem(ctx, &own))

	trusted := reddit.Item{Kind: reddit.KindSubmission, Name: "t3_d2", Author: "tweet_poster", Subreddit: "testsub", Title: "x"}
	assert.NoError(eng.ProcessItem(ctx, &trusted))

	approved := reddit.Item{Kind: reddit.KindSubmission, Name: "t3_d3", Author: "alice", Subreddit: "testsub", Title: "x",
		ApprovedBy: "somemod"}
	assert.NoError(eng.ProcessItem(ctx, &approved))

	assert.Empty(client.Calls)
}

func TestIdempotentProcessing(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, client := EngineTestFixture()
	eng.Rules = RuleSet{Rules: []Rule{{Name: "always", CheckSubmission: removeRule}}}

	item := reddit.Item{Kind: reddit.KindSubmission, Name: "t3_eee", Author: "alice", Subreddit: "testsub", Title: "x"}
	assert.NoError(eng.ProcessItem(ctx, &item))
	assert.NoError(eng.ProcessItem(ctx, &item))
	assert.Len(client.Calls, 1)
}

func TestRuleFaultIsolation(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, client := EngineTestFixture()
	eng.Rules = RuleSet{Rules: []Rule{
		{Name: "panics", CheckSubmission: func(c *ItemContext) error {
			panic("boom")
		}},
		{Name: "after", CheckSubmission: removeRule},
	}}

	item := reddit.Item{Kind: reddit.KindSubmission, Name: "t3_fff", Author: "alice", Subreddit: "testsub", Title: "x"}
	assert.NoError(eng.ProcessItem(ctx, &item))
	// chain continued past the faulty rule
	assert.Equal([]string{"remove/t3_fff/spam=false"}, client.Calls)
}

func TestKindDispatch(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, client := EngineTestFixture()
	eng.Rules = RuleSet{Rules: []Rule{
		// submission-only rule must be skipped for comments, not treated as an error
		{Name: "subs-only", CheckSubmission: removeRule},
		{Name: "comments-only", CheckComment: func(c *ItemContext) error {
			c.MarkSpam()
			return nil
		}},
	}}

	comment := reddit.Item{Kind: reddit.KindComment, Name: "t1_ggg", Author: "alice", Subreddit: "testsub",
		Body: "some comment", LinkID: "t3_xyz"}
	assert.NoError(eng.ProcessItem(ctx, &comment))
	assert.Equal([]string{"remove/t1_ggg/spam=true"}, client.Calls)
}

func TestFlairDoesNotMatch(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, client := EngineTestFixture()
	eng.Rules = RuleSet{Rules: []Rule{
		{Name: "flair", CheckSubmission: func(c *ItemContext) error {
			c.SetFlair("template-123")
			return nil
		}},
		{Name: "after", CheckSubmission: removeRule},
	}}

	item := reddit.Item{Kind: reddit.KindSubmission, Name: "t3_hhh", Author: "alice", Subreddit: "testsub", Title: "x"}
	assert.NoError(eng.ProcessItem(ctx, &item))
	// flair applied, then the chain kept going and the next rule matched
	assert.Equal([]string{"flair/t3_hhh/template-123", "remove/t3_hhh/spam=false"}, client.Calls)
}
