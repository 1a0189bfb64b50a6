// Package userstore persists per-author moderation state for the video
// self-promotion heuristic. Records live for the life of the subreddit, not
// the process: a warning issued last month still counts.
package userstore

import (
	"context"
	"time"
)

// UserRecord tracks one author through the warn-then-ban escalation.
type UserRecord struct {
	Author      string `gorm:"primaryKey" json:"-"`
	CheckedLast int64  `json:"checked_last"`
	Warned      bool   `json:"warned"`
	Banned      bool   `json:"banned"`
}

// CheckedWithin reports whether the author's profile was scored within the
// given window. Used to rate-limit profile fetches.
func (r *UserRecord) CheckedWithin(window time.Duration) bool {
	return time.Since(time.Unix(r.CheckedLast, 0)) <= window
}

type UserStore interface {
	// Get returns the author's record, or nil if the author has never been
	// scored.
	Get(ctx context.Context, author string) (*UserRecord, error)
	Put(ctx context.Context, rec *UserRecord) error
}
