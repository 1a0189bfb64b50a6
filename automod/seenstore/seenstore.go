// Package seenstore records which items the engine has already evaluated and
// which authors it has already banned, so remediation runs at most once per
// item and bans are never re-issued. The gorm implementation makes both sets
// durable across restarts; the mem implementation scopes them to one process
// run.
package seenstore

import (
	"context"
)

type SeenStore interface {
	MarkItem(ctx context.Context, name string) error
	IsItemSeen(ctx context.Context, name string) (bool, error)
	MarkAuthorBanned(ctx context.Context, author string) error
	IsAuthorBanned(ctx context.Context, author string) (bool, error)
}
