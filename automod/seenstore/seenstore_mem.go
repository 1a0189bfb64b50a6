package seenstore

import (
	"context"
)

type MemSeenStore struct {
	Items   map[string]bool
	Authors map[string]bool
}

var _ SeenStore = MemSeenStore{}

func NewMemSeenStore() MemSeenStore {
	return MemSeenStore{
		Items:   make(map[string]bool),
		Authors: make(map[string]bool),
	}
}

func (s MemSeenStore) MarkItem(ctx context.Context, name string) error {
	s.Items[name] = true
	return nil
}

func (s MemSeenStore) IsItemSeen(ctx context.Context, name string) (bool, error) {
	return s.Items[name], nil
}

func (s MemSeenStore) MarkAuthorBanned(ctx context.Context, author string) error {
	s.Authors[author] = true
	return nil
}

func (s MemSeenStore) IsAuthorBanned(ctx context.Context, author string) (bool, error) {
	return s.Authors[author], nil
}
