package userstore

import (
	"context"
)

// MemUserStore keeps records for the process lifetime only. Intended for
// tests and dry runs; production deployments want the gorm store.
type MemUserStore struct {
	Records map[string]UserRecord
}

var _ UserStore = MemUserStore{}

func NewMemUserStore() MemUserStore {
	return MemUserStore{
		Records: make(map[string]UserRecord),
	}
}

func (s MemUserStore) Get(ctx context.Context, author string) (*UserRecord, error) {
	rec, ok := s.Records[author]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s MemUserStore) Put(ctx context.Context, rec *UserRecord) error {
	s.Records[rec.Author] = *rec
	return nil
}
