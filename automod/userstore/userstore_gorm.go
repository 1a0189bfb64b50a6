package userstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserStore is the durable implementation, normally backed by a local
// sqlite file. Single writer; every Put is flushed before it returns.
type GormUserStore struct {
	DB *gorm.DB
}

var _ UserStore = (*GormUserStore)(nil)

func NewGormUserStore(db *gorm.DB) (*GormUserStore, error) {
	if err := db.AutoMigrate(&UserRecord{}); err != nil {
		return nil, err
	}
	return &GormUserStore{DB: db}, nil
}

func (s *GormUserStore) Get(ctx context.Context, author string) (*UserRecord, error) {
	var rec UserRecord
	err := s.DB.WithContext(ctx).First(&rec, "author = ?", author).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormUserStore) Put(ctx context.Context, rec *UserRecord) error {
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		UpdateAll: true,
	}).Create(rec).Error
}
