package seenstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProcessedItem struct {
	Name string `gorm:"primaryKey"`
}

type BannedAuthor struct {
	Author string `gorm:"primaryKey"`
}

type GormSeenStore struct {
	DB *gorm.DB
}

var _ SeenStore = (*GormSeenStore)(nil)

func NewGormSeenStore(db *gorm.DB) (*GormSeenStore, error) {
	if err := db.AutoMigrate(&ProcessedItem{}, &BannedAuthor{}); err != nil {
		return nil, err
	}
	return &GormSeenStore{DB: db}, nil
}

func (s *GormSeenStore) MarkItem(ctx context.Context, name string) error {
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ProcessedItem{Name: name}).Error
}

func (s *GormSeenStore) IsItemSeen(ctx context.Context, name string) (bool, error) {
	var item ProcessedItem
	err := s.DB.WithContext(ctx).First(&item, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *GormSeenStore) MarkAuthorBanned(ctx context.Context, author string) error {
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&BannedAuthor{Author: author}).Error
}

func (s *GormSeenStore) IsAuthorBanned(ctx context.Context, author string) (bool, error) {
	var rec BannedAuthor
	err := s.DB.WithContext(ctx).First(&rec, "author = ?", author).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
