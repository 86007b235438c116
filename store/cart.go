package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/Radeon2211/eshopping-api-sub000/models"
)

type GormCartStore struct {
	db *gorm.DB
}

func NewGormCartStore(db *gorm.DB) *GormCartStore {
	return &GormCartStore{db: db}
}

func (s *GormCartStore) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormCartStore) ReplaceCart(ctx context.Context, userID string, items []models.CartItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].UserID = userID
			items[i].Position = i
		}
		return tx.Create(&items).Error
	})
}

func (s *GormCartStore) ClearCart(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
