package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Radeon2211/eshopping-api-sub000/models"
)

type GormOrderStore struct {
	db *gorm.DB
}

func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{db: db}
}

func (s *GormOrderStore) CreateOrder(ctx context.Context, o *models.Order) error {
	return s.db.WithContext(ctx).Create(o).Error
}

func (s *GormOrderStore) GetOrder(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Products").
		Preload("Seller").
		Preload("Buyer").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *GormOrderStore) ListByBuyer(ctx context.Context, buyerID string) ([]models.Order, error) {
	return s.list(ctx, "buyer_id = ?", buyerID)
}

func (s *GormOrderStore) ListBySeller(ctx context.Context, sellerID string) ([]models.Order, error) {
	return s.list(ctx, "seller_id = ?", sellerID)
}

func (s *GormOrderStore) list(ctx context.Context, cond string, arg string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Products").
		Preload("Seller").
		Preload("Buyer").
		Where(cond, arg).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
