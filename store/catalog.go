package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Radeon2211/eshopping-api-sub000/models"
)

type GormCatalogStore struct {
	db *gorm.DB
}

func NewGormCatalogStore(db *gorm.DB) *GormCatalogStore {
	return &GormCatalogStore{db: db}
}

func (s *GormCatalogStore) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Preload("Seller").First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *GormCatalogStore) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Product{})

	if text := strings.TrimSpace(f.Query); text != "" {
		q = q.Where("name ILIKE ?", "%"+text+"%")
	}
	if f.Condition != "" {
		q = q.Where("condition = ?", f.Condition)
	}
	if f.SellerID != "" {
		q = q.Where("seller_id = ?", f.SellerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var products []models.Product
	err := q.Preload("Seller").
		Order("created_at DESC").
		Limit(limit).
		Offset(f.Offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *GormCatalogStore) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *GormCatalogStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *GormCatalogStore) DeleteProduct(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Purchase runs the stock decrement as one conditional UPDATE guarded by
// the current quantity, so two concurrent buyers cannot both succeed on
// the last units. Read-modify-write in application code is not safe here.
func (s *GormCatalogStore) Purchase(ctx context.Context, productID string, qty int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(`
			UPDATE products
			SET quantity = quantity - ?,
			    quantity_sold = quantity_sold + ?,
			    buyer_quantity = buyer_quantity + 1,
			    updated_at = NOW()
			WHERE id = ? AND quantity >= ?`,
			qty, qty, productID, qty,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStockConflict
		}

		// Sold out products are removed, not kept at zero stock.
		return tx.Exec(`DELETE FROM products WHERE id = ? AND quantity <= 0`, productID).Error
	})
}
