package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Radeon2211/eshopping-api-sub000/models"
)

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *GormUserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return s.first(ctx, "username = ?", username)
}

func (s *GormUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *GormUserStore) first(ctx context.Context, cond string, arg string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, cond, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *GormUserStore) CreateUser(ctx context.Context, u *models.User) error {
	err := s.db.WithContext(ctx).Create(u).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *GormUserStore) UpdateUser(ctx context.Context, id string, updates map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormUserStore) ActivateByToken(ctx context.Context, token string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "activation_token = ?", token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		user.Status = models.UserStatusActive
		user.ActivationToken = ""
		return tx.Model(&user).Updates(map[string]interface{}{
			"status":           models.UserStatusActive,
			"activation_token": "",
		}).Error
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// DeleteUser removes the account and its cart and products (cascade);
// orders survive with seller/buyer set to null by the foreign keys.
func (s *GormUserStore) DeleteUser(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "23505")
}
