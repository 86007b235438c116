package models

import "time"

// MaxCartItems caps the number of distinct entries in a user's cart.
const MaxCartItems = 50

// CartItem references its product weakly: the product may be deleted
// while the item is still in the cart, and reconciliation drops the
// dangling entry.
type CartItem struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"-"`
	ProductID string    `gorm:"index;not null" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Position  int       `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"-"`
}
