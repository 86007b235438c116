package store

import (
	"context"
	"errors"

	"github.com/Radeon2211/eshopping-api-sub000/models"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrStockConflict is returned by Purchase when the conditional
	// decrement matched no row: either the product is gone or its
	// quantity dropped below the purchased amount since reconciliation.
	ErrStockConflict = errors.New("store: stock conflict")
	// ErrDuplicate is returned on unique constraint violations
	// (username, email).
	ErrDuplicate = errors.New("store: duplicate")
)

// ProductFilter narrows ListProducts results.
type ProductFilter struct {
	Query     string
	Condition models.ProductCondition
	SellerID  string
	Limit     int
	Offset    int
}

type CatalogStore interface {
	GetProduct(ctx context.Context, id string) (models.Product, error)
	ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, int64, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error

	// Purchase applies the stock mutation for one order line as a single
	// conditional update: quantity is decremented by qty only while the
	// stored quantity still covers it, quantitySold grows by qty and
	// buyerQuantity by one. A product whose quantity reaches zero is
	// deleted rather than kept as a zero-stock row.
	Purchase(ctx context.Context, productID string, qty int) error
}

type CartStore interface {
	GetCart(ctx context.Context, userID string) ([]models.CartItem, error)
	// ReplaceCart overwrites the user's cart with items, preserving the
	// given order. Replacing with an identical list is a no-op by effect.
	ReplaceCart(ctx context.Context, userID string, items []models.CartItem) error
	ClearCart(ctx context.Context, userID string) error
}

type OrderStore interface {
	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id string) (models.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]models.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]models.Order, error)
}

type UserStore interface {
	GetUser(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, id string, updates map[string]interface{}) error
	ActivateByToken(ctx context.Context, token string) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}
