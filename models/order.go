package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is created once per distinct seller in a checkout and is never
// mutated afterward. Seller and buyer references are nullable so that
// orders outlive both accounts.
type Order struct {
	ID              string          `gorm:"primaryKey" json:"id"`
	SellerID        *string         `gorm:"index" json:"-"`
	Seller          *User           `gorm:"foreignKey:SellerID;constraint:OnDelete:SET NULL" json:"seller,omitempty"`
	BuyerID         *string         `gorm:"index" json:"-"`
	Buyer           *User           `gorm:"foreignKey:BuyerID;constraint:OnDelete:SET NULL" json:"buyer,omitempty"`
	Products        []OrderProduct  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products"`
	OverallPrice    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"overallPrice"`
	DeliveryAddress DeliveryAddress `gorm:"embedded" json:"deliveryAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OrderProduct is a snapshot frozen at commit time; it is never
// re-synced to the live product.
type OrderProduct struct {
	ID        string          `gorm:"primaryKey" json:"-"`
	OrderID   string          `gorm:"index;not null" json:"-"`
	ProductID string          `gorm:"not null" json:"productId"`
	Name      string          `gorm:"not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Photo     bool            `gorm:"not null" json:"photo"`
}

// DeliveryAddress is the buyer's address copied by value at commit time.
type DeliveryAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Street    string `json:"street"`
	ZipCode   string `json:"zipCode"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}
