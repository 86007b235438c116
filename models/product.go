package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductCondition string

const (
	ConditionNew           ProductCondition = "new"
	ConditionUsed          ProductCondition = "used"
	ConditionNotApplicable ProductCondition = "not_applicable"
)

// ParseCondition maps a request value to a ProductCondition.
func ParseCondition(s string) (ProductCondition, bool) {
	switch ProductCondition(s) {
	case ConditionNew, ConditionUsed, ConditionNotApplicable:
		return ProductCondition(s), true
	default:
		return "", false
	}
}

type Product struct {
	ID            string           `gorm:"primaryKey" json:"id"`
	Name          string           `gorm:"not null" json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity      int              `gorm:"not null" json:"quantity"`
	QuantitySold  int              `gorm:"not null;default:0" json:"quantitySold"`
	BuyerQuantity int              `gorm:"not null;default:0" json:"buyerQuantity"`
	Condition     ProductCondition `gorm:"type:VARCHAR(20);not null" json:"condition"`
	Photo         []byte           `gorm:"type:bytea" json:"-"`
	SellerID      string           `gorm:"index;not null" json:"-"`
	Seller        *User            `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"seller,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func (p *Product) HasPhoto() bool {
	return len(p.Photo) > 0
}
