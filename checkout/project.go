package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Radeon2211/eshopping-api-sub000/models"
)

// ProductView is the public shape of a product: the photo is reduced to
// a presence flag and the seller to a username. Binary photo content is
// only ever served by the dedicated photo endpoint.
type ProductView struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description"`
	Price         decimal.Decimal         `json:"price"`
	Quantity      int                     `json:"quantity"`
	QuantitySold  int                     `json:"quantitySold"`
	BuyerQuantity int                     `json:"buyerQuantity"`
	Condition     models.ProductCondition `json:"condition"`
	Photo         bool                    `json:"photo"`
	Seller        SellerRef               `json:"seller"`
	CreatedAt     time.Time               `json:"createdAt"`
}

func ProductToView(p models.Product) ProductView {
	username := ""
	if p.Seller != nil {
		username = p.Seller.Username
	}
	return ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Quantity:      p.Quantity,
		QuantitySold:  p.QuantitySold,
		BuyerQuantity: p.BuyerQuantity,
		Condition:     p.Condition,
		Photo:         p.HasPhoto(),
		Seller:        SellerRef{Username: username},
		CreatedAt:     p.CreatedAt,
	}
}

func ProductsToView(products []models.Product) []ProductView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = ProductToView(p)
	}
	return views
}

// OrderView resolves the order's parties to username references. A
// deleted account resolves to null, never to an error: orders outlive
// the accounts on both sides.
type OrderView struct {
	ID              string                 `json:"id"`
	Seller          *SellerRef             `json:"seller"`
	Buyer           *SellerRef             `json:"buyer"`
	Products        []models.OrderProduct  `json:"products"`
	OverallPrice    decimal.Decimal        `json:"overallPrice"`
	DeliveryAddress models.DeliveryAddress `json:"deliveryAddress"`
	CreatedAt       time.Time              `json:"createdAt"`
}

func OrderToView(o models.Order) OrderView {
	view := OrderView{
		ID:              o.ID,
		Products:        o.Products,
		OverallPrice:    o.OverallPrice,
		DeliveryAddress: o.DeliveryAddress,
		CreatedAt:       o.CreatedAt,
	}
	if o.Seller != nil {
		view.Seller = &SellerRef{Username: o.Seller.Username}
	}
	if o.Buyer != nil {
		view.Buyer = &SellerRef{Username: o.Buyer.Username}
	}
	return view
}

func OrdersToView(orders []models.Order) []OrderView {
	views := make([]OrderView, len(orders))
	for i, o := range orders {
		views[i] = OrderToView(o)
	}
	return views
}
