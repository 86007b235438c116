package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Radeon2211/eshopping-api-sub000/models"
	"github.com/Radeon2211/eshopping-api-sub000/store"
)

const (
	productA = "11111111-1111-1111-1111-111111111111"
	productB = "22222222-2222-2222-2222-222222222222"
	productC = "33333333-3333-3333-3333-333333333333"

	buyerID   = "aaaaaaaa-0000-0000-0000-000000000001"
	sellerOne = "aaaaaaaa-0000-0000-0000-000000000002"
	sellerTwo = "aaaaaaaa-0000-0000-0000-000000000003"
)

type fakeCatalog struct {
	products    map[string]*models.Product
	purchases   []string
	purchaseErr error
}

func newFakeCatalog(products ...models.Product) *fakeCatalog {
	c := &fakeCatalog{products: make(map[string]*models.Product)}
	for i := range products {
		p := products[i]
		c.products[p.ID] = &p
	}
	return c
}

func (c *fakeCatalog) GetProduct(_ context.Context, id string) (models.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return models.Product{}, store.ErrNotFound
	}
	return *p, nil
}

func (c *fakeCatalog) ListProducts(context.Context, store.ProductFilter) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (c *fakeCatalog) CreateProduct(_ context.Context, p *models.Product) error {
	c.products[p.ID] = p
	return nil
}

func (c *fakeCatalog) UpdateProduct(_ context.Context, p *models.Product) error {
	c.products[p.ID] = p
	return nil
}

func (c *fakeCatalog) DeleteProduct(_ context.Context, id string) error {
	delete(c.products, id)
	return nil
}

func (c *fakeCatalog) Purchase(_ context.Context, productID string, qty int) error {
	if c.purchaseErr != nil {
		return c.purchaseErr
	}
	p, ok := c.products[productID]
	if !ok || p.Quantity < qty {
		return store.ErrStockConflict
	}
	p.Quantity -= qty
	p.QuantitySold += qty
	p.BuyerQuantity++
	if p.Quantity <= 0 {
		delete(c.products, productID)
	}
	c.purchases = append(c.purchases, fmt.Sprintf("%s x%d", productID, qty))
	return nil
}

type fakeCarts struct {
	items        map[string][]models.CartItem
	replaceCalls int
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{items: make(map[string][]models.CartItem)}
}

func (c *fakeCarts) GetCart(_ context.Context, userID string) ([]models.CartItem, error) {
	return append([]models.CartItem(nil), c.items[userID]...), nil
}

func (c *fakeCarts) ReplaceCart(_ context.Context, userID string, items []models.CartItem) error {
	c.replaceCalls++
	c.items[userID] = append([]models.CartItem(nil), items...)
	return nil
}

func (c *fakeCarts) ClearCart(_ context.Context, userID string) error {
	c.items[userID] = nil
	return nil
}

type fakeOrders struct {
	created []models.Order
	failAt  int // fail the nth CreateOrder call (1-based), 0 = never
	calls   int
}

var errOrderStore = errors.New("order store down")

func (o *fakeOrders) CreateOrder(_ context.Context, order *models.Order) error {
	o.calls++
	if o.failAt > 0 && o.calls == o.failAt {
		return errOrderStore
	}
	o.created = append(o.created, *order)
	return nil
}

func (o *fakeOrders) GetOrder(context.Context, string) (models.Order, error) {
	return models.Order{}, store.ErrNotFound
}

func (o *fakeOrders) ListByBuyer(context.Context, string) ([]models.Order, error) {
	return nil, nil
}

func (o *fakeOrders) ListBySeller(context.Context, string) ([]models.Order, error) {
	return nil, nil
}

func testProduct(id, sellerID, sellerName string, price string, qty int) models.Product {
	return models.Product{
		ID:        id,
		Name:      "product-" + sellerName,
		Price:     decimal.RequireFromString(price),
		Quantity:  qty,
		Condition: models.ConditionUsed,
		SellerID:  sellerID,
		Seller:    &models.User{ID: sellerID, Username: sellerName},
	}
}
