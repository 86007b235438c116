package orderControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Radeon2211/eshopping-api-sub000/middleware"
	"github.com/Radeon2211/eshopping-api-sub000/models"
	"github.com/Radeon2211/eshopping-api-sub000/store"
)

const (
	productA = "11111111-1111-1111-1111-111111111111"
	productB = "22222222-2222-2222-2222-222222222222"

	buyerID   = "aaaaaaaa-0000-0000-0000-000000000001"
	sellerOne = "aaaaaaaa-0000-0000-0000-000000000002"
	sellerTwo = "aaaaaaaa-0000-0000-0000-000000000003"
)

type fakeCatalog struct {
	products map[string]*models.Product
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
func (c *fakeCatalog) CreateProduct(context.Context, *models.Product) error { return nil }
func (c *fakeCatalog) UpdateProduct(context.Context, *models.Product) error { return nil }
func (c *fakeCatalog) DeleteProduct(_ context.Context, id string) error {
	delete(c.products, id)
	return nil
}

func (c *fakeCatalog) Purchase(_ context.Context, productID string, qty int) error {
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
	return nil
}

type fakeCarts struct {
	items map[string][]models.CartItem
}

func (c *fakeCarts) GetCart(_ context.Context, userID string) ([]models.CartItem, error) {
	return append([]models.CartItem(nil), c.items[userID]...), nil
}

func (c *fakeCarts) ReplaceCart(_ context.Context, userID string, items []models.CartItem) error {
	c.items[userID] = append([]models.CartItem(nil), items...)
	return nil
}

func (c *fakeCarts) ClearCart(_ context.Context, userID string) error {
	c.items[userID] = nil
	return nil
}

type fakeOrders struct {
	created []models.Order
}

func (o *fakeOrders) CreateOrder(_ context.Context, order *models.Order) error {
	o.created = append(o.created, *order)
	return nil
}

func (o *fakeOrders) GetOrder(context.Context, string) (models.Order, error) {
	return models.Order{}, store.ErrNotFound
}
func (o *fakeOrders) ListByBuyer(context.Context, string) ([]models.Order, error)  { return nil, nil }
func (o *fakeOrders) ListBySeller(context.Context, string) ([]models.Order, error) { return nil, nil }

func product(id, sellerID, username, price string, qty int) *models.Product {
	return &models.Product{
		ID:       id,
		Name:     "thing-" + username,
		Price:    decimal.RequireFromString(price),
		Quantity: qty,
		SellerID: sellerID,
		Seller:   &models.User{ID: sellerID, Username: username},
	}
}

func newRouter(catalog store.CatalogStore, carts store.CartStore, orders store.OrderStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders", func(c *gin.Context) {
		middleware.SetCurrentUser(c, models.User{
			ID:       buyerID,
			Username: "buyer",
			Status:   models.UserStatusActive,
			Address:  models.Address{City: "Poznan", Country: "Poland"},
		})
	}, CreateOrders(catalog, carts, orders))
	return r
}

func postOrders(t *testing.T, r *gin.Engine, payload gin.H) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrdersSplitsBySeller(t *testing.T) {
	catalog := &fakeCatalog{products: map[string]*models.Product{
		productA: product(productA, sellerOne, "anna", "10.00", 5),
		productB: product(productB, sellerTwo, "bart", "3.00", 5),
	}}
	orders := &fakeOrders{}
	r := newRouter(catalog, &fakeCarts{items: map[string][]models.CartItem{}}, orders)

	w := postOrders(t, r, gin.H{
		"transaction": []gin.H{
			{"productId": productA, "quantity": 2},
			{"productId": productB, "quantity": 1},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	if len(orders.created) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders.created))
	}

	var resp struct {
		Orders []struct {
			OverallPrice decimal.Decimal `json:"overallPrice"`
			Seller       *struct {
				Username string `json:"username"`
			} `json:"seller"`
		} `json:"orders"`
		Cart json.RawMessage `json:"cart"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp.Orders) != 2 {
		t.Fatalf("expected 2 orders in response, got %d", len(resp.Orders))
	}
	if !resp.Orders[0].OverallPrice.Equal(decimal.RequireFromString("20.00")) {
		t.Errorf("first overallPrice = %s", resp.Orders[0].OverallPrice)
	}
	if !resp.Orders[1].OverallPrice.Equal(decimal.RequireFromString("3.00")) {
		t.Errorf("second overallPrice = %s", resp.Orders[1].OverallPrice)
	}
	if resp.Orders[0].Seller == nil || resp.Orders[0].Seller.Username != "anna" {
		t.Errorf("first order seller wrong: %+v", resp.Orders[0].Seller)
	}
	if string(resp.Cart) != "null" {
		t.Errorf("cart = %s, want null for ad-hoc checkout", resp.Cart)
	}
}

func TestCreateOrdersDriftReturnsCorrectedTransaction(t *testing.T) {
	// Previewed at quantity 2, stock dropped to 1 before confirmation.
	catalog := &fakeCatalog{products: map[string]*models.Product{
		productA: product(productA, sellerOne, "anna", "10.00", 1),
	}}
	orders := &fakeOrders{}
	r := newRouter(catalog, &fakeCarts{items: map[string][]models.CartItem{}}, orders)

	w := postOrders(t, r, gin.H{
		"transaction": []gin.H{{"productId": productA, "quantity": 2}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if len(orders.created) != 0 {
		t.Error("drift must not create orders")
	}
	if catalog.products[productA].Quantity != 1 {
		t.Error("drift must not touch stock")
	}

	var resp struct {
		Transaction []struct {
			Quantity int `json:"quantity"`
		} `json:"transaction"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp.Transaction) != 1 || resp.Transaction[0].Quantity != 1 {
		t.Errorf("expected corrected transaction, got %+v", resp.Transaction)
	}
}

func TestCreateOrdersRetryAfterDrift(t *testing.T) {
	catalog := &fakeCatalog{products: map[string]*models.Product{
		productA: product(productA, sellerOne, "anna", "10.00", 1),
	}}
	orders := &fakeOrders{}
	r := newRouter(catalog, &fakeCarts{items: map[string][]models.CartItem{}}, orders)

	w := postOrders(t, r, gin.H{
		"transaction": []gin.H{{"productId": productA, "quantity": 1}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	if len(orders.created) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders.created))
	}
	if _, ok := catalog.products[productA]; ok {
		t.Error("product should be deleted once stock hits zero")
	}
}

func TestCreateOrdersForbidsSelfPurchase(t *testing.T) {
	catalog := &fakeCatalog{products: map[string]*models.Product{
		productA: product(productA, buyerID, "buyer", "10.00", 5),
		productB: product(productB, sellerTwo, "bart", "3.00", 5),
	}}
	orders := &fakeOrders{}
	r := newRouter(catalog, &fakeCarts{items: map[string][]models.CartItem{}}, orders)

	w := postOrders(t, r, gin.H{
		"transaction": []gin.H{
			{"productId": productA, "quantity": 1},
			{"productId": productB, "quantity": 1},
		},
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403, body %s", w.Code, w.Body.String())
	}
	if len(orders.created) != 0 {
		t.Error("self-purchase must not create orders")
	}
}

func TestCreateOrdersCartSourcedClearsCart(t *testing.T) {
	catalog := &fakeCatalog{products: map[string]*models.Product{
		productA: product(productA, sellerOne, "anna", "10.00", 5),
	}}
	carts := &fakeCarts{items: map[string][]models.CartItem{
		buyerID: {{ID: "item-1", UserID: buyerID, ProductID: productA, Quantity: 2}},
	}}
	orders := &fakeOrders{}
	r := newRouter(catalog, carts, orders)

	w := postOrders(t, r, gin.H{
		"transaction": []gin.H{{"productId": productA, "quantity": 2}},
		"clearCart":   true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	if len(carts.items[buyerID]) != 0 {
		t.Errorf("cart should be cleared, got %+v", carts.items[buyerID])
	}

	var resp struct {
		Cart []models.CartItem `json:"cart"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp.Cart) != 0 {
		t.Errorf("expected empty cart in response, got %+v", resp.Cart)
	}
}

func TestCreateOrdersValidatesPayload(t *testing.T) {
	catalog := &fakeCatalog{products: map[string]*models.Product{}}
	orders := &fakeOrders{}
	r := newRouter(catalog, &fakeCarts{items: map[string][]models.CartItem{}}, orders)

	w := postOrders(t, r, gin.H{"transaction": []gin.H{}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}
