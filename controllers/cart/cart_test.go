package cartControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
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
	productID = "11111111-1111-1111-1111-111111111111"
	buyerID   = "aaaaaaaa-0000-0000-0000-000000000001"
	sellerID  = "aaaaaaaa-0000-0000-0000-000000000002"
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
func (c *fakeCatalog) DeleteProduct(context.Context, string) error          { return nil }
func (c *fakeCatalog) Purchase(context.Context, string, int) error          { return nil }

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

func newRouter(catalog store.CatalogStore, carts store.CartStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	inject := func(c *gin.Context) {
		middleware.SetCurrentUser(c, models.User{ID: buyerID, Username: "buyer", Status: models.UserStatusActive})
	}
	r.POST("/cart", inject, AddItem(catalog, carts))
	r.PATCH("/cart/:itemId", inject, UpdateItem(catalog, carts))
	return r
}

func lampCatalog(qty int) *fakeCatalog {
	return &fakeCatalog{products: map[string]*models.Product{
		productID: {
			ID:       productID,
			Name:     "lamp",
			Price:    decimal.RequireFromString("50.00"),
			Quantity: qty,
			SellerID: sellerID,
			Seller:   &models.User{ID: sellerID, Username: "anna"},
		},
	}}
}

func TestAddItemClampsToStock(t *testing.T) {
	carts := &fakeCarts{items: map[string][]models.CartItem{}}
	r := newRouter(lampCatalog(3), carts)

	body, _ := json.Marshal(gin.H{"product": productID, "quantity": 10})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if got := carts.items[buyerID]; len(got) != 1 || got[0].Quantity != 3 {
		t.Errorf("expected quantity clamped to stock, got %+v", got)
	}
}

func TestAddItemMergesExistingEntry(t *testing.T) {
	carts := &fakeCarts{items: map[string][]models.CartItem{
		buyerID: {{ID: "item-1", UserID: buyerID, ProductID: productID, Quantity: 2}},
	}}
	r := newRouter(lampCatalog(10), carts)

	body, _ := json.Marshal(gin.H{"product": productID, "quantity": 3})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if got := carts.items[buyerID]; len(got) != 1 || got[0].Quantity != 5 || got[0].ID != "item-1" {
		t.Errorf("expected merged entry with stable id, got %+v", got)
	}
}

func TestAddItemRejectsOwnProduct(t *testing.T) {
	catalog := lampCatalog(3)
	catalog.products[productID].SellerID = buyerID
	carts := &fakeCarts{items: map[string][]models.CartItem{}}
	r := newRouter(catalog, carts)

	body, _ := json.Marshal(gin.H{"product": productID, "quantity": 1})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader(body)))

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestAddItemEnforcesCartCap(t *testing.T) {
	items := make([]models.CartItem, models.MaxCartItems)
	for i := range items {
		items[i] = models.CartItem{
			ID:        fmt.Sprintf("item-%d", i),
			UserID:    buyerID,
			ProductID: fmt.Sprintf("00000000-0000-0000-0000-%012d", i),
			Quantity:  1,
		}
	}
	carts := &fakeCarts{items: map[string][]models.CartItem{buyerID: items}}
	r := newRouter(lampCatalog(3), carts)

	body, _ := json.Marshal(gin.H{"product": productID, "quantity": 1})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader(body)))

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if len(carts.items[buyerID]) != models.MaxCartItems {
		t.Error("cart must not grow past the cap")
	}
}

func TestUpdateItemUnknownID(t *testing.T) {
	carts := &fakeCarts{items: map[string][]models.CartItem{}}
	r := newRouter(lampCatalog(3), carts)

	body, _ := json.Marshal(gin.H{"quantity": 2})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/cart/nope", bytes.NewReader(body)))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
