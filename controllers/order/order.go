package orderControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Radeon2211/eshopping-api-sub000/checkout"
	"github.com/Radeon2211/eshopping-api-sub000/middleware"
	"github.com/Radeon2211/eshopping-api-sub000/models"
	"github.com/Radeon2211/eshopping-api-sub000/store"
)

// ConfirmedItem is one line of a previewed transaction sent back for
// commit. Only identity and quantity matter; price and seller are
// re-resolved from the catalog.
type ConfirmedItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderInput struct {
	Transaction []ConfirmedItem `json:"transaction" binding:"required"`
	// ClearCart present marks a cart-sourced checkout: true empties the
	// cart after commit, false leaves the reconciled cart alone. Absent
	// means an ad-hoc buy-now that never touches the cart.
	ClearCart       *bool                   `json:"clearCart"`
	DeliveryAddress *models.DeliveryAddress `json:"deliveryAddress"`
}

// POST /orders
func CreateOrders(catalog store.CatalogStore, carts store.CartStore, orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		requested := make([]checkout.RequestedItem, len(input.Transaction))
		for i, item := range input.Transaction {
			requested[i] = checkout.RequestedItem{ProductID: item.ProductID, Quantity: item.Quantity}
		}

		fromCart := input.ClearCart != nil
		res, err := checkout.Commit(c.Request.Context(), catalog, carts, orders, user, checkout.CommitInput{
			Requested:       requested,
			FromCart:        fromCart,
			ClearCart:       fromCart && *input.ClearCart,
			DeliveryAddress: input.DeliveryAddress,
		})
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrValidation):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, checkout.ErrOwnProducts):
				c.JSON(http.StatusForbidden, gin.H{"error": "You cannot buy your own products"})
			default:
				// Orders created before the fault stay in place; there is
				// no compensating rollback across seller groups.
				log.Printf("order commit failed for user %s after %d orders: %v", user.ID, len(res.Orders), err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete the purchase"})
			}
			return
		}

		if res.Drifted {
			body := gin.H{"transaction": res.Transaction}
			if fromCart {
				body["cart"] = res.Cart
			}
			c.JSON(http.StatusOK, body)
			return
		}

		body := gin.H{"orders": ordersToView(res.Orders, user)}
		if fromCart {
			body["cart"] = res.Cart
		} else {
			body["cart"] = nil
		}
		c.JSON(http.StatusCreated, body)
	}
}

// ordersToView projects freshly created orders; the buyer is always the
// requester, sellers are looked up from the committed lines.
func ordersToView(created []models.Order, buyer models.User) []checkout.OrderView {
	views := make([]checkout.OrderView, len(created))
	for i, o := range created {
		o.Buyer = &buyer
		views[i] = checkout.OrderToView(o)
	}
	return views
}

// GET /orders/buy
func ListBoughtOrders(orders store.OrderStore) gin.HandlerFunc {
	return listOrders(orders, func(ctx *gin.Context, s store.OrderStore, userID string) ([]models.Order, error) {
		return s.ListByBuyer(ctx.Request.Context(), userID)
	})
}

// GET /orders/sell
func ListSoldOrders(orders store.OrderStore) gin.HandlerFunc {
	return listOrders(orders, func(ctx *gin.Context, s store.OrderStore, userID string) ([]models.Order, error) {
		return s.ListBySeller(ctx.Request.Context(), userID)
	})
}

func listOrders(orders store.OrderStore, fetch func(*gin.Context, store.OrderStore, string) ([]models.Order, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		list, err := fetch(c, orders, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": checkout.OrdersToView(list)})
	}
}

// GET /orders/:id
func GetOrder(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, err := orders.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		isBuyer := order.BuyerID != nil && *order.BuyerID == user.ID
		isSeller := order.SellerID != nil && *order.SellerID == user.ID
		if !isBuyer && !isSeller {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not a party of this order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": checkout.OrderToView(order)})
	}
}
