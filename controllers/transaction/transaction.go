package transactionControllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Radeon2211/eshopping-api-sub000/checkout"
	"github.com/Radeon2211/eshopping-api-sub000/middleware"
	"github.com/Radeon2211/eshopping-api-sub000/store"
)

type SingleItemInput struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type PreviewInput struct {
	SingleItem *SingleItemInput `json:"singleItem"`
}

// PATCH /transaction
//
// Dry-run reconciliation. Without a body the persisted cart is the
// source and gets the clamped list written back; with singleItem set the
// ad-hoc item is validated and reconciled without touching the cart.
func Preview(catalog store.CatalogStore, carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input PreviewInput
		if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.SingleItem != nil {
			single := input.SingleItem
			if err := checkout.ValidateSingle(single.Product, single.Quantity); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			res, err := checkout.Reconcile(c.Request.Context(), catalog, user.ID, []checkout.RequestedItem{
				{ProductID: single.Product, Quantity: single.Quantity},
			})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile transaction"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"transaction": res.Items,
				"cart":        nil,
				"isDifferent": res.Different,
			})
			return
		}

		res, cart, err := checkout.ReconcileCart(c.Request.Context(), catalog, carts, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile transaction"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"transaction": res.Items,
			"cart":        cart,
			"isDifferent": res.Different,
		})
	}
}
