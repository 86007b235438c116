package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Radeon2211/eshopping-api-sub000/models"
	"github.com/Radeon2211/eshopping-api-sub000/store"
)

var (
	// ErrValidation marks malformed requests rejected before any store
	// access.
	ErrValidation = errors.New("checkout: validation failed")
	// ErrOwnProducts is returned when a buyer tries to commit an order
	// containing their own product.
	ErrOwnProducts = errors.New("checkout: cannot buy own products")
)

// ValidateSingle gates the ad-hoc buy-now payload. Violations here are
// client errors, never silently clamped.
func ValidateSingle(productID string, quantity int) error {
	if _, err := uuid.Parse(productID); err != nil {
		return fmt.Errorf("%w: malformed product id", ErrValidation)
	}
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	return nil
}

// Reconcile re-validates requested items against the live catalog.
// Items are processed independently, in input order: a missing product
// is dropped, an over-ask is clamped to current stock, everything else
// passes through untouched. Either deviation flips Different.
func Reconcile(ctx context.Context, catalog store.CatalogStore, buyerID string, requested []RequestedItem) (Result, error) {
	res := Result{}
	for _, req := range requested {
		product, err := catalog.GetProduct(ctx, req.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			res.Different = true
			continue
		}
		if err != nil {
			return Result{}, err
		}

		if product.SellerID == buyerID {
			res.BuyingOwn = true
		}

		quantity := req.Quantity
		if product.Quantity < quantity {
			quantity = product.Quantity
			res.Different = true
		}

		l := line{product: product, quantity: quantity}
		res.lines = append(res.lines, l)
		res.Items = append(res.Items, l.item())
	}
	return res, nil
}

// ReconcileCart reconciles the user's persisted cart and writes the
// clamped list back, dropping dangling entries and keeping item ids
// stable. The write-back happens even when nothing changed.
func ReconcileCart(ctx context.Context, catalog store.CatalogStore, carts store.CartStore, buyerID string) (Result, []models.CartItem, error) {
	cart, err := carts.GetCart(ctx, buyerID)
	if err != nil {
		return Result{}, nil, err
	}

	requested := make([]RequestedItem, len(cart))
	for i, item := range cart {
		requested[i] = RequestedItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	res, err := Reconcile(ctx, catalog, buyerID, requested)
	if err != nil {
		return Result{}, nil, err
	}

	updated := clampCart(cart, res.lines)
	if err := carts.ReplaceCart(ctx, buyerID, updated); err != nil {
		return Result{}, nil, err
	}
	return res, updated, nil
}

// clampCart rebuilds the persisted cart from surviving lines, carrying
// over the original item identity for each product that made it through.
func clampCart(cart []models.CartItem, lines []line) []models.CartItem {
	byProduct := make(map[string]models.CartItem, len(cart))
	for _, item := range cart {
		byProduct[item.ProductID] = item
	}

	updated := make([]models.CartItem, 0, len(lines))
	for _, l := range lines {
		item, ok := byProduct[l.product.ID]
		if !ok {
			continue
		}
		item.Quantity = l.quantity
		updated = append(updated, item)
	}
	return updated
}
