package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Radeon2211/eshopping-api-sub000/models"
	"github.com/Radeon2211/eshopping-api-sub000/store"
)

// CommitInput carries one confirmed checkout request.
type CommitInput struct {
	// Requested is the transaction the client confirmed, as last shown
	// by a preview.
	Requested []RequestedItem
	// FromCart marks a cart-sourced checkout; the persisted cart is then
	// the source of truth for re-reconciliation and may be cleared.
	FromCart  bool
	ClearCart bool
	// DeliveryAddress overrides the buyer's profile address when set.
	DeliveryAddress *models.DeliveryAddress
}

// CommitResult reports either created orders (no drift) or the corrected
// transaction (drift, nothing committed). Cart is nil for ad-hoc buys.
type CommitResult struct {
	Orders      []models.Order
	Transaction []TransactionItem
	Cart        []models.CartItem
	Drifted     bool
}

// Commit fuses reconciliation and order creation: it re-validates the
// confirmed transaction against current stock and either commits all of
// it or detects drift and commits nothing. The self-purchase gate and
// the drift gate both run before any mutation; once past them, seller
// groups are mutated independently, so a storage fault in a later group
// leaves earlier groups' orders in place (recognized partial-failure
// mode, surfaced as the returned error).
func Commit(ctx context.Context, catalog store.CatalogStore, carts store.CartStore, orders store.OrderStore, buyer models.User, in CommitInput) (CommitResult, error) {
	if len(in.Requested) == 0 {
		return CommitResult{}, fmt.Errorf("%w: transaction is empty", ErrValidation)
	}
	for _, req := range in.Requested {
		if err := ValidateSingle(req.ProductID, req.Quantity); err != nil {
			return CommitResult{}, err
		}
	}

	var (
		res  Result
		cart []models.CartItem
		err  error
	)
	if in.FromCart {
		res, cart, err = ReconcileCart(ctx, catalog, carts, buyer.ID)
	} else {
		res, err = Reconcile(ctx, catalog, buyer.ID, in.Requested)
	}
	if err != nil {
		return CommitResult{}, err
	}

	if res.BuyingOwn {
		return CommitResult{}, ErrOwnProducts
	}

	if res.Different || !matchesRequested(res.Items, in.Requested) {
		return CommitResult{
			Transaction: res.Items,
			Cart:        cart,
			Drifted:     true,
		}, nil
	}

	address := deliveryAddress(buyer, in.DeliveryAddress)

	var created []models.Order
	for _, group := range groupBySeller(res.lines) {
		overall := decimal.Zero
		products := make([]models.OrderProduct, 0, len(group.lines))

		for _, l := range group.lines {
			if err := catalog.Purchase(ctx, l.product.ID, l.quantity); err != nil {
				return CommitResult{Orders: created},
					fmt.Errorf("purchase of product %s failed: %w", l.product.ID, err)
			}
			overall = overall.Add(l.product.Price.Mul(decimal.NewFromInt(int64(l.quantity))))
			products = append(products, models.OrderProduct{
				ID:        uuid.NewString(),
				ProductID: l.product.ID,
				Name:      l.product.Name,
				Price:     l.product.Price,
				Quantity:  l.quantity,
				Photo:     l.product.HasPhoto(),
			})
		}

		sellerID := group.sellerID
		buyerID := buyer.ID
		order := models.Order{
			ID:              uuid.NewString(),
			SellerID:        &sellerID,
			BuyerID:         &buyerID,
			Products:        products,
			OverallPrice:    overall,
			DeliveryAddress: address,
			CreatedAt:       time.Now(),
		}
		if err := orders.CreateOrder(ctx, &order); err != nil {
			return CommitResult{Orders: created},
				fmt.Errorf("order creation for seller %s failed: %w", group.sellerID, err)
		}
		created = append(created, order)
	}

	if in.FromCart && in.ClearCart {
		if err := carts.ClearCart(ctx, buyer.ID); err != nil {
			return CommitResult{Orders: created}, fmt.Errorf("cart clear failed: %w", err)
		}
		cart = []models.CartItem{}
	}

	return CommitResult{Orders: created, Cart: cart}, nil
}

// matchesRequested reports whether the reconciled transaction still
// covers exactly what the client confirmed. A cart edited between
// preview and confirmation counts as drift even when every line passes
// validation on its own.
func matchesRequested(items []TransactionItem, requested []RequestedItem) bool {
	if len(items) != len(requested) {
		return false
	}
	want := make(map[string]int, len(requested))
	for _, req := range requested {
		want[req.ProductID] += req.Quantity
	}
	for _, item := range items {
		want[item.ProductID] -= item.Quantity
	}
	for _, diff := range want {
		if diff != 0 {
			return false
		}
	}
	return true
}

func deliveryAddress(buyer models.User, override *models.DeliveryAddress) models.DeliveryAddress {
	if override != nil {
		return *override
	}
	return models.DeliveryAddress{
		FirstName: buyer.FirstName,
		LastName:  buyer.LastName,
		Street:    buyer.Address.Street,
		ZipCode:   buyer.Address.ZipCode,
		City:      buyer.Address.City,
		Country:   buyer.Address.Country,
		Phone:     buyer.Phone,
	}
}
