package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/Radeon2211/eshopping-api-sub000/models"
)

// RequestedItem is a client-supplied purchase intent, either one cart
// entry or the single ad-hoc item of a buy-now request.
type RequestedItem struct {
	ProductID string `json:"product" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// SellerRef is the only seller information a buyer gets to see on a
// transaction line.
type SellerRef struct {
	Username string `json:"username"`
}

// TransactionItem is a reconciled, display-ready purchase line. It is
// never persisted; the order committer freezes it into OrderProducts.
type TransactionItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Photo     bool            `json:"photo"`
	Seller    SellerRef       `json:"seller"`
}

// line pairs an emitted transaction item with the live product snapshot
// it was reconciled against, so the committer knows seller identity and
// price without a second catalog read.
type line struct {
	product  models.Product
	quantity int
}

func (l line) item() TransactionItem {
	username := ""
	if l.product.Seller != nil {
		username = l.product.Seller.Username
	}
	return TransactionItem{
		ProductID: l.product.ID,
		Name:      l.product.Name,
		Price:     l.product.Price,
		Quantity:  l.quantity,
		Photo:     l.product.HasPhoto(),
		Seller:    SellerRef{Username: username},
	}
}

// Result is the outcome of one reconciliation pass.
type Result struct {
	// Items holds the verified transaction, one entry per requested item
	// whose product still exists, in input order.
	Items []TransactionItem
	// Different is true when any item was dropped or clamped.
	Different bool
	// BuyingOwn is true when any resolved product belongs to the buyer.
	// It never blocks a preview, only a commit.
	BuyingOwn bool

	lines []line
}

type sellerGroup struct {
	sellerID string
	lines    []line
}

// groupBySeller splits lines into per-seller buckets, preserving the
// first-seen order of sellers and the input order within each bucket.
func groupBySeller(lines []line) []sellerGroup {
	var groups []sellerGroup
	index := make(map[string]int)
	for _, l := range lines {
		sellerID := l.product.SellerID
		i, ok := index[sellerID]
		if !ok {
			i = len(groups)
			index[sellerID] = i
			groups = append(groups, sellerGroup{sellerID: sellerID})
		}
		groups[i].lines = append(groups[i].lines, l)
	}
	return groups
}
