package cart

import (
	"context"
	"fmt"

	"finflock/apperr"
	"finflock/catalog"
	"finflock/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Catalog is the product lookup capability the engine borrows. The
// engine never owns catalog data; it only resolves references.
type Catalog interface {
	ActiveByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	ActiveByIDs(ctx context.Context, ids []primitive.ObjectID) (map[string]models.Product, error)
}

// setRetries bounds the loop around SetQuantity's two-step update. Each
// step is atomic on its own; a retry is only needed when a concurrent
// writer adds or removes the same line between the in-place set and the
// guarded append.
const setRetries = 3

// Engine owns the per-user cart documents and every mutation on them.
type Engine struct {
	store   Store
	catalog Catalog
}

func NewEngine(store Store, catalog Catalog) *Engine {
	return &Engine{store: store, catalog: catalog}
}

// View loads the cart and joins each line against the live catalog in
// one batched lookup. Lines whose product no longer resolves are
// dropped silently and contribute nothing to the totals.
func (e *Engine) View(ctx context.Context, userID primitive.ObjectID) (models.CartView, error) {
	if err := e.store.Ensure(ctx, userID); err != nil {
		return models.CartView{}, err
	}
	c, err := e.store.Get(ctx, userID)
	if err != nil {
		return models.CartView{}, err
	}

	ids := make([]primitive.ObjectID, 0, len(c.Items))
	for _, line := range c.Items {
		ids = append(ids, line.ProductID)
	}
	products, err := e.catalog.ActiveByIDs(ctx, ids)
	if err != nil {
		return models.CartView{}, err
	}

	view := models.CartView{Items: []models.CartViewItem{}}
	for _, line := range c.Items {
		p, ok := products[line.ProductID.Hex()]
		if !ok {
			continue // stale reference
		}
		pv := catalog.View(p)
		view.Items = append(view.Items, models.CartViewItem{Product: pv, Qty: line.Qty})
		view.Subtotal += pv.Price * int64(line.Qty)
		view.TotalItems += line.Qty
	}
	return view, nil
}

// SetQuantity stores an absolute quantity for one product line: a set,
// not an increment, so resubmitting is idempotent. A quantity at or
// below zero removes the line instead; removing an absent line is a
// no-op. The product must resolve to an active catalog entry.
func (e *Engine) SetQuantity(ctx context.Context, userID, productID primitive.ObjectID, qty int) (models.CartView, error) {
	if _, err := e.catalog.ActiveByID(ctx, productID); err != nil {
		return models.CartView{}, err
	}
	if err := e.store.Ensure(ctx, userID); err != nil {
		return models.CartView{}, err
	}

	if qty <= 0 {
		if err := e.store.PullLine(ctx, userID, productID); err != nil {
			return models.CartView{}, err
		}
		return e.View(ctx, userID)
	}

	for attempt := 0; attempt < setRetries; attempt++ {
		matched, err := e.store.SetLineQty(ctx, userID, productID, qty)
		if err != nil {
			return models.CartView{}, err
		}
		if matched {
			return e.View(ctx, userID)
		}

		matched, err = e.store.PushLine(ctx, userID, productID, qty)
		if err != nil {
			return models.CartView{}, err
		}
		if matched {
			return e.View(ctx, userID)
		}
		// the line appeared between the two attempts; set it in place
	}
	return models.CartView{}, fmt.Errorf("%w: cart update contended for user %s", apperr.ErrConflict, userID.Hex())
}

// Remove drops the line unconditionally and returns the refreshed view.
func (e *Engine) Remove(ctx context.Context, userID, productID primitive.ObjectID) (models.CartView, error) {
	if err := e.store.Ensure(ctx, userID); err != nil {
		return models.CartView{}, err
	}
	if err := e.store.PullLine(ctx, userID, productID); err != nil {
		return models.CartView{}, err
	}
	return e.View(ctx, userID)
}

// Clear replaces the line set with an empty one. The empty view is
// returned directly, skipping the catalog round trip.
func (e *Engine) Clear(ctx context.Context, userID primitive.ObjectID) (models.CartView, error) {
	if err := e.store.Ensure(ctx, userID); err != nil {
		return models.CartView{}, err
	}
	if err := e.store.Clear(ctx, userID); err != nil {
		return models.CartView{}, err
	}
	return models.CartView{Items: []models.CartViewItem{}}, nil
}
