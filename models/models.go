package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is the optional postal substructure on a user document.
type Address struct {
	Line1   string `bson:"line1,omitempty" json:"line1,omitempty"`
	Line2   string `bson:"line2,omitempty" json:"line2,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Pincode string `bson:"pincode,omitempty" json:"pincode,omitempty"`
}

// User documents are provisioned externally; this backend only reads
// them to verify credentials at login.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	Address      Address            `bson:"address,omitempty"`
}

// Profile is the sanitized user view returned on login. It never
// carries the credential hash.
type Profile struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address Address `json:"address"`
}

// Product stores prices in paise so totals never accumulate
// floating-point drift. DiscountPct, when set, overrides the value
// derived from mrp and price.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Image       string             `bson:"image"`
	PiecesLabel string             `bson:"piecesLabel"`
	PricePaise  int64              `bson:"pricePaise"`
	MRPPaise    int64              `bson:"mrpPaise"`
	DiscountPct *int               `bson:"discountPct,omitempty"`
	EtaMinutes  int                `bson:"etaMinutes,omitempty"`
	Category    string             `bson:"category,omitempty"`
	Brand       string             `bson:"brand,omitempty"`
	IsActive    bool               `bson:"isActive"`
}

// ProductView is the wire shape consumed by the UI. Prices are in
// rupees. InCartQty is always 0 here; the client merges cart state.
type ProductView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	PiecesLabel string `json:"piecesLabel"`
	Price       int64  `json:"price"`
	MRP         int64  `json:"mrp"`
	DiscountPct int    `json:"discountPct"`
	EtaMinutes  int    `json:"etaMinutes"`
	InCartQty   int    `json:"inCartQty"`
}

// CartLine holds a non-owning reference into the products collection.
// Qty is always positive: setting a quantity at or below zero removes
// the line instead of storing it.
type CartLine struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Qty       int                `bson:"qty" json:"qty"`
}

// Cart is the single per-user cart document, lazily created on first
// access and never explicitly deleted. A line's product id appears at
// most once.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Items     []CartLine         `bson:"items"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// CartViewItem pairs a resolved product with its quantity.
type CartViewItem struct {
	Product ProductView `json:"product"`
	Qty     int         `json:"qty"`
}

// CartView is the derived cart response. Totals cover resolved lines
// only; stale lines contribute nothing.
type CartView struct {
	Items      []CartViewItem `json:"items"`
	Subtotal   int64          `json:"subtotal"`
	TotalItems int            `json:"totalItems"`
}
