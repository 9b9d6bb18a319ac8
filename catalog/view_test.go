package catalog

import (
	"testing"

	"finflock/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestViewDerivesDiscount(t *testing.T) {
	id := primitive.NewObjectID()
	view := View(models.Product{
		ID:          id,
		Title:       "Apple - Royal Gala",
		Image:       "https://picsum.photos/seed/product-4/400/400",
		PiecesLabel: "500 g",
		PricePaise:  8900,
		MRPPaise:    11000,
		EtaMinutes:  10,
		IsActive:    true,
	})

	assert.Equal(t, id.Hex(), view.ID)
	assert.Equal(t, int64(89), view.Price)
	assert.Equal(t, int64(110), view.MRP)
	assert.Equal(t, 19, view.DiscountPct)
	assert.Equal(t, 10, view.EtaMinutes)
	assert.Equal(t, 0, view.InCartQty)
}

func TestViewStoredDiscountOverridesDerived(t *testing.T) {
	pct := 5
	view := View(models.Product{
		PricePaise:  8900,
		MRPPaise:    11000,
		DiscountPct: &pct,
	})
	assert.Equal(t, 5, view.DiscountPct)
}

func TestViewDefaultsEta(t *testing.T) {
	view := View(models.Product{PricePaise: 3900, MRPPaise: 5000})
	assert.Equal(t, 15, view.EtaMinutes)
}

func TestViewNoDiscountWhenListNotAbovePrice(t *testing.T) {
	view := View(models.Product{PricePaise: 5000, MRPPaise: 5000})
	assert.Equal(t, 0, view.DiscountPct)

	view = View(models.Product{PricePaise: 6000, MRPPaise: 5000})
	assert.Equal(t, 0, view.DiscountPct)
}
