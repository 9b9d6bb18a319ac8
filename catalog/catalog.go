package catalog

import (
	"context"
	"errors"
	"fmt"

	"finflock/apperr"
	"finflock/currency"
	"finflock/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultEtaMinutes = 15

// Store is the read path over product documents. Products are created
// and deactivated by catalog management elsewhere; nothing here writes.
type Store struct {
	products *mongo.Collection
}

func NewStore(products *mongo.Collection) *Store {
	return &Store{products: products}
}

// View projects a stored product document to its wire shape: paise
// become rupees, a stored discount percent overrides the derived one,
// and a missing fulfillment estimate defaults to 15 minutes.
func View(p models.Product) models.ProductView {
	price := currency.ToDisplay(p.PricePaise)
	mrp := currency.ToDisplay(p.MRPPaise)

	pct := currency.DiscountPercent(mrp, price)
	if p.DiscountPct != nil {
		pct = *p.DiscountPct
	}

	eta := p.EtaMinutes
	if eta == 0 {
		eta = defaultEtaMinutes
	}

	return models.ProductView{
		ID:          p.ID.Hex(),
		Title:       p.Title,
		Image:       p.Image,
		PiecesLabel: p.PiecesLabel,
		Price:       price,
		MRP:         mrp,
		DiscountPct: pct,
		EtaMinutes:  eta,
		InCartQty:   0, // the caller merges real cart state
	}
}

// List returns active products matching the filter, capped at limit. A
// text query matches the search index or, failing that, a
// case-insensitive substring of the title.
func (s *Store) List(ctx context.Context, q, category string, limit int) ([]models.ProductView, error) {
	filter := bson.M{"isActive": bson.M{"$ne": false}}
	if category != "" {
		filter["category"] = category
	}
	if q != "" {
		filter["$or"] = bson.A{
			bson.M{"$text": bson.M{"$search": q}},
			bson.M{"title": bson.M{"$regex": q, "$options": "i"}},
		}
	}

	cursor, err := s.products.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %v", apperr.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var docs []models.Product
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: read products: %v", apperr.ErrStorage, err)
	}

	views := make([]models.ProductView, 0, len(docs))
	for _, doc := range docs {
		views = append(views, View(doc))
	}
	return views, nil
}

// ActiveByID resolves a single active product. Deactivated products
// behave exactly like missing ones.
func (s *Store) ActiveByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id, "isActive": bson.M{"$ne": false}}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return p, apperr.ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("%w: product lookup: %v", apperr.ErrStorage, err)
	}
	return p, nil
}

// ActiveByIDs batch-resolves product documents, keyed by hex id. Ids
// that are unknown or deactivated are simply absent from the result.
func (s *Store) ActiveByIDs(ctx context.Context, ids []primitive.ObjectID) (map[string]models.Product, error) {
	out := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := s.products.Find(ctx, bson.M{
		"_id":      bson.M{"$in": ids},
		"isActive": bson.M{"$ne": false},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: batch product lookup: %v", apperr.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var docs []models.Product
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: read batch products: %v", apperr.ErrStorage, err)
	}
	for _, doc := range docs {
		out[doc.ID.Hex()] = doc
	}
	return out, nil
}
