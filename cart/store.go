package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finflock/apperr"
	"finflock/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the cart persistence contract. Every mutation is a single
// atomic document update keyed on the line's product id, so two
// concurrent writers for the same user can never overwrite each
// other's lines.
type Store interface {
	Ensure(ctx context.Context, userID primitive.ObjectID) error
	Get(ctx context.Context, userID primitive.ObjectID) (models.Cart, error)
	SetLineQty(ctx context.Context, userID, productID primitive.ObjectID, qty int) (bool, error)
	PushLine(ctx context.Context, userID, productID primitive.ObjectID, qty int) (bool, error)
	PullLine(ctx context.Context, userID, productID primitive.ObjectID) error
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

type mongoStore struct {
	carts *mongo.Collection
}

func NewMongoStore(carts *mongo.Collection) Store {
	return &mongoStore{carts: carts}
}

// Ensure lazily materializes the user's cart. Losing the upsert race
// against the unique userId index means another request created the
// document first; that document wins.
func (s *mongoStore) Ensure(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.carts.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$setOnInsert": bson.M{"items": []models.CartLine{}, "updatedAt": time.Now()}},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: ensure cart: %v", apperr.ErrStorage, err)
	}
	return nil
}

func (s *mongoStore) Get(ctx context.Context, userID primitive.ObjectID) (models.Cart, error) {
	var cart models.Cart
	err := s.carts.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// carts are never deleted, so a miss only means Ensure has not
		// run yet for this user
		return models.Cart{UserID: userID, Items: []models.CartLine{}}, nil
	}
	if err != nil {
		return cart, fmt.Errorf("%w: load cart: %v", apperr.ErrStorage, err)
	}
	return cart, nil
}

// SetLineQty updates an existing line in place via the positional
// operator. Reports whether a line matched.
func (s *mongoStore) SetLineQty(ctx context.Context, userID, productID primitive.ObjectID, qty int) (bool, error) {
	res, err := s.carts.UpdateOne(ctx,
		bson.M{"userId": userID, "items.productId": productID},
		bson.M{"$set": bson.M{"items.$.qty": qty, "updatedAt": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("%w: set line qty: %v", apperr.ErrStorage, err)
	}
	return res.MatchedCount > 0, nil
}

// PushLine appends a new line, guarded so it only matches while the
// product is absent from the line set. Reports whether the append
// happened.
func (s *mongoStore) PushLine(ctx context.Context, userID, productID primitive.ObjectID, qty int) (bool, error) {
	res, err := s.carts.UpdateOne(ctx,
		bson.M{"userId": userID, "items.productId": bson.M{"$ne": productID}},
		bson.M{
			"$push": bson.M{"items": models.CartLine{ProductID: productID, Qty: qty}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, fmt.Errorf("%w: push line: %v", apperr.ErrStorage, err)
	}
	return res.MatchedCount > 0, nil
}

// PullLine removes the line if present. Pulling an absent line matches
// the cart document and changes nothing, which keeps removal idempotent.
func (s *mongoStore) PullLine(ctx context.Context, userID, productID primitive.ObjectID) error {
	_, err := s.carts.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"productId": productID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("%w: pull line: %v", apperr.ErrStorage, err)
	}
	return nil
}

func (s *mongoStore) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.carts.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": []models.CartLine{}, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("%w: clear cart: %v", apperr.ErrStorage, err)
	}
	return nil
}
