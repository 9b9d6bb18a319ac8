// Command seed loads a deterministic demo dataset: one demo account, a
// twelve-product catalog, and an empty cart for the account. Safe to
// rerun; products are reset, the account and its cart are upserted.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"finflock/config"
	"finflock/db"
	"finflock/models"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var titles = []string{
	"Bananas - Yelakki",
	"Amul Toned Milk",
	"Tomatoes - Hybrid",
	"Potato Pack",
	"Apple - Royal Gala",
	"Bread - Whole Wheat",
	"Coke 750ml",
	"Basmati Rice 1kg",
	"Onion 1kg",
	"Parle-G Family Pack",
	"Yogurt Cup 400g",
	"Mango - Alphonso",
}

var (
	piecesList = []string{"6 pcs", "500 g", "1 kg", "1 L"}
	mrps       = []int64{50, 65, 110, 199}
	prices     = []int64{39, 52, 89, 149}
)

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func seedUser(ctx context.Context, users *mongo.Collection) (models.User, error) {
	email := getEnv("DEMO_EMAIL", "demo@finflock.app")
	name := getEnv("DEMO_NAME", "Finflock Demo")

	var user models.User
	err := users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == nil {
		log.Printf("demo user exists: %s", email)
		return user, nil
	}
	if err != mongo.ErrNoDocuments {
		return user, fmt.Errorf("demo user lookup: %w", err)
	}

	passwordHash := ""
	if password := os.Getenv("DEMO_PASSWORD"); password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return user, fmt.Errorf("hash demo password: %w", err)
		}
		passwordHash = string(hashed)
	}

	user = models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Address:      models.Address{},
	}
	res, err := users.InsertOne(ctx, user)
	if err != nil {
		return user, fmt.Errorf("insert demo user: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	log.Printf("created demo user: %s", email)
	return user, nil
}

func seedProducts(ctx context.Context, products *mongo.Collection) (int, error) {
	// reset for deterministic seeds
	if _, err := products.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, fmt.Errorf("reset products: %w", err)
	}

	docs := make([]interface{}, 0, len(titles))
	for i, title := range titles {
		docs = append(docs, models.Product{
			Title:       title,
			Image:       fmt.Sprintf("https://picsum.photos/seed/product-%d/400/400", i),
			PiecesLabel: piecesList[i%4],
			PricePaise:  prices[i%4] * 100,
			MRPPaise:    mrps[i%4] * 100,
			EtaMinutes:  15,
			IsActive:    true,
		})
	}
	res, err := products.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert products: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	collections := db.NewCollections(client, cfg.MongoDB)
	if err := db.EnsureIndexes(ctx, collections); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	user, err := seedUser(ctx, collections.Users)
	if err != nil {
		log.Fatal(err)
	}

	count, err := seedProducts(ctx, collections.Products)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("inserted %d products", count)

	// empty cart for the demo account, created only if absent
	_, err = collections.Carts.UpdateOne(ctx,
		bson.M{"userId": user.ID},
		bson.M{"$setOnInsert": bson.M{"items": []models.CartLine{}, "updatedAt": time.Now()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Fatalf("Failed to ensure demo cart: %v", err)
	}
	log.Printf("ensured empty cart for %s", user.Email)
}
