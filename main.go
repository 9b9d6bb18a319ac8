package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finflock/auth"
	"finflock/cart"
	"finflock/catalog"
	"finflock/config"
	"finflock/db"
	"finflock/middleware"
	"finflock/ratelim"
	"finflock/rdx"
	"finflock/routes"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware tags each request with a correlation id and logs
// method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		r = r.WithContext(middleware.WithRequestID(r.Context(), requestID))

		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s from %s – %v", requestID, r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// recoverMiddleware converts panics into a generic 500 with no internal
// detail in the response.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[%s] panic serving %s %s: %v", middleware.RequestIDFromContext(r.Context()), r.Method, r.RequestURI, rec)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, `{"ok":true}`)
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	port := cfg.Port
	if port[0] != ':' {
		port = ":" + port
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := db.Connect(ctx, cfg.MongoURI)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	collections := db.NewCollections(client, cfg.MongoDB)

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = db.EnsureIndexes(ctx, collections)
	cancel()
	if err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// product cache is optional; without REDIS_ADDR every read goes to
	// the store
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	secret := []byte(cfg.JWTSecret)
	catalogStore := catalog.NewStore(collections.Products)
	catalogHandler := catalog.NewHandler(catalogStore, rdx.New(redisClient))
	authHandler := auth.NewHandler(auth.NewAccounts(collections.Users), secret)
	cartHandler := cart.NewHandler(cart.NewEngine(cart.NewMongoStore(collections.Carts), catalogStore))
	authmw := middleware.NewAuth(secret)
	rateLimiter := ratelim.NewRateLimiter()

	router := httprouter.New()
	router.GET("/api/health", Index)
	routes.AddAuthRoutes(router, authHandler, rateLimiter)
	routes.AddProductRoutes(router, catalogHandler)
	routes.AddCartRoutes(router, cartHandler, authmw)

	// middleware: logging → security headers → recovery → CORS → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(recoverMiddleware(corsHandler)))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("API listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Redis close: %v", err)
		}
	}

	log.Println("Server stopped cleanly")
}
