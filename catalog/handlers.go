package catalog

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"finflock/apperr"
	"finflock/middleware"
	"finflock/models"
	"finflock/rdx"
	"finflock/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"
)

const defaultListLimit = 24

// Handler serves the public catalog endpoints. Single-product reads go
// through the cache with a singleflight guard so a cold key is fetched
// once no matter how many requests race on it.
type Handler struct {
	store *Store
	cache *rdx.Cache
	sfg   singleflight.Group
}

func NewHandler(store *Store, cache *rdx.Cache) *Handler {
	return &Handler{store: store, cache: cache}
}

// ListProducts handles GET /api/products with optional q, category and
// limit query parameters.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	limit := utils.ParseLimit(r, "limit", defaultListLimit, 100)
	views, err := h.store.List(ctx, r.URL.Query().Get("q"), r.URL.Query().Get("category"), limit)
	if err != nil {
		log.Printf("[%s] list products: %v", middleware.RequestIDFromContext(ctx), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, views)
}

// GetProduct handles GET /api/products/:id.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	v, err, _ := h.sfg.Do(id.Hex(), func() (interface{}, error) {
		if view, ok := h.cache.GetProduct(ctx, id.Hex()); ok {
			return view, nil
		}
		p, err := h.store.ActiveByID(ctx, id)
		if err != nil {
			return models.ProductView{}, err
		}
		view := View(p)
		h.cache.SetProduct(ctx, id.Hex(), view)
		return view, nil
	})
	if errors.Is(err, apperr.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Printf("[%s] get product %s: %v", middleware.RequestIDFromContext(ctx), id.Hex(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, v)
}
