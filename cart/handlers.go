package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"finflock/apperr"
	"finflock/middleware"
	"finflock/models"
	"finflock/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler serves the authenticated cart endpoints. Identity comes from
// the auth middleware; everything else is delegated to the engine.
type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

func caller(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return primitive.NilObjectID, false
	}
	return userID, true
}

func respondCartView(ctx context.Context, w http.ResponseWriter, op string, view models.CartView, err error) {
	if err == nil {
		utils.RespondWithJSON(w, http.StatusOK, view)
		return
	}
	switch status := apperr.Status(err); status {
	case http.StatusNotFound:
		utils.RespondWithError(w, status, "Product not found")
	case http.StatusConflict:
		log.Printf("[%s] %s: %v", middleware.RequestIDFromContext(ctx), op, err)
		utils.RespondWithError(w, status, "Cart is busy, please retry")
	default:
		log.Printf("[%s] %s: %v", middleware.RequestIDFromContext(ctx), op, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
	}
}

// GetCart handles GET /api/cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := caller(w, r)
	if !ok {
		return
	}

	view, err := h.engine.View(ctx, userID)
	if err != nil {
		log.Printf("[%s] get cart: %v", middleware.RequestIDFromContext(ctx), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// SetItem handles POST /api/cart/items with body {productId, qty}.
func (h *Handler) SetItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := caller(w, r)
	if !ok {
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Qty       *int   `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.ProductID == "" || input.Qty == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "productId and qty are required")
		return
	}
	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	view, err := h.engine.SetQuantity(ctx, userID, productID, *input.Qty)
	respondCartView(ctx, w, "set cart item", view, err)
}

// PatchItem handles PATCH /api/cart/items/:productId with body {qty}.
func (h *Handler) PatchItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := caller(w, r)
	if !ok {
		return
	}

	productID, err := primitive.ObjectIDFromHex(ps.ByName("productId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var input struct {
		Qty *int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Qty == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "qty is required")
		return
	}

	view, err := h.engine.SetQuantity(ctx, userID, productID, *input.Qty)
	respondCartView(ctx, w, "patch cart item", view, err)
}

// RemoveItem handles DELETE /api/cart/items/:productId.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := caller(w, r)
	if !ok {
		return
	}

	productID, err := primitive.ObjectIDFromHex(ps.ByName("productId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	view, err := h.engine.Remove(ctx, userID, productID)
	respondCartView(ctx, w, "remove cart item", view, err)
}

// ClearCart handles DELETE /api/cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := caller(w, r)
	if !ok {
		return
	}

	view, err := h.engine.Clear(ctx, userID)
	respondCartView(ctx, w, "clear cart", view, err)
}
