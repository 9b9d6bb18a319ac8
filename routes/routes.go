package routes

import (
	"finflock/auth"
	"finflock/cart"
	"finflock/catalog"
	"finflock/middleware"
	"finflock/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/login", rl.Limit(h.Login))
}

func AddProductRoutes(router *httprouter.Router, h *catalog.Handler) {
	router.GET("/api/products", h.ListProducts)
	router.GET("/api/products/:id", h.GetProduct)
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handler, authmw *middleware.Auth) {
	router.GET("/api/cart", authmw.Required(h.GetCart))
	router.POST("/api/cart/items", authmw.Required(h.SetItem))
	router.PATCH("/api/cart/items/:productId", authmw.Required(h.PatchItem))
	router.DELETE("/api/cart/items/:productId", authmw.Required(h.RemoveItem))
	router.DELETE("/api/cart", authmw.Required(h.ClearCart))
}
