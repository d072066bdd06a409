package routes

import (
	"moyo/auth"
	"moyo/cart"
	"moyo/middleware"
	"moyo/orders"
	"moyo/products"
	"moyo/ratelim"
	"moyo/warehouse"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, h *auth.Handlers) {
	router.POST("/api/auth/register", ratelim.RateLimit(h.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(h.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(h.Logout))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(middleware.Authenticate(h.RefreshToken)))

	router.GET("/api/auth/me", middleware.Authenticate(h.Me))

	router.POST("/api/auth/request-otp", ratelim.RateLimit(h.RequestOTP))
	router.POST("/api/auth/verify-otp", ratelim.RateLimit(h.VerifyOTP))
}

func AddCartRoutes(router *httprouter.Router, svc *cart.Service) {
	// Adds are allowed without a session so the response can ask for login
	router.POST("/api/cart/items", ratelim.RateLimit(middleware.OptionalAuth(svc.AddToCartHandler)))
	router.GET("/api/cart", middleware.Authenticate(svc.GetCartHandler))
	router.PUT("/api/cart/items/:itemId", middleware.Authenticate(svc.UpdateQuantityHandler))
	router.DELETE("/api/cart/items/:itemId", middleware.Authenticate(svc.RemoveItemHandler))
	router.DELETE("/api/cart", middleware.Authenticate(svc.ClearCartHandler))
	router.GET("/api/cart/product/:productId", middleware.OptionalAuth(svc.ProductQuantityHandler))
}

func AddProductRoutes(router *httprouter.Router, h *products.Handlers) {
	router.GET("/api/products", ratelim.RateLimit(middleware.OptionalAuth(h.GetProducts)))
	router.GET("/api/products/:productId", ratelim.RateLimit(middleware.OptionalAuth(h.GetProduct)))
}

func AddOrderRoutes(router *httprouter.Router, h *orders.Handlers) {
	router.POST("/api/orders", ratelim.RateLimit(middleware.Authenticate(h.CreateOrder)))
	router.GET("/api/my-orders", middleware.Authenticate(h.MyOrders))
	router.GET("/api/orders/:orderId/receipt", ratelim.RateLimit(middleware.Authenticate(h.Receipt)))
}

func AddWarehouseRoutes(router *httprouter.Router, h *warehouse.Handlers, hub *warehouse.Hub) {
	manager := func(next httprouter.Handle) httprouter.Handle {
		return middleware.Authenticate(middleware.RequireRole("warehouse-manager", next))
	}

	router.GET("/api/warehouse/orders", manager(h.ListOrders))
	router.GET("/api/warehouse/orders/:orderId", manager(h.GetOrder))
	router.GET("/api/warehouse/orders/:orderId/status", manager(h.OrderStatus))
	router.PATCH("/api/warehouse/orders/:orderId/status", ratelim.RateLimit(manager(h.UpdateStatus)))
	router.POST("/api/warehouse/orders/:orderId/assign", ratelim.RateLimit(manager(h.AssignOrder)))
	router.GET("/api/warehouse/users/:userId/orders", manager(h.CustomerOrders))
	router.GET("/api/warehouse/personnel", manager(h.ListPersonnel))
	router.GET("/api/warehouse/personnel/available", manager(h.AvailablePersonnel))
	router.GET("/api/warehouse/stats", manager(h.Stats))

	// Feed auth happens inside the upgrade handshake
	router.GET("/ws/warehouse", hub.ServeFeed)
}
