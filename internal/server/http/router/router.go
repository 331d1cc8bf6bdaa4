package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/stockease/internal/server/http/handlers"
	"github.com/polkiloo/stockease/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	deliveryHandler := handlers.NewDeliveryHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	authRequired := middleware.AuthRequired(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authRequired, authHandler.Logout)

	api.GET("/users/me", authRequired, authHandler.Me)
	api.PUT("/users/me", authRequired, authHandler.UpdateMe)

	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/bestsellers", productHandler.Bestsellers)
	products.GET("/:id", productHandler.Get)
	products.POST("", authRequired, productHandler.Create)
	products.PUT("/:id", authRequired, productHandler.Update)
	products.DELETE("/:id", authRequired, productHandler.Delete)

	cart := api.Group("/cart", authRequired)
	cart.GET("", cartHandler.List)
	cart.DELETE("", cartHandler.Clear)
	cart.GET("/summary", cartHandler.Summary)
	cart.POST("/items", cartHandler.Add)
	cart.PUT("/items/:id", cartHandler.Update)
	cart.DELETE("/items/:id", cartHandler.Remove)

	api.POST("/payment/preview", paymentHandler.Preview)

	orders := api.Group("/orders", authRequired)
	orders.POST("/checkout", orderHandler.Checkout)
	orders.GET("", orderHandler.List)
	orders.GET("/:number", orderHandler.Get)

	delivery := api.Group("/delivery")
	delivery.GET("/options", deliveryHandler.Options)
	delivery.GET("/track/:tracking", deliveryHandler.ByTracking)
	delivery.GET("/order/:number", authRequired, deliveryHandler.ByOrder)

	return engine
}
