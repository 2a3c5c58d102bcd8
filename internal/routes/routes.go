package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	"github.com/BruksfildServices01/shop-api/internal/config"
	"github.com/BruksfildServices01/shop-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/shop-api/internal/infra/repository"
	"github.com/BruksfildServices01/shop-api/internal/middleware"
	"github.com/BruksfildServices01/shop-api/internal/storage"
	ucOrder "github.com/BruksfildServices01/shop-api/internal/usecase/order"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	st storage.Storage,
	checkout handlers.CheckoutClient,
) {
	// ------------------------------
	// INFRA (SINGLETONS)
	// ------------------------------
	cleaner := storage.NewCleaner(st)
	listCache := cache.New(cfg.RedisURL)
	orderRepo := infraRepo.NewOrderGormRepository(db)

	// ------------------------------
	// USE CASES — ORDERS
	// ------------------------------
	createOrderUC := ucOrder.NewCreateOrder(orderRepo)
	updateOrderUC := ucOrder.NewUpdateOrder(orderRepo)

	// ------------------------------
	// HANDLERS
	// ------------------------------
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	categoryHandler := handlers.NewCategoryHandler(db, listCache)
	productHandler := handlers.NewProductHandler(db, cfg, st, cleaner, listCache)
	orderHandler := handlers.NewOrderHandler(db, createOrderUC, updateOrderUC, checkout)

	auth := middleware.AuthMiddleware(cfg)

	// ------------------------------
	// USERS
	// ------------------------------
	users := r.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/signin", authHandler.Login)
		users.GET("", auth, userHandler.List)
		users.GET("/me", auth, userHandler.Me)
	}

	// ------------------------------
	// CATEGORIES
	// ------------------------------
	categories := r.Group("/categories")
	{
		categories.POST("", auth, categoryHandler.Create)
		categories.PUT("/:id", auth, categoryHandler.Update)
		categories.DELETE("/:id", auth, categoryHandler.Delete)
		categories.GET("/:id", categoryHandler.GetByID)
		categories.GET("", categoryHandler.List)
	}

	// ------------------------------
	// PRODUCTS
	// ------------------------------
	products := r.Group("/products")
	{
		products.POST("", auth, productHandler.Create)
		products.PUT("/:id", auth, productHandler.Update)
		products.DELETE("/:id", auth, productHandler.Delete)
		products.GET("/:id", productHandler.GetByID)
		products.GET("", productHandler.List)
	}

	// ------------------------------
	// ORDERS
	// ------------------------------
	orders := r.Group("/orders", auth)
	{
		orders.POST("", orderHandler.Create)
		orders.PUT("/:id", orderHandler.Update)
		orders.DELETE("/:id", orderHandler.Delete)
		orders.GET("/:id", orderHandler.GetByID)
		// gin refuses the static segment "users" next to the ":id"
		// wildcard, so /orders/users/:userId is matched through a
		// second wildcard and guarded inside the handler.
		orders.GET("/:id/:userId", orderHandler.ListByUser)
		orders.GET("", orderHandler.List)
		orders.POST("/:id/checkout", orderHandler.Checkout)
	}
}
