package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/shop-api/internal/config"
	dbpkg "github.com/BruksfildServices01/shop-api/internal/db"
	"github.com/BruksfildServices01/shop-api/internal/handlers"
	"github.com/BruksfildServices01/shop-api/internal/middleware"
	"github.com/BruksfildServices01/shop-api/internal/payments"
	"github.com/BruksfildServices01/shop-api/internal/routes"
	"github.com/BruksfildServices01/shop-api/internal/storage"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	st, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}

	var checkout handlers.CheckoutClient
	if cfg.MPAccessToken != "" {
		mp, err := payments.New(cfg.MPAccessToken, cfg.CurrencyID)
		if err != nil {
			log.Println("payments disabled:", err)
		} else {
			checkout = mp
		}
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"products":   "/products",
			"categories": "/categories",
			"orders":     "/orders",
			"users":      "/users",
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.StorageBackend == "" || cfg.StorageBackend == "local" {
		r.Static(storage.PublicPath, cfg.UploadDir)
	}

	routes.RegisterRoutes(r, db, cfg, st, checkout)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
