package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"catalogo-productos/internal/auth"
	"catalogo-productos/internal/config"
	"catalogo-productos/internal/handlers"
	"catalogo-productos/internal/repository"
)

// RegisterRoutes cablea repositorio, handlers y middleware de forma
// explícita. /auth/token y /health son públicos; /products exige bearer.
func RegisterRoutes(router *gin.Engine, client *mongo.Client, cfg *config.Config) {
	db := client.Database(cfg.MongoDB)
	repo := repository.NewProductRepository(db.Collection("products"))
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	productHandler := handlers.NewProductHandler(repo)
	authHandler := handlers.NewAuthHandler(issuer)
	healthHandler := handlers.NewHealthHandler(client)

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", healthHandler.Health)
	router.POST("/auth/token", authHandler.IssueToken)

	products := router.Group("/products")
	products.Use(issuer.Middleware())
	{
		products.POST("", productHandler.CreateProduct)
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProductByID)
		products.PUT("/:id", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)
	}
}
