package main

import (
	"log"

	"catalogo-productos/internal/config"
	"catalogo-productos/internal/database"
	"catalogo-productos/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	client := database.Connect(cfg.MongoURI)

	router := gin.Default()
	routes.RegisterRoutes(router, client, cfg)

	log.Println("🚀 Server running on port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("❌ Server stopped:", err)
	}
}
