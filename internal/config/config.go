package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// fallbackJWTSecret solo se usa en desarrollo local. En producción
// la ausencia de JWT_SECRET es un error fatal.
const fallbackJWTSecret = "dev-secret-change-me"

type Config struct {
	Port        string
	MongoURI    string
	MongoDB     string
	JWTSecret   string
	JWTTTL      time.Duration
	CORSOrigins []string
}

func LoadConfig() *Config {
	// Solo cargar .env en desarrollo local
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Error loading .env file:", err)
		} else {
			log.Println("✅ .env file loaded successfully")
		}
	} else {
		log.Println("🌐 Using system environment variables")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "catalogoProductos"),
		JWTSecret:   loadJWTSecret(),
		JWTTTL:      loadJWTTTL(),
		CORSOrigins: loadCORSOrigins(),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func loadJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("ENV") == "production" {
			log.Fatal("❌ CRITICAL: JWT_SECRET must be set in production environment")
		}
		log.Println("⚠️ WARNING: Using default JWT secret (development only)")
		return fallbackJWTSecret
	}
	return secret
}

func loadJWTTTL() time.Duration {
	ttl := 24 * time.Hour
	if v := os.Getenv("JWT_TTL"); v != "" {
		dur, err := time.ParseDuration(v)
		if err != nil || dur <= 0 {
			log.Printf("invalid JWT_TTL=%q, using default %s", v, ttl)
		} else {
			ttl = dur
		}
	}
	return ttl
}

func loadCORSOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:3000"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
