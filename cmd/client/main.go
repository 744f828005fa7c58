package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"catalogo-productos/internal/client/api"
	"catalogo-productos/internal/client/auth"
	"catalogo-productos/internal/client/cache"
	"catalogo-productos/internal/client/products"
	"catalogo-productos/internal/client/storage"
)

// logNotifier imprime las notificaciones de las mutaciones.
type logNotifier struct{}

func (logNotifier) Success(msg string) { log.Println("✅", msg) }
func (logNotifier) Error(msg string)   { log.Println("❌", msg) }

func main() {
	buscar := flag.String("buscar", "", "búsqueda libre sobre nombre, descripción y categoría")
	categoria := flag.String("categoria", "", "filtrar por categoría exacta")
	orden := flag.String("orden", "", "orden campo:direccion, ej. precio:desc")
	pagina := flag.Int("pagina", 1, "página a mostrar")
	flag.Parse()

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	tokens := storage.NewFileTokenStore(tokenPath())
	client := api.NewClient(baseURL, tokens)

	authVM := auth.NewViewModel(client, tokens)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := authVM.Initialize(ctx); err != nil {
		log.Fatal("❌ Authentication failed:", err)
	}
	authVM.StartWatch(time.Hour)
	defer authVM.StopWatch()

	listCache := cache.NewCache(5 * time.Minute)
	defer listCache.Stop()

	vm := products.NewViewModel(client, listCache, logNotifier{})
	vm.SetSearchQuery(*buscar)
	if *categoria != "" {
		vm.SetFilters(products.Filters{Categoria: *categoria})
	}
	if cfg := parseSort(*orden); cfg != nil {
		vm.SetSortConfig(cfg)
	}
	vm.SetCurrentPage(*pagina)

	view, err := vm.View(ctx)
	if err != nil {
		log.Fatal("❌ Could not load products:", err)
	}

	fmt.Printf("%-26s %-20s %-14s %s\n", "ID", "NOMBRE", "PRECIO", "CATEGORIA")
	for _, p := range view.Items {
		fmt.Printf("%-26s %-20s %-14s %s\n", p.ID, p.Nombre, products.FormatPrecio(p.Precio), p.Categoria)
	}
	fmt.Printf("\nPágina %d de %d (%d productos)\n",
		view.Pagination.CurrentPage, view.Pagination.TotalPages, view.Pagination.TotalItems)
}

func parseSort(raw string) *products.SortConfig {
	if raw == "" {
		return nil
	}
	parts := strings.SplitN(raw, ":", 2)
	cfg := &products.SortConfig{Field: products.SortField(parts[0]), Direction: products.SortAsc}
	if len(parts) == 2 && parts[1] == "desc" {
		cfg.Direction = products.SortDesc
	}
	return cfg
}

func tokenPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".catalogo_token.json"
	}
	return filepath.Join(dir, "catalogo-productos", "token.json")
}
