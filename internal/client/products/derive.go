package products

import (
	"sort"
	"strings"
)

// ItemsPerPage es el tamaño de página fijo del listado.
const ItemsPerPage = 10

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortField nombra los campos ordenables del producto.
type SortField string

const (
	SortByNombre      SortField = "nombre"
	SortByDescripcion SortField = "descripcion"
	SortByPrecio      SortField = "precio"
	SortByCategoria   SortField = "categoria"
)

type SortConfig struct {
	Field     SortField
	Direction SortDirection
}

// Filters son las restricciones estructuradas del listado. Los campos
// en cero no restringen.
type Filters struct {
	Categoria string
	PriceMin  *float64
	PriceMax  *float64
}

func (f Filters) IsEmpty() bool {
	return f.Categoria == "" && f.PriceMin == nil && f.PriceMax == nil
}

// PaginationMeta se deriva del largo de la lista filtrada, no del
// listado crudo del servidor.
type PaginationMeta struct {
	CurrentPage  int
	TotalPages   int
	TotalItems   int
	ItemsPerPage int
	HasNext      bool
	HasPrevious  bool
}

// FilterProducts aplica la búsqueda libre (subcadena, sin distinguir
// mayúsculas, OR entre nombre, descripcion y categoria) y luego las
// restricciones estructuradas.
func FilterProducts(list []Product, query string, filters Filters) []Product {
	result := make([]Product, 0, len(list))

	q := strings.ToLower(strings.TrimSpace(query))
	for _, p := range list {
		if q != "" {
			if !strings.Contains(strings.ToLower(p.Nombre), q) &&
				!strings.Contains(strings.ToLower(p.Descripcion), q) &&
				!strings.Contains(strings.ToLower(p.Categoria), q) {
				continue
			}
		}
		if filters.Categoria != "" && p.Categoria != filters.Categoria {
			continue
		}
		if filters.PriceMin != nil && p.Precio < *filters.PriceMin {
			continue
		}
		if filters.PriceMax != nil && p.Precio > *filters.PriceMax {
			continue
		}
		result = append(result, p)
	}

	return result
}

// sortKey devuelve la clave de comparación del campo y si está
// definida. Los campos opcionales vacíos cuentan como indefinidos.
func sortKey(p Product, field SortField) (str string, num float64, defined, numeric bool) {
	switch field {
	case SortByNombre:
		return p.Nombre, 0, p.Nombre != "", false
	case SortByDescripcion:
		return p.Descripcion, 0, p.Descripcion != "", false
	case SortByCategoria:
		return p.Categoria, 0, p.Categoria != "", false
	case SortByPrecio:
		return "", p.Precio, true, true
	default:
		return "", 0, false, false
	}
}

// SortProducts devuelve una copia ordenada de forma estable. Los
// valores indefinidos quedan después de los definidos sin importar la
// dirección; esta solo invierte la comparación entre valores definidos.
func SortProducts(list []Product, cfg *SortConfig) []Product {
	result := make([]Product, len(list))
	copy(result, list)

	if cfg == nil {
		return result
	}

	sort.SliceStable(result, func(i, j int) bool {
		aStr, aNum, aDef, numeric := sortKey(result[i], cfg.Field)
		bStr, bNum, bDef, _ := sortKey(result[j], cfg.Field)

		if !aDef && !bDef {
			return false
		}
		if !aDef {
			return false
		}
		if !bDef {
			return true
		}

		var less bool
		if numeric {
			if aNum == bNum {
				return false
			}
			less = aNum < bNum
		} else {
			if aStr == bStr {
				return false
			}
			less = aStr < bStr
		}

		if cfg.Direction == SortDesc {
			return !less
		}
		return less
	})

	return result
}

// Paginate corta la ventana de la página actual y deriva la metadata
// del largo filtrado (pre-corte).
func Paginate(list []Product, currentPage, itemsPerPage int) ([]Product, PaginationMeta) {
	totalItems := len(list)
	totalPages := (totalItems + itemsPerPage - 1) / itemsPerPage

	meta := PaginationMeta{
		CurrentPage:  currentPage,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: itemsPerPage,
		HasNext:      currentPage < totalPages,
		HasPrevious:  currentPage > 1,
	}

	start := (currentPage - 1) * itemsPerPage
	if start >= totalItems {
		return []Product{}, meta
	}
	end := start + itemsPerPage
	if end > totalItems {
		end = totalItems
	}
	return list[start:end], meta
}
