// Package products implementa el view-model de productos: deriva el
// listado visible (búsqueda, filtros, orden, paginación) a partir de
// la caché de servidor y el estado local de UI, y ejecuta mutaciones
// con actualización optimista en la creación.
package products

import (
	"context"
	"errors"
	"time"

	"catalogo-productos/internal/client/api"
	"catalogo-productos/internal/client/cache"
	"catalogo-productos/internal/client/state"
	"catalogo-productos/internal/models"
)

// NoCategory es el valor centinela del formulario para "sin categoría";
// se normaliza a vacío antes de enviar al servidor.
const NoCategory = "no-category"

const (
	listCacheKey    = "products:list"
	listCachePrefix = "products:"
	listCacheTTL    = 5 * time.Minute
)

// Notifier recibe las notificaciones de éxito y error de las mutaciones.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// UIState es el estado local efímero del listado.
type UIState struct {
	SearchQuery     string
	Filters         Filters
	SortConfig      *SortConfig
	CurrentPage     int
	SelectedProduct *Product
}

// View es el resultado derivado que consume la presentación.
type View struct {
	Items      []Product
	Pagination PaginationMeta
}

type ViewModel struct {
	api      *api.Client
	cache    *cache.Cache
	store    *state.Store[UIState]
	notifier Notifier
}

func NewViewModel(client *api.Client, c *cache.Cache, notifier Notifier) *ViewModel {
	return &ViewModel{
		api:      client,
		cache:    c,
		store:    state.NewStore(UIState{CurrentPage: 1}),
		notifier: notifier,
	}
}

// State devuelve el snapshot del estado de UI.
func (vm *ViewModel) State() UIState {
	return vm.store.Snapshot()
}

// Subscribe registra un callback de cambio de estado de UI.
func (vm *ViewModel) Subscribe(fn func(UIState)) (unsubscribe func()) {
	return vm.store.Subscribe(fn)
}

// rawList devuelve la lista cruda cacheada, consultando al servidor
// solo cuando la caché está vacía o invalidada.
func (vm *ViewModel) rawList(ctx context.Context) ([]Product, error) {
	if cached, ok := vm.cache.Get(listCacheKey); ok {
		if list, ok := cached.([]Product); ok {
			return list, nil
		}
	}

	responses, err := vm.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	list := fromResponses(responses)
	vm.cache.SetWithTTL(listCacheKey, list, listCacheTTL)
	return list, nil
}

// View recalcula el listado visible: filtro de texto, filtros
// estructurados, orden estable y paginación, en ese orden.
func (vm *ViewModel) View(ctx context.Context) (*View, error) {
	raw, err := vm.rawList(ctx)
	if err != nil {
		return nil, err
	}

	ui := vm.store.Snapshot()
	filtered := FilterProducts(raw, ui.SearchQuery, ui.Filters)
	sorted := SortProducts(filtered, ui.SortConfig)
	items, meta := Paginate(sorted, ui.CurrentPage, ItemsPerPage)

	return &View{Items: items, Pagination: meta}, nil
}

// Refresh descarta la caché para forzar una recarga desde el servidor.
func (vm *ViewModel) Refresh() {
	vm.cache.DeleteByPrefix(listCachePrefix)
}

// --- Estado de UI ---
// Cambiar búsqueda, filtros u orden vuelve a la página 1: conservar la
// posición con otro conjunto visible dejaría páginas fuera de rango.

func (vm *ViewModel) SetSearchQuery(query string) {
	vm.store.Update(func(s UIState) UIState {
		s.SearchQuery = query
		s.CurrentPage = 1
		return s
	})
}

func (vm *ViewModel) SetFilters(filters Filters) {
	vm.store.Update(func(s UIState) UIState {
		s.Filters = filters
		s.CurrentPage = 1
		return s
	})
}

func (vm *ViewModel) ClearFilters() {
	vm.store.Update(func(s UIState) UIState {
		s.Filters = Filters{}
		s.SearchQuery = ""
		s.CurrentPage = 1
		return s
	})
}

func (vm *ViewModel) SetSortConfig(cfg *SortConfig) {
	vm.store.Update(func(s UIState) UIState {
		s.SortConfig = cfg
		s.CurrentPage = 1
		return s
	})
}

func (vm *ViewModel) SetCurrentPage(page int) {
	if page < 1 {
		page = 1
	}
	vm.store.Update(func(s UIState) UIState {
		s.CurrentPage = page
		return s
	})
}

func (vm *ViewModel) SetSelectedProduct(p *Product) {
	vm.store.Update(func(s UIState) UIState {
		s.SelectedProduct = p
		return s
	})
}

// --- Mutaciones ---

func normalizeCategoria(categoria string) string {
	if categoria == NoCategory {
		return ""
	}
	return categoria
}

// errorMessage prefiere el mensaje del servidor y cae al texto fijo.
func errorMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// CreateProduct inserta un placeholder pendiente al frente de la lista
// cacheada antes del viaje al servidor. Al resolver, con éxito o no,
// retira el placeholder e invalida la caché: la entidad autoritativa
// llega con la recarga. Las fallas se notifican y se propagan.
func (vm *ViewModel) CreateProduct(ctx context.Context, dto models.CreateProductDTO) (*models.ProductResponse, error) {
	dto.Categoria = normalizeCategoria(dto.Categoria)

	temp := Product{
		ID:          PendingID(),
		Nombre:      dto.Nombre,
		Descripcion: dto.Descripcion,
		Precio:      dto.Precio,
		Categoria:   dto.Categoria,
	}
	vm.addToCachedList(temp)

	created, err := vm.api.CreateProduct(ctx, dto)

	vm.removeFromCachedList(temp.ID)
	vm.cache.DeleteByPrefix(listCachePrefix)

	if err != nil {
		vm.notifier.Error(errorMessage(err, "Error al crear el producto"))
		return nil, err
	}

	vm.notifier.Success("Producto creado exitosamente")
	return created, nil
}

// UpdateProduct no muta la entidad cacheada de forma optimista: el
// cambio se refleja recién con la confirmación del servidor, vía
// invalidación de caché. Ante una falla la entidad queda como estaba.
func (vm *ViewModel) UpdateProduct(ctx context.Context, id string, dto models.UpdateProductDTO) (*models.ProductResponse, error) {
	if dto.Categoria != nil {
		normalized := normalizeCategoria(*dto.Categoria)
		dto.Categoria = &normalized
	}

	updated, err := vm.api.UpdateProduct(ctx, id, dto)
	if err != nil {
		vm.notifier.Error(errorMessage(err, "Error al actualizar el producto"))
		return nil, err
	}

	vm.cache.DeleteByPrefix(listCachePrefix)
	vm.notifier.Success("Producto actualizado exitosamente")
	return updated, nil
}

// DeleteProduct elimina en el servidor; con éxito invalida la caché y
// limpia la selección si apuntaba al producto borrado. Ante una falla
// no remueve nada localmente.
func (vm *ViewModel) DeleteProduct(ctx context.Context, id string) error {
	if err := vm.api.DeleteProduct(ctx, id); err != nil {
		vm.notifier.Error(errorMessage(err, "Error al eliminar el producto"))
		return err
	}

	vm.cache.DeleteByPrefix(listCachePrefix)
	vm.store.Update(func(s UIState) UIState {
		if s.SelectedProduct != nil && s.SelectedProduct.ID.String() == id {
			s.SelectedProduct = nil
		}
		return s
	})

	vm.notifier.Success("Producto eliminado exitosamente")
	return nil
}

func (vm *ViewModel) addToCachedList(p Product) {
	var current []Product
	if cached, ok := vm.cache.Get(listCacheKey); ok {
		if list, ok := cached.([]Product); ok {
			current = list
		}
	}
	next := make([]Product, 0, len(current)+1)
	next = append(next, p)
	next = append(next, current...)
	vm.cache.SetWithTTL(listCacheKey, next, listCacheTTL)
}

func (vm *ViewModel) removeFromCachedList(id EntityID) {
	cached, ok := vm.cache.Get(listCacheKey)
	if !ok {
		return
	}
	list, ok := cached.([]Product)
	if !ok {
		return
	}
	next := make([]Product, 0, len(list))
	for _, p := range list {
		if p.ID != id {
			next = append(next, p)
		}
	}
	vm.cache.SetWithTTL(listCacheKey, next, listCacheTTL)
}
