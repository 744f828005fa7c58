package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"catalogo-productos/internal/models"
	"catalogo-productos/internal/repository"
)

// fakeStore implementa ProductStore sobre un mapa en memoria.
type fakeStore struct {
	products map[string]*models.Product
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[string]*models.Product)}
}

func (f *fakeStore) Create(_ context.Context, dto *models.CreateProductDTO) (*models.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p := dto.ToDocument()
	p.ID = primitive.NewObjectID()
	f.products[p.ID.Hex()] = p
	return p, nil
}

func (f *fakeStore) FindAll(_ context.Context) ([]*models.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]*models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeStore) Update(_ context.Context, id string, dto *models.UpdateProductDTO) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	if dto.Nombre != nil {
		p.Nombre = *dto.Nombre
	}
	if dto.Descripcion != nil {
		p.Descripcion = *dto.Descripcion
	}
	if dto.Precio != nil {
		p.Precio = *dto.Precio
	}
	if dto.Categoria != nil {
		p.Categoria = *dto.Categoria
	}
	return p, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func productRouter(store ProductStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProductHandler(store)
	router := gin.New()
	router.POST("/products", h.CreateProduct)
	router.GET("/products", h.GetProducts)
	router.GET("/products/:id", h.GetProductByID)
	router.PUT("/products/:id", h.UpdateProduct)
	router.DELETE("/products/:id", h.DeleteProduct)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateProduct(t *testing.T) {
	store := newFakeStore()
	router := productRouter(store)

	w := doJSON(t, router, http.MethodPost, "/products", models.CreateProductDTO{
		Nombre: "Arado",
		Precio: 100,
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Arado", resp.Nombre)
	assert.Equal(t, float64(100), resp.Precio)
	assert.Len(t, store.products, 1)
}

func TestCreateProductRejectsInvalidPrecio(t *testing.T) {
	store := newFakeStore()
	router := productRouter(store)

	w := doJSON(t, router, http.MethodPost, "/products", models.CreateProductDTO{
		Nombre: "Arado",
		Precio: 0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "precio")
	// Nada persistido tras un rechazo de validación.
	assert.Empty(t, store.products)
}

func TestCreateProductRejectsEmptyNombre(t *testing.T) {
	store := newFakeStore()
	router := productRouter(store)

	w := doJSON(t, router, http.MethodPost, "/products", models.CreateProductDTO{
		Precio: 50,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.products)
}

func TestGetProducts(t *testing.T) {
	store := newFakeStore()
	router := productRouter(store)

	doJSON(t, router, http.MethodPost, "/products", models.CreateProductDTO{Nombre: "Arado", Precio: 100})
	doJSON(t, router, http.MethodPost, "/products", models.CreateProductDTO{Nombre: "Tractor", Precio: 5000})

	w := doJSON(t, router, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []models.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestGetProductByIDNotFound(t *testing.T) {
	router := productRouter(newFakeStore())

	id := primitive.NewObjectID().Hex()
	w := doJSON(t, router, http.MethodGet, "/products/"+id, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Producto con ID "+id+" no encontrado")
}

func TestUpdateProductPartial(t *testing.T) {
	store := newFakeStore()
	router := productRouter(store)

	w := doJSON(t, router, http.MethodPost, "/products", models.CreateProductDTO{Nombre: "Arado", Precio: 100})
	var created models.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	nombre := "Arado reforzado"
	w = doJSON(t, router, http.MethodPut, "/products/"+created.ID, models.UpdateProductDTO{Nombre: &nombre})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Arado reforzado", updated.Nombre)
	// precio omitido queda intacto
	assert.Equal(t, float64(100), updated.Precio)
}

func TestUpdateProductRejectsPrecioCero(t *testing.T) {
	store := newFakeStore()
	router := productRouter(store)

	w := doJSON(t, router, http.MethodPost, "/products", models.CreateProductDTO{Nombre: "Arado", Precio: 100})
	var created models.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	precio := 0.0
	w = doJSON(t, router, http.MethodPut, "/products/"+created.ID, models.UpdateProductDTO{Precio: &precio})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, float64(100), store.products[created.ID].Precio)
}

func TestUpdateProductNotFound(t *testing.T) {
	router := productRouter(newFakeStore())

	nombre := "Nuevo"
	id := primitive.NewObjectID().Hex()
	w := doJSON(t, router, http.MethodPut, "/products/"+id, models.UpdateProductDTO{Nombre: &nombre})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	store := newFakeStore()
	router := productRouter(store)

	w := doJSON(t, router, http.MethodPost, "/products", models.CreateProductDTO{Nombre: "Arado", Precio: 100})
	var created models.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, http.MethodDelete, "/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// get tras delete siempre es 404
	w = doJSON(t, router, http.MethodGet, "/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProductsStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.failWith = context.DeadlineExceeded
	router := productRouter(store)

	w := doJSON(t, router, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDeleteProductNotFound(t *testing.T) {
	router := productRouter(newFakeStore())

	w := doJSON(t, router, http.MethodDelete, "/products/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
