package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogo-productos/internal/models"
	"catalogo-productos/internal/repository"
	"catalogo-productos/internal/validation"
)

// ProductStore es la superficie del repositorio que consumen los handlers.
type ProductStore interface {
	Create(ctx context.Context, dto *models.CreateProductDTO) (*models.Product, error)
	FindAll(ctx context.Context) ([]*models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, id string, dto *models.UpdateProductDTO) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductHandler struct {
	store ProductStore
}

func NewProductHandler(store ProductStore) *ProductHandler {
	return &ProductHandler{store: store}
}

type ErrorResponse struct {
	Message string                  `json:"message"`
	Details []validation.FieldError `json:"details,omitempty"`
}

func notFoundMessage(id string) string {
	return fmt.Sprintf("Producto con ID %s no encontrado", id)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var dto models.CreateProductDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Cuerpo de la petición inválido"})
		return
	}

	if errs := validation.ValidateCreate(&dto); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Datos de producto inválidos", Details: errs})
		return
	}

	product, err := h.store.Create(c.Request.Context(), &dto)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "No se pudo crear el producto"})
		return
	}

	c.JSON(http.StatusCreated, product.ToResponse())
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.store.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "No se pudieron obtener los productos"})
		return
	}

	responses := make([]models.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, p.ToResponse())
	}

	c.JSON(http.StatusOK, responses)
}

// GET /products/:id
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id := c.Param("id")

	product, err := h.store.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Message: notFoundMessage(id)})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Error al obtener el producto"})
		return
	}

	c.JSON(http.StatusOK, product.ToResponse())
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var dto models.UpdateProductDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Cuerpo de la petición inválido"})
		return
	}

	if errs := validation.ValidateUpdate(&dto); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Datos de producto inválidos", Details: errs})
		return
	}

	product, err := h.store.Update(c.Request.Context(), id, &dto)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Message: notFoundMessage(id)})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "No se pudo actualizar el producto"})
		return
	}

	c.JSON(http.StatusOK, product.ToResponse())
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Message: notFoundMessage(id)})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "No se pudo eliminar el producto"})
		return
	}

	c.Status(http.StatusNoContent)
}
