// Package validation valida los DTOs de producto y devuelve errores
// por campo, consumidos tal cual por los handlers.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"catalogo-productos/internal/models"
)

// Categorias es el conjunto permitido para el campo categoria.
// Un producto también puede no tener categoría (campo vacío).
var Categorias = []string{
	"Maquinaria",
	"Herramientas",
	"Semillas",
	"Fertilizantes",
	"Repuestos",
}

var validate = validator.New()

var categoriaOneOf = "omitempty,oneof=" + strings.Join(Categorias, " ")

// FieldError describe una falla de validación sobre un campo concreto.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateCreate valida el cuerpo de POST /products.
func ValidateCreate(dto *models.CreateProductDTO) []FieldError {
	var errs []FieldError

	if err := validate.Var(dto.Nombre, "required,min=2,max=100"); err != nil {
		errs = append(errs, FieldError{Field: "nombre", Message: "nombre es requerido (2 a 100 caracteres)"})
	}
	if err := validate.Var(dto.Descripcion, "omitempty,max=500"); err != nil {
		errs = append(errs, FieldError{Field: "descripcion", Message: "descripcion no puede superar 500 caracteres"})
	}
	if dto.Precio <= 0 {
		errs = append(errs, FieldError{Field: "precio", Message: "precio debe ser mayor a 0"})
	}
	if err := validate.Var(dto.Categoria, categoriaOneOf); err != nil {
		errs = append(errs, FieldError{Field: "categoria", Message: "categoria no reconocida"})
	}

	return errs
}

// ValidateUpdate valida el cuerpo de PUT /products/:id. Los campos
// ausentes no se validan; los presentes se validan con las mismas
// reglas que en la creación (precio > 0 incluido).
func ValidateUpdate(dto *models.UpdateProductDTO) []FieldError {
	var errs []FieldError

	if dto.Nombre != nil {
		if err := validate.Var(*dto.Nombre, "required,min=2,max=100"); err != nil {
			errs = append(errs, FieldError{Field: "nombre", Message: "nombre es requerido (2 a 100 caracteres)"})
		}
	}
	if dto.Descripcion != nil {
		if err := validate.Var(*dto.Descripcion, "omitempty,max=500"); err != nil {
			errs = append(errs, FieldError{Field: "descripcion", Message: "descripcion no puede superar 500 caracteres"})
		}
	}
	if dto.Precio != nil && *dto.Precio <= 0 {
		errs = append(errs, FieldError{Field: "precio", Message: "precio debe ser mayor a 0"})
	}
	if dto.Categoria != nil {
		if err := validate.Var(*dto.Categoria, categoriaOneOf); err != nil {
			errs = append(errs, FieldError{Field: "categoria", Message: "categoria no reconocida"})
		}
	}

	return errs
}
