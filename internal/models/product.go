package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product representa un producto almacenado en la colección.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Nombre      string             `json:"nombre" bson:"nombre"`
	Descripcion string             `json:"descripcion,omitempty" bson:"descripcion,omitempty"`
	Precio      float64            `json:"precio" bson:"precio"`
	Categoria   string             `json:"categoria,omitempty" bson:"categoria,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateProductDTO es el cuerpo aceptado por POST /products.
type CreateProductDTO struct {
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion,omitempty"`
	Precio      float64 `json:"precio"`
	Categoria   string  `json:"categoria,omitempty"`
}

// UpdateProductDTO es el cuerpo aceptado por PUT /products/:id.
// Todos los campos son opcionales: solo los presentes se aplican.
type UpdateProductDTO struct {
	Nombre      *string  `json:"nombre,omitempty"`
	Descripcion *string  `json:"descripcion,omitempty"`
	Precio      *float64 `json:"precio,omitempty"`
	Categoria   *string  `json:"categoria,omitempty"`
}

// ProductResponse es la forma expuesta por la API.
type ProductResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion,omitempty"`
	Precio      float64 `json:"precio"`
	Categoria   string  `json:"categoria,omitempty"`
}

// ToDocument construye el documento a insertar a partir del DTO.
func (dto *CreateProductDTO) ToDocument() *Product {
	now := time.Now()
	return &Product{
		Nombre:      dto.Nombre,
		Descripcion: dto.Descripcion,
		Precio:      dto.Precio,
		Categoria:   dto.Categoria,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ToSet construye el $set parcial con los campos presentes en el DTO.
func (dto *UpdateProductDTO) ToSet() bson.M {
	set := bson.M{}
	if dto.Nombre != nil {
		set["nombre"] = *dto.Nombre
	}
	if dto.Descripcion != nil {
		set["descripcion"] = *dto.Descripcion
	}
	if dto.Precio != nil {
		set["precio"] = *dto.Precio
	}
	if dto.Categoria != nil {
		set["categoria"] = *dto.Categoria
	}
	return set
}

// ToResponse mapea el documento almacenado al DTO de respuesta.
func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{
		ID:          p.ID.Hex(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Categoria:   p.Categoria,
	}
}
