package products

import (
	"github.com/google/uuid"

	"catalogo-productos/internal/models"
)

// EntityID distingue a nivel de tipo entre una entidad confirmada por
// el servidor y un placeholder optimista pendiente de confirmación.
type EntityID struct {
	value   string
	pending bool
}

// ConfirmedID envuelve un id asignado por el servidor.
func ConfirmedID(id string) EntityID {
	return EntityID{value: id}
}

// PendingID genera un id temporal para un placeholder optimista.
func PendingID() EntityID {
	return EntityID{value: uuid.NewString(), pending: true}
}

func (id EntityID) String() string { return id.value }

func (id EntityID) IsPending() bool { return id.pending }

// Product es la entidad que maneja el view-model.
type Product struct {
	ID          EntityID
	Nombre      string
	Descripcion string
	Precio      float64
	Categoria   string
}

func fromResponse(r models.ProductResponse) Product {
	return Product{
		ID:          ConfirmedID(r.ID),
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		Precio:      r.Precio,
		Categoria:   r.Categoria,
	}
}

func fromResponses(rs []models.ProductResponse) []Product {
	out := make([]Product, 0, len(rs))
	for _, r := range rs {
		out = append(out, fromResponse(r))
	}
	return out
}
