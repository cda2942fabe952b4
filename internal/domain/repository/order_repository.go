package repository

import (
	"context"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
)

// OrderRepository puerto de persistencia para Order. Create asigna el número
// de orden consecutivo del mes, siembra el historial con el estado pending y
// deriva la URL de seguimiento; el resto de métodos operan solo sobre filas
// vivas.
//
// La asignación del consecutivo y los métodos de lectura-luego-escritura
// (UpdateStatus, AddAttachment) son dos viajes a la base sin aislamiento:
// creaciones concurrentes pueden competir por el mismo consecutivo y una
// escritura intermedia puede perderse (last-write-wins). Limitación asumida
// del diseño, documentada en DESIGN.md.
type OrderRepository interface {
	Repository[entity.Order]
	// UpdateStatus agrega la transición al historial y persiste estado e
	// historial en una sola sentencia. Devuelve nil si la orden no existe.
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, notes string) (*entity.Order, error)
	// AddAttachment agrega la URL al final de los adjuntos. Devuelve nil si
	// la orden no existe.
	AddAttachment(ctx context.Context, id int64, fileURL string) (*entity.Order, error)
	// FindByOrderNumber lookup público de seguimiento; nil si no existe.
	FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	FindByCustomer(ctx context.Context, customerID int64) ([]*entity.Order, error)
	FindByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error)
}
