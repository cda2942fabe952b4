package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
)

// CreateOrderRequest cuerpo de POST /api/orders. Total en nil se calcula
// como la suma de los subtotales de las líneas. Attachments no viene del
// cliente: lo completa el handler con las URLs de los archivos subidos en
// la misma petición multipart.
type CreateOrderRequest struct {
	CustomerID    *int64             `json:"customerId"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	CustomerPhone string             `json:"customerPhone"`
	Items         []entity.OrderItem `json:"items"`
	Total         *decimal.Decimal   `json:"total"`
	Notes         string             `json:"notes"`
	Attachments   []string           `json:"-"`
}

// UpdateOrderRequest cuerpo de PUT /api/orders/:id. Campos en nil no se
// tocan. No permite modificar número de orden, estado ni adjuntos; para eso
// existen las operaciones específicas.
type UpdateOrderRequest struct {
	CustomerName  *string             `json:"customerName"`
	CustomerEmail *string             `json:"customerEmail"`
	CustomerPhone *string             `json:"customerPhone"`
	Items         *[]entity.OrderItem `json:"items"`
	Total         *decimal.Decimal    `json:"total"`
	Notes         *string             `json:"notes"`
}

// UpdateOrderStatusRequest cuerpo de PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// OrderFilter filtros de igualdad para el listado.
type OrderFilter struct {
	Status     string `query:"status"`
	CustomerID int64  `query:"customerId"`
}

// OrderResponse representación pública de una orden.
type OrderResponse struct {
	ID            int64                 `json:"id"`
	OrderNumber   string                `json:"orderNumber"`
	CustomerID    *int64                `json:"customerId,omitempty"`
	CustomerName  string                `json:"customerName"`
	CustomerEmail string                `json:"customerEmail,omitempty"`
	CustomerPhone string                `json:"customerPhone"`
	Items         []entity.OrderItem    `json:"items"`
	Total         decimal.Decimal       `json:"total"`
	Status        entity.OrderStatus    `json:"status"`
	Notes         string                `json:"notes,omitempty"`
	Attachments   []string              `json:"attachments"`
	TrackingURL   string                `json:"trackingUrl"`
	StatusHistory []entity.StatusChange `json:"statusHistory"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}
