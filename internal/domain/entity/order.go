package entity

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden. No hay tabla de transiciones: cualquier
// estado puede suceder a cualquier otro, pero toda transición queda
// registrada en el historial.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderInProgress OrderStatus = "in_progress"
	OrderReady      OrderStatus = "ready"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid indica si el estado es uno de los admitidos.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderInProgress, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderItem línea de una orden. Los tags JSON definen el formato del blob
// `items` en la tabla y del cuerpo HTTP.
type OrderItem struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// StatusChange entrada del historial de estados (append-only).
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Notes     string      `json:"notes,omitempty"`
}

// Order orden de compra con número consecutivo mensual, historial de estados
// y adjuntos. StatusHistory y Attachments solo crecen; nunca se reordenan.
type Order struct {
	Base
	OrderNumber   string
	CustomerID    *int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Items         []OrderItem
	Total         decimal.Decimal
	Status        OrderStatus
	Notes         string
	Attachments   []string
	TrackingURL   string
	StatusHistory []StatusChange
}

// ItemsTotal suma de los subtotales de las líneas.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// LastStatusChange última entrada del historial, o nil si está vacío.
func (o *Order) LastStatusChange() *StatusChange {
	if len(o.StatusHistory) == 0 {
		return nil
	}
	return &o.StatusHistory[len(o.StatusHistory)-1]
}

const (
	orderNumberPrefix = "ORD"
	orderNumberSeqLen = 4
)

// FormatOrderNumber arma el número de orden: ORD + año (2 dígitos) +
// mes (2 dígitos) + consecutivo de 4 dígitos con ceros a la izquierda.
func FormatOrderNumber(t time.Time, seq int) string {
	return fmt.Sprintf("%s%02d%02d%0*d", orderNumberPrefix, t.Year()%100, int(t.Month()), orderNumberSeqLen, seq)
}

// OrderNumberPattern patrón SQL LIKE que agrupa los números del mes de t.
func OrderNumberPattern(t time.Time) string {
	return fmt.Sprintf("%s%02d%02d%%", orderNumberPrefix, t.Year()%100, int(t.Month()))
}

// NextOrderNumber calcula el siguiente número del mes a partir del último
// asignado. Con last vacío (primer número del mes) el consecutivo arranca en 1.
func NextOrderNumber(t time.Time, last string) string {
	seq := 1
	if len(last) >= orderNumberSeqLen {
		if n, err := strconv.Atoi(last[len(last)-orderNumberSeqLen:]); err == nil {
			seq = n + 1
		}
	}
	return FormatOrderNumber(t, seq)
}
