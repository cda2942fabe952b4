package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
)

func TestFormatOrderNumber_PrimeroDelMes(t *testing.T) {
	jan2024 := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "ORD24010001", entity.FormatOrderNumber(jan2024, 1))
	assert.Equal(t, "ORD24010002", entity.FormatOrderNumber(jan2024, 2))
}

func TestFormatOrderNumber_MesYAnioDosDigitos(t *testing.T) {
	dec2025 := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD25120001", entity.FormatOrderNumber(dec2025, 1))
}

func TestNextOrderNumber_Incrementa(t *testing.T) {
	jan2024 := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)

	// Sin número previo el consecutivo arranca en 1.
	assert.Equal(t, "ORD24010001", entity.NextOrderNumber(jan2024, ""))
	// Con número previo se suma uno al consecutivo.
	assert.Equal(t, "ORD24010002", entity.NextOrderNumber(jan2024, "ORD24010001"))
	assert.Equal(t, "ORD24010100", entity.NextOrderNumber(jan2024, "ORD24010099"))
}

func TestNextOrderNumber_CambioDeMesReinicia(t *testing.T) {
	// El consecutivo es mensual: en febrero no hay números con prefijo
	// ORD2402, así que el último leído es vacío y se reinicia.
	feb2024 := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD24020001", entity.NextOrderNumber(feb2024, ""))
}

func TestOrderNumberPattern(t *testing.T) {
	jan2024 := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD2401%", entity.OrderNumberPattern(jan2024))
}

func TestItemsTotal_SumaSubtotales(t *testing.T) {
	o := entity.Order{
		Items: []entity.OrderItem{
			{Subtotal: decimal.NewFromInt(100)},
			{Subtotal: decimal.NewFromInt(75)},
		},
	}
	assert.True(t, o.ItemsTotal().Equal(decimal.NewFromInt(175)))
}

func TestItemsTotal_SinItems(t *testing.T) {
	var o entity.Order
	assert.True(t, o.ItemsTotal().IsZero())
}

func TestOrderStatus_Valid(t *testing.T) {
	valid := []entity.OrderStatus{
		entity.OrderPending, entity.OrderConfirmed, entity.OrderInProgress,
		entity.OrderReady, entity.OrderDelivered, entity.OrderCancelled,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), "estado %q debe ser válido", s)
	}
	assert.False(t, entity.OrderStatus("shipped").Valid())
	assert.False(t, entity.OrderStatus("").Valid())
}

func TestLastStatusChange(t *testing.T) {
	var o entity.Order
	assert.Nil(t, o.LastStatusChange())

	o.StatusHistory = []entity.StatusChange{
		{Status: entity.OrderPending},
		{Status: entity.OrderConfirmed, Notes: "listo"},
	}
	last := o.LastStatusChange()
	assert.Equal(t, entity.OrderConfirmed, last.Status)
	assert.Equal(t, "listo", last.Notes)
}
