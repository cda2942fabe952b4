package usecase

import (
	"context"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
)

// Notifier envía avisos al cliente como efecto secundario best-effort: el
// resultado es un bool ignorable y un fallo jamás revierte la operación que
// lo disparó (solo se registra en el log).
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order *entity.Order) bool
	SendStatusUpdate(ctx context.Context, order *entity.Order, previous entity.OrderStatus) bool
}
