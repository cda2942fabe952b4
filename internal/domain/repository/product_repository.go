package repository

import (
	"context"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product.
type ProductRepository interface {
	Repository[entity.Product]
	FindByCategory(ctx context.Context, category string) ([]*entity.Product, error)
	// AdjustStock suma delta (puede ser negativo) al stock de una fila viva.
	// Devuelve nil si el producto no existe.
	AdjustStock(ctx context.Context, id int64, delta int) (*entity.Product, error)
}
