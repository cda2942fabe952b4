package repository

import (
	"context"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
)

// CustomerRepository puerto de persistencia para Customer.
type CustomerRepository interface {
	Repository[entity.Customer]
	// FindByEmail devuelve el cliente vivo con ese email, o nil si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)
	// FindByType lista clientes del tipo dado ordenados por nombre.
	FindByType(ctx context.Context, t entity.CustomerType) ([]*entity.Customer, error)
	// SearchByName busca por coincidencia parcial de nombre (case-insensitive).
	SearchByName(ctx context.Context, term string) ([]*entity.Customer, error)
	// Statistics agrega totales por estado y tipo sobre filas vivas.
	Statistics(ctx context.Context) (*entity.CustomerStats, error)
}
