package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productMapping = Mapping[entity.Product]{
	Table:   "products",
	Columns: []string{"name", "description", "price", "stock", "category"},
	Values: func(p *entity.Product) ([]any, error) {
		return []any{p.Name, p.Description, p.Price, p.Stock, p.Category}, nil
	},
	Scan: func(row pgx.Row) (*entity.Product, error) {
		var p entity.Product
		err := row.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category,
			&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		return &p, nil
	},
}

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	*BaseRepo[entity.Product]
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{BaseRepo: NewBaseRepo(q, productMapping)}
}

// FindByCategory lista productos vivos de una categoría.
func (r *ProductRepo) FindByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE category = $1 AND deleted_at IS NULL",
		r.m.selectList(), r.m.Table,
	)
	rows, err := r.q.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// AdjustStock suma delta al stock de una fila viva en una sola sentencia.
// Devuelve nil si el producto no existe.
func (r *ProductRepo) AdjustStock(ctx context.Context, id int64, delta int) (*entity.Product, error) {
	query := fmt.Sprintf(
		"UPDATE %s SET stock = stock + $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL RETURNING %s",
		r.m.Table, r.m.selectList(),
	)
	p, err := r.m.Scan(r.q.QueryRow(ctx, query, id, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return p, nil
}
