package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

var customerMapping = Mapping[entity.Customer]{
	Table:   "customers",
	Columns: []string{"name", "email", "phone", "address", "type", "tax_id", "status"},
	Values: func(c *entity.Customer) ([]any, error) {
		return []any{c.Name, c.Email, c.Phone, c.Address, c.Type, c.TaxID, c.Status}, nil
	},
	Scan: func(row pgx.Row) (*entity.Customer, error) {
		var c entity.Customer
		err := row.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Type, &c.TaxID, &c.Status,
			&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		return &c, nil
	},
}

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	*BaseRepo[entity.Customer]
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{BaseRepo: NewBaseRepo(q, customerMapping)}
}

// FindByEmail devuelve el cliente vivo con ese email, o nil si no existe.
func (r *CustomerRepo) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE email = $1 AND deleted_at IS NULL",
		r.m.selectList(), r.m.Table,
	)
	c, err := r.m.Scan(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by email: %w", err)
	}
	return c, nil
}

// FindByType lista clientes del tipo dado ordenados por nombre.
func (r *CustomerRepo) FindByType(ctx context.Context, t entity.CustomerType) ([]*entity.Customer, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE type = $1 AND deleted_at IS NULL ORDER BY name ASC",
		r.m.selectList(), r.m.Table,
	)
	rows, err := r.q.Query(ctx, query, t)
	if err != nil {
		return nil, fmt.Errorf("list customers by type: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// SearchByName busca por coincidencia parcial de nombre, case-insensitive.
func (r *CustomerRepo) SearchByName(ctx context.Context, term string) ([]*entity.Customer, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE name ILIKE $1 AND deleted_at IS NULL ORDER BY name ASC",
		r.m.selectList(), r.m.Table,
	)
	rows, err := r.q.Query(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// Statistics agrega totales por estado y tipo sobre filas vivas.
func (r *CustomerRepo) Statistics(ctx context.Context) (*entity.CustomerStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'active') AS active,
			COUNT(*) FILTER (WHERE status = 'inactive') AS inactive,
			COUNT(*) FILTER (WHERE type = 'individual') AS individual,
			COUNT(*) FILTER (WHERE type = 'business') AS business
		FROM customers
		WHERE deleted_at IS NULL`
	var stats entity.CustomerStats
	err := r.q.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Active, &stats.Inactive, &stats.Individual, &stats.Business,
	)
	if err != nil {
		return nil, fmt.Errorf("customer statistics: %w", err)
	}
	return &stats, nil
}
