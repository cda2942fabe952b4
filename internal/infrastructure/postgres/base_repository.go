package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

// Querier subconjunto común de *pgxpool.Pool y pgx.Tx que usan los
// repositorios; permite atar un mismo repositorio a un pool o a una
// transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Mapping enlace estático entidad↔tabla: nombre de la tabla, columnas
// mutables en orden de inserción, el binder de valores (serializa blobs
// JSON) y el scanner de fila. El scanner recibe la fila con el orden
// id, Columns..., created_at, updated_at, deleted_at.
type Mapping[T any] struct {
	Table   string
	Columns []string
	Values  func(e *T) ([]any, error)
	Scan    func(row pgx.Row) (*T, error)
}

func (m Mapping[T]) selectList() string {
	return "id, " + strings.Join(m.Columns, ", ") + ", created_at, updated_at, deleted_at"
}

func (m Mapping[T]) hasColumn(name string) bool {
	for _, c := range m.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// BaseRepo implementa repository.Repository[T] sobre una tabla con borrado
// lógico. Cada operación es un único viaje a la base; no abre transacciones.
type BaseRepo[T any] struct {
	q Querier
	m Mapping[T]
}

// NewBaseRepo construye el repositorio genérico. Pasar pool o tx (Querier).
func NewBaseRepo[T any](q Querier, m Mapping[T]) *BaseRepo[T] {
	return &BaseRepo[T]{q: q, m: m}
}

// FindAll lista filas vivas con filtros de igualdad conjuntivos, ordenadas
// por created_at descendente. Rechaza columnas fuera del mapeo estático.
func (r *BaseRepo[T]) FindAll(ctx context.Context, filters ...repository.Field) ([]*T, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s WHERE deleted_at IS NULL", r.m.selectList(), r.m.Table)
	args := make([]any, 0, len(filters))
	for _, f := range filters {
		if !r.m.hasColumn(f.Column) {
			return nil, fmt.Errorf("filter on unknown column %q", f.Column)
		}
		args = append(args, f.Value)
		fmt.Fprintf(&sb, " AND %s = $%d", f.Column, len(args))
	}
	sb.WriteString(" ORDER BY created_at DESC")

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", r.m.Table, err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// FindByID devuelve la fila viva con ese id, o nil si no existe.
func (r *BaseRepo[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND deleted_at IS NULL", r.m.selectList(), r.m.Table)
	e, err := r.m.Scan(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.m.Table, err)
	}
	return e, nil
}

// Create inserta todas las columnas mapeadas, estampa created_at/updated_at
// y devuelve la fila persistida con el id asignado por la base.
func (r *BaseRepo[T]) Create(ctx context.Context, e *T) (*T, error) {
	vals, err := r.m.Values(e)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", r.m.Table, err)
	}
	placeholders := make([]string, len(vals))
	for i := range vals {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s, created_at, updated_at) VALUES (%s, NOW(), NOW()) RETURNING %s",
		r.m.Table, strings.Join(r.m.Columns, ", "), strings.Join(placeholders, ", "), r.m.selectList(),
	)
	created, err := r.m.Scan(r.q.QueryRow(ctx, query, vals...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("insert %s: %w", r.m.Table, errDuplicate(err))
		}
		return nil, fmt.Errorf("insert %s: %w", r.m.Table, err)
	}
	return created, nil
}

// Update aplica un parche parcial sobre una fila viva y devuelve la fila
// resultante, o nil si no existe. El id nunca se toca.
func (r *BaseRepo[T]) Update(ctx context.Context, id int64, patch []repository.Field) (*T, error) {
	set := make([]string, 0, len(patch)+1)
	args := make([]any, 0, len(patch)+1)
	args = append(args, id)
	for _, f := range patch {
		if f.Column == "id" || !r.m.hasColumn(f.Column) {
			return nil, fmt.Errorf("patch on unknown column %q", f.Column)
		}
		args = append(args, f.Value)
		set = append(set, fmt.Sprintf("%s = $%d", f.Column, len(args)))
	}
	set = append(set, "updated_at = NOW()")
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $1 AND deleted_at IS NULL RETURNING %s",
		r.m.Table, strings.Join(set, ", "), r.m.selectList(),
	)
	updated, err := r.m.Scan(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("update %s: %w", r.m.Table, errDuplicate(err))
		}
		return nil, fmt.Errorf("update %s: %w", r.m.Table, err)
	}
	return updated, nil
}

// SoftDelete estampa deleted_at en una fila viva.
func (r *BaseRepo[T]) SoftDelete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("UPDATE %s SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL", r.m.Table)
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("soft delete %s: %w", r.m.Table, err)
	}
	return tag.RowsAffected() > 0, nil
}

// HardDelete elimina físicamente la fila, viva o no.
func (r *BaseRepo[T]) HardDelete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.m.Table)
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("hard delete %s: %w", r.m.Table, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BaseRepo[T]) collect(rows pgx.Rows) ([]*T, error) {
	var list []*T
	for rows.Next() {
		e, err := r.m.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.m.Table, err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
