package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

var orderMapping = Mapping[entity.Order]{
	Table: "orders",
	Columns: []string{
		"order_number", "customer_id", "customer_name", "customer_email",
		"customer_phone", "items", "total", "status", "notes", "attachments",
		"tracking_url", "status_history",
	},
	Values: func(o *entity.Order) ([]any, error) {
		items, err := marshalBlob(o.Items, "[]")
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		attachments, err := marshalBlob(o.Attachments, "[]")
		if err != nil {
			return nil, fmt.Errorf("attachments: %w", err)
		}
		history, err := marshalBlob(o.StatusHistory, "[]")
		if err != nil {
			return nil, fmt.Errorf("status history: %w", err)
		}
		return []any{
			o.OrderNumber, o.CustomerID, o.CustomerName, o.CustomerEmail,
			o.CustomerPhone, items, o.Total, o.Status, o.Notes, attachments,
			o.TrackingURL, history,
		}, nil
	},
	Scan: func(row pgx.Row) (*entity.Order, error) {
		var (
			o           entity.Order
			items       []byte
			attachments []byte
			history     []byte
		)
		err := row.Scan(
			&o.ID, &o.OrderNumber, &o.CustomerID, &o.CustomerName, &o.CustomerEmail,
			&o.CustomerPhone, &items, &o.Total, &o.Status, &o.Notes, &attachments,
			&o.TrackingURL, &history,
			&o.CreatedAt, &o.UpdatedAt, &o.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := unmarshalBlob(items, &o.Items); err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		if err := unmarshalBlob(attachments, &o.Attachments); err != nil {
			return nil, fmt.Errorf("attachments: %w", err)
		}
		if err := unmarshalBlob(history, &o.StatusHistory); err != nil {
			return nil, fmt.Errorf("status history: %w", err)
		}
		return &o, nil
	},
}

// marshalBlob serializa un sub-campo estructurado a JSON; con v vacío usa el
// literal indicado para no guardar NULL.
func marshalBlob(v any, empty string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(data) == "null" {
		return empty, nil
	}
	return string(data), nil
}

func unmarshalBlob(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}

// OrderRepo implementación de OrderRepository. Extiende el repositorio
// genérico con la asignación del número de orden, el historial de estados y
// los adjuntos.
type OrderRepo struct {
	*BaseRepo[entity.Order]
	appURL string
}

// NewOrderRepository construye el adaptador. appURL es la URL pública base
// de la que se deriva el tracking URL.
func NewOrderRepository(q Querier, appURL string) *OrderRepo {
	return &OrderRepo{
		BaseRepo: NewBaseRepo(q, orderMapping),
		appURL:   strings.TrimRight(appURL, "/"),
	}
}

// Create asigna el consecutivo del mes, siembra el historial con el estado
// pending y deriva el tracking URL antes de insertar.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) (*entity.Order, error) {
	now := time.Now()
	number, err := r.nextOrderNumber(ctx, now)
	if err != nil {
		return nil, err
	}
	o.OrderNumber = number
	o.Status = entity.OrderPending
	o.TrackingURL = fmt.Sprintf("%s/track/%s", r.appURL, number)
	o.StatusHistory = []entity.StatusChange{{
		Status:    entity.OrderPending,
		Timestamp: now,
		Notes:     "Orden creada",
	}}
	return r.BaseRepo.Create(ctx, o)
}

// nextOrderNumber lee el último número del mes y suma uno. Son dos viajes a
// la base sin aislamiento: dos creaciones concurrentes pueden calcular el
// mismo consecutivo; el índice único sobre order_number hace fallar a la
// segunda en lugar de duplicar el número.
func (r *OrderRepo) nextOrderNumber(ctx context.Context, now time.Time) (string, error) {
	query := `
		SELECT order_number FROM orders
		WHERE order_number LIKE $1
		ORDER BY created_at DESC
		LIMIT 1`
	var last string
	err := r.q.QueryRow(ctx, query, entity.OrderNumberPattern(now)).Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.FormatOrderNumber(now, 1), nil
		}
		return "", fmt.Errorf("last order number: %w", err)
	}
	return entity.NextOrderNumber(now, last), nil
}

// UpdateStatus agrega la transición al historial y persiste estado e
// historial en una sola sentencia. Devuelve nil si la orden no existe.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, notes string) (*entity.Order, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	history := append(current.StatusHistory, entity.StatusChange{
		Status:    status,
		Timestamp: time.Now(),
		Notes:     notes,
	})
	data, err := marshalBlob(history, "[]")
	if err != nil {
		return nil, fmt.Errorf("status history: %w", err)
	}
	query := fmt.Sprintf(`
		UPDATE %s SET status = $2, status_history = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING %s`, r.m.Table, r.m.selectList())
	o, err := r.m.Scan(r.q.QueryRow(ctx, query, id, status, data))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}

// AddAttachment agrega la URL al final de los adjuntos existentes.
// Lectura-luego-escritura sin aislamiento: una subida concurrente puede
// perderse (last-write-wins). Devuelve nil si la orden no existe.
func (r *OrderRepo) AddAttachment(ctx context.Context, id int64, fileURL string) (*entity.Order, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	data, err := marshalBlob(append(current.Attachments, fileURL), "[]")
	if err != nil {
		return nil, fmt.Errorf("attachments: %w", err)
	}
	query := fmt.Sprintf(`
		UPDATE %s SET attachments = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING %s`, r.m.Table, r.m.selectList())
	o, err := r.m.Scan(r.q.QueryRow(ctx, query, id, data))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("add attachment: %w", err)
	}
	return o, nil
}

// FindByOrderNumber devuelve la orden viva con ese número, o nil si no existe.
func (r *OrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE order_number = $1 AND deleted_at IS NULL",
		r.m.selectList(), r.m.Table,
	)
	o, err := r.m.Scan(r.q.QueryRow(ctx, query, orderNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by number: %w", err)
	}
	return o, nil
}

// FindByCustomer lista las órdenes vivas de un cliente, recientes primero.
func (r *OrderRepo) FindByCustomer(ctx context.Context, customerID int64) ([]*entity.Order, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE customer_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC",
		r.m.selectList(), r.m.Table,
	)
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders by customer: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// FindByStatus lista las órdenes vivas en un estado, recientes primero.
func (r *OrderRepo) FindByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE status = $1 AND deleted_at IS NULL ORDER BY created_at DESC",
		r.m.selectList(), r.m.Table,
	)
	rows, err := r.q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list orders by status: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}
