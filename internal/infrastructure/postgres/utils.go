package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tu-usuario/pedidos-pro/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint
// único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// errDuplicate envuelve el error original manteniendo domain.ErrDuplicate
// visible para errors.Is.
func errDuplicate(err error) error {
	return errors.Join(domain.ErrDuplicate, err)
}
