package entity

import "time"

// Base campos comunes de toda entidad persistida: identidad asignada por la
// base de datos, timestamps de auditoría y borrado lógico.
// DeletedAt en nil significa fila viva; con valor, la fila queda excluida
// de todas las lecturas normales.
type Base struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
