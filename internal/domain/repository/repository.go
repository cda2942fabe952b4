package repository

import "context"

// Field pareja columna/valor para filtros de igualdad y parches parciales.
// Column es el nombre de columna en la tabla (snake_case) declarado en el
// mapeo estático de la entidad; los adaptadores rechazan columnas que no
// pertenezcan a ese mapeo.
type Field struct {
	Column string
	Value  any
}

// F azúcar para construir un Field.
func F(column string, value any) Field {
	return Field{Column: column, Value: value}
}

// Repository puerto de persistencia genérico sobre una tabla con borrado
// lógico. Las lecturas excluyen siempre filas con deleted_at; FindByID y
// Update devuelven nil (sin error) cuando la fila viva no existe.
type Repository[T any] interface {
	// FindAll aplica los filtros como igualdades conjuntivas y ordena por
	// created_at descendente.
	FindAll(ctx context.Context, filters ...Field) ([]*T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	// Create inserta la entidad, estampa created_at/updated_at y devuelve la
	// fila persistida con el id asignado por el servidor.
	Create(ctx context.Context, e *T) (*T, error)
	// Update aplica un parche parcial sobre una fila viva (nunca toca id).
	Update(ctx context.Context, id int64, patch []Field) (*T, error)
	// SoftDelete estampa deleted_at; reporta si afectó alguna fila.
	SoftDelete(ctx context.Context, id int64) (bool, error)
	// HardDelete elimina físicamente la fila. No se expone vía el servicio
	// genérico; existe para mantenimiento.
	HardDelete(ctx context.Context, id int64) (bool, error)
}
