package usecase

import (
	"context"

	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

// Rules hooks de validación que cada entidad aporta al servicio genérico.
// ValidateCreate recibe la entidad completa; ValidateUpdate recibe el parche
// parcial que va a aplicarse.
type Rules[T any] interface {
	ValidateCreate(e *T) error
	ValidateUpdate(patch []repository.Field) error
}

// Service operaciones CRUD genéricas: valida con las reglas de la entidad,
// delega en el repositorio y normaliza la ausencia de fila en un
// domain.NotFoundError con el recurso y el id.
type Service[T any] struct {
	resource string
	repo     repository.Repository[T]
	rules    Rules[T]
}

// NewService construye el servicio genérico. resource es el nombre con el
// que se reporta la entidad en errores not-found ("customer", "order", ...).
func NewService[T any](resource string, repo repository.Repository[T], rules Rules[T]) *Service[T] {
	return &Service[T]{resource: resource, repo: repo, rules: rules}
}

// GetAll passthrough al repositorio.
func (s *Service[T]) GetAll(ctx context.Context, filters ...repository.Field) ([]*T, error) {
	return s.repo.FindAll(ctx, filters...)
}

// GetByID obtiene la entidad o falla con NotFound; nunca devuelve nil sin error.
func (s *Service[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NewNotFound(s.resource, id)
	}
	return e, nil
}

// Create valida la entidad y la persiste.
func (s *Service[T]) Create(ctx context.Context, e *T) (*T, error) {
	if err := s.rules.ValidateCreate(e); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, e)
}

// Update verifica existencia, valida el parche y lo persiste.
func (s *Service[T]) Update(ctx context.Context, id int64, patch []repository.Field) (*T, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.rules.ValidateUpdate(patch); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// La fila desapareció entre la verificación y el UPDATE.
		return nil, domain.NewNotFound(s.resource, id)
	}
	return updated, nil
}

// Delete verifica existencia y marca la fila como borrada (soft delete).
func (s *Service[T]) Delete(ctx context.Context, id int64) (bool, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return false, err
	}
	return s.repo.SoftDelete(ctx, id)
}

// patchValue busca el valor de una columna dentro de un parche.
func patchValue(patch []repository.Field, column string) (any, bool) {
	for _, f := range patch {
		if f.Column == column {
			return f.Value, true
		}
	}
	return nil, false
}
