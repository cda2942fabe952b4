package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
	"github.com/tu-usuario/pedidos-pro/pkg/logger"
)

// totalTolerance diferencia absoluta admitida entre el total declarado y la
// suma de subtotales.
var totalTolerance = decimal.New(1, -2) // 0.01

// orderRules invariantes de Order para el servicio genérico.
type orderRules struct{}

func (orderRules) ValidateCreate(o *entity.Order) error {
	if strings.TrimSpace(o.CustomerName) == "" {
		return domain.NewValidation("Customer name is required")
	}
	if strings.TrimSpace(o.CustomerPhone) == "" {
		return domain.NewValidation("Customer phone is required")
	}
	if len(o.Items) == 0 {
		return domain.NewValidation("Order must have at least one item")
	}
	if o.ItemsTotal().Sub(o.Total).Abs().GreaterThan(totalTolerance) {
		return domain.NewValidation("Total amount mismatch")
	}
	return nil
}

func (orderRules) ValidateUpdate(patch []repository.Field) error {
	if v, ok := patchValue(patch, "items"); ok {
		if items, _ := v.([]entity.OrderItem); len(items) == 0 {
			return domain.NewValidation("Order must have at least one item")
		}
	}
	return nil
}

// OrderUseCase ciclo de vida de órdenes: creación con número consecutivo,
// máquina de estados con historial, adjuntos y notificaciones WhatsApp.
type OrderUseCase struct {
	svc      *Service[entity.Order]
	repo     repository.OrderRepository
	notifier Notifier
	log      *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository, notifier Notifier, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{
		svc:      NewService[entity.Order]("order", repo, orderRules{}),
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// List lista órdenes vivas aplicando los filtros presentes.
func (uc *OrderUseCase) List(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderResponse, error) {
	var filters []repository.Field
	if filter.Status != "" {
		filters = append(filters, repository.F("status", entity.OrderStatus(filter.Status)))
	}
	if filter.CustomerID != 0 {
		filters = append(filters, repository.F("customer_id", filter.CustomerID))
	}
	list, err := uc.svc.GetAll(ctx, filters...)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// GetByID obtiene una orden o falla con NotFound.
func (uc *OrderUseCase) GetByID(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	o, err := uc.svc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// Create valida y persiste una orden nueva. Si el total no viene se calcula
// como la suma de los subtotales. Tras persistir se envía la confirmación
// por WhatsApp; un fallo ahí se registra y se ignora, la creación ya quedó
// confirmada.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	o := &entity.Order{
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		Items:         in.Items,
		Notes:         in.Notes,
		Attachments:   in.Attachments,
	}
	if in.Total != nil {
		o.Total = *in.Total
	} else {
		o.Total = o.ItemsTotal()
	}

	created, err := uc.svc.Create(ctx, o)
	if err != nil {
		return nil, err
	}

	if ok := uc.notifier.SendOrderConfirmation(ctx, created); !ok {
		uc.log.Warn().
			Str("order_number", created.OrderNumber).
			Msg("no se pudo enviar la confirmación de la orden")
	}
	return toOrderResponse(created), nil
}

// Update aplica un parche parcial sobre una orden existente (datos del
// cliente, líneas, total y notas; el estado se cambia con UpdateStatus).
func (uc *OrderUseCase) Update(ctx context.Context, id int64, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	var patch []repository.Field
	if in.CustomerName != nil {
		patch = append(patch, repository.F("customer_name", *in.CustomerName))
	}
	if in.CustomerEmail != nil {
		patch = append(patch, repository.F("customer_email", *in.CustomerEmail))
	}
	if in.CustomerPhone != nil {
		patch = append(patch, repository.F("customer_phone", *in.CustomerPhone))
	}
	if in.Items != nil {
		patch = append(patch, repository.F("items", *in.Items))
	}
	if in.Total != nil {
		patch = append(patch, repository.F("total", *in.Total))
	}
	if in.Notes != nil {
		patch = append(patch, repository.F("notes", *in.Notes))
	}
	o, err := uc.svc.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// Delete marca la orden como borrada.
func (uc *OrderUseCase) Delete(ctx context.Context, id int64) error {
	_, err := uc.svc.Delete(ctx, id)
	return err
}

// UpdateStatus registra la transición en el historial y persiste el nuevo
// estado. Solo notifica al cliente cuando el estado realmente cambió; el
// fallo de la notificación se registra y se ignora.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id int64, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	status := entity.OrderStatus(in.Status)
	if !status.Valid() {
		return nil, domain.NewValidation("Invalid status value")
	}

	current, err := uc.svc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := current.Status

	updated, err := uc.repo.UpdateStatus(ctx, id, status, in.Notes)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.NewNotFound("order", id)
	}

	if previous != status {
		if ok := uc.notifier.SendStatusUpdate(ctx, updated, previous); !ok {
			uc.log.Warn().
				Str("order_number", updated.OrderNumber).
				Str("status", string(status)).
				Msg("no se pudo enviar la actualización de estado")
		}
	}
	return toOrderResponse(updated), nil
}

// AddAttachment agrega la URL de un archivo subido a la orden.
func (uc *OrderUseCase) AddAttachment(ctx context.Context, id int64, fileURL string) (*dto.OrderResponse, error) {
	o, err := uc.repo.AddAttachment(ctx, id, fileURL)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NewNotFound("order", id)
	}
	return toOrderResponse(o), nil
}

// TrackByNumber lookup público de seguimiento. Devuelve nil (sin error) si
// el número no existe; el handler responde 404.
func (uc *OrderUseCase) TrackByNumber(ctx context.Context, orderNumber string) (*dto.OrderResponse, error) {
	o, err := uc.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil || o == nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// GetByCustomer lista las órdenes de un cliente.
func (uc *OrderUseCase) GetByCustomer(ctx context.Context, customerID int64) ([]dto.OrderResponse, error) {
	list, err := uc.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// GetByStatus lista las órdenes en un estado dado.
func (uc *OrderUseCase) GetByStatus(ctx context.Context, status string) ([]dto.OrderResponse, error) {
	s := entity.OrderStatus(status)
	if !s.Valid() {
		return nil, domain.NewValidation("Invalid status value")
	}
	list, err := uc.repo.FindByStatus(ctx, s)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := o.Items
	if items == nil {
		items = []entity.OrderItem{}
	}
	attachments := o.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	history := o.StatusHistory
	if history == nil {
		history = []entity.StatusChange{}
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		Items:         items,
		Total:         o.Total,
		Status:        o.Status,
		Notes:         o.Notes,
		Attachments:   attachments,
		TrackingURL:   o.TrackingURL,
		StatusHistory: history,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o))
	}
	return out
}
