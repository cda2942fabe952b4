package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Gramática permisiva: acepta +54 261 1234567, (261) 123-4567, etc.
	phoneRe = regexp.MustCompile(`^\+?\(?[0-9]{1,4}\)?[-\s.]?\(?[0-9]{1,4}\)?[-\s.]?[0-9]{1,9}$`)
)

func validEmail(email string) bool { return emailRe.MatchString(email) }

func validPhone(phone string) bool {
	return phoneRe.MatchString(strings.ReplaceAll(phone, " ", ""))
}

// customerRules invariantes de Customer para el servicio genérico.
type customerRules struct{}

func (customerRules) ValidateCreate(c *entity.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.NewValidation("Customer name is required")
	}
	if c.Email == "" || !validEmail(c.Email) {
		return domain.NewValidation("Valid email is required")
	}
	if !c.Type.Valid() {
		return domain.NewValidation(`Customer type must be "individual" or "business"`)
	}
	if c.Type == entity.CustomerBusiness && c.TaxID == "" {
		return domain.NewValidation("Tax ID is required for business customers")
	}
	if c.Phone != "" && !validPhone(c.Phone) {
		return domain.NewValidation("Invalid phone number format")
	}
	return nil
}

func (customerRules) ValidateUpdate(patch []repository.Field) error {
	if v, ok := patchValue(patch, "email"); ok {
		if email, _ := v.(string); !validEmail(email) {
			return domain.NewValidation("Invalid email format")
		}
	}
	if v, ok := patchValue(patch, "type"); ok {
		if t, _ := v.(entity.CustomerType); !t.Valid() {
			return domain.NewValidation(`Customer type must be "individual" or "business"`)
		}
	}
	if v, ok := patchValue(patch, "phone"); ok {
		if phone, _ := v.(string); phone != "" && !validPhone(phone) {
			return domain.NewValidation("Invalid phone number format")
		}
	}
	return nil
}

// CustomerUseCase CRUD y operaciones de consulta de clientes.
type CustomerUseCase struct {
	svc  *Service[entity.Customer]
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{
		svc:  NewService[entity.Customer]("customer", repo, customerRules{}),
		repo: repo,
	}
}

// List lista clientes vivos aplicando los filtros de igualdad presentes.
func (uc *CustomerUseCase) List(ctx context.Context, filter dto.CustomerFilter) ([]dto.CustomerResponse, error) {
	var filters []repository.Field
	if filter.Type != "" {
		filters = append(filters, repository.F("type", filter.Type))
	}
	if filter.Status != "" {
		filters = append(filters, repository.F("status", filter.Status))
	}
	list, err := uc.svc.GetAll(ctx, filters...)
	if err != nil {
		return nil, err
	}
	return toCustomerResponses(list), nil
}

// GetByID obtiene un cliente o falla con NotFound.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.svc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Create valida y persiste un cliente nuevo. Status vacío queda en active.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	status := entity.CustomerStatus(in.Status)
	if status == "" {
		status = entity.CustomerActive
	}
	c, err := uc.svc.Create(ctx, &entity.Customer{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		Type:    entity.CustomerType(in.Type),
		TaxID:   in.TaxID,
		Status:  status,
	})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Update aplica un parche parcial sobre un cliente existente.
func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	var patch []repository.Field
	if in.Name != nil {
		patch = append(patch, repository.F("name", *in.Name))
	}
	if in.Email != nil {
		patch = append(patch, repository.F("email", *in.Email))
	}
	if in.Phone != nil {
		patch = append(patch, repository.F("phone", *in.Phone))
	}
	if in.Address != nil {
		patch = append(patch, repository.F("address", *in.Address))
	}
	if in.Type != nil {
		patch = append(patch, repository.F("type", entity.CustomerType(*in.Type)))
	}
	if in.TaxID != nil {
		patch = append(patch, repository.F("tax_id", *in.TaxID))
	}
	if in.Status != nil {
		patch = append(patch, repository.F("status", entity.CustomerStatus(*in.Status)))
	}
	c, err := uc.svc.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Delete marca el cliente como borrado.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	_, err := uc.svc.Delete(ctx, id)
	return err
}

// GetByEmail devuelve el cliente con ese email, o nil si no existe.
func (uc *CustomerUseCase) GetByEmail(ctx context.Context, email string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.FindByEmail(ctx, email)
	if err != nil || c == nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// GetByType lista clientes del tipo dado.
func (uc *CustomerUseCase) GetByType(ctx context.Context, t string) ([]dto.CustomerResponse, error) {
	ct := entity.CustomerType(t)
	if !ct.Valid() {
		return nil, domain.NewValidation(`Customer type must be "individual" or "business"`)
	}
	list, err := uc.repo.FindByType(ctx, ct)
	if err != nil {
		return nil, err
	}
	return toCustomerResponses(list), nil
}

// UpdateStatus activa o desactiva un cliente.
func (uc *CustomerUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*dto.CustomerResponse, error) {
	cs := entity.CustomerStatus(status)
	if !cs.Valid() {
		return nil, domain.NewValidation(`Status must be "active" or "inactive"`)
	}
	c, err := uc.svc.Update(ctx, id, []repository.Field{repository.F("status", cs)})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// SearchByName busca clientes por coincidencia parcial de nombre.
func (uc *CustomerUseCase) SearchByName(ctx context.Context, term string) ([]dto.CustomerResponse, error) {
	if strings.TrimSpace(term) == "" {
		return nil, domain.NewValidation("Search term is required")
	}
	list, err := uc.repo.SearchByName(ctx, term)
	if err != nil {
		return nil, err
	}
	return toCustomerResponses(list), nil
}

// Statistics agregados de clientes para el panel.
func (uc *CustomerUseCase) Statistics(ctx context.Context) (*dto.CustomerStatsResponse, error) {
	stats, err := uc.repo.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerStatsResponse{
		Total:    stats.Total,
		Active:   stats.Active,
		Inactive: stats.Inactive,
		ByType: dto.CustomerStatsByTypeDTO{
			Individual: stats.Individual,
			Business:   stats.Business,
		},
	}, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Type:      string(c.Type),
		TaxID:     c.TaxID,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCustomerResponses(list []*entity.Customer) []dto.CustomerResponse {
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out
}
