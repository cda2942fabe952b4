package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

// productRules invariantes de Product para el servicio genérico.
type productRules struct{}

func (productRules) ValidateCreate(p *entity.Product) error {
	if p.Name == "" {
		return domain.NewValidation("Product name is required")
	}
	if !p.Price.IsPositive() {
		return domain.NewValidation("Invalid price")
	}
	if p.Stock < 0 {
		return domain.NewValidation("Stock cannot be negative")
	}
	return nil
}

func (productRules) ValidateUpdate(patch []repository.Field) error {
	if v, ok := patchValue(patch, "price"); ok {
		if price, _ := v.(decimal.Decimal); !price.IsPositive() {
			return domain.NewValidation("Invalid price")
		}
	}
	if v, ok := patchValue(patch, "stock"); ok {
		if stock, _ := v.(int); stock < 0 {
			return domain.NewValidation("Stock cannot be negative")
		}
	}
	return nil
}

// ProductUseCase CRUD de productos más consultas por categoría y ajuste de stock.
type ProductUseCase struct {
	svc  *Service[entity.Product]
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{
		svc:  NewService[entity.Product]("product", repo, productRules{}),
		repo: repo,
	}
}

// List lista productos vivos, opcionalmente filtrados por categoría.
func (uc *ProductUseCase) List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	var filters []repository.Field
	if filter.Category != "" {
		filters = append(filters, repository.F("category", filter.Category))
	}
	list, err := uc.svc.GetAll(ctx, filters...)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// GetByID obtiene un producto o falla con NotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.svc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Create valida y persiste un producto nuevo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.svc.Create(ctx, &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update aplica un parche parcial sobre un producto existente.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var patch []repository.Field
	if in.Name != nil {
		patch = append(patch, repository.F("name", *in.Name))
	}
	if in.Description != nil {
		patch = append(patch, repository.F("description", *in.Description))
	}
	if in.Price != nil {
		patch = append(patch, repository.F("price", *in.Price))
	}
	if in.Stock != nil {
		patch = append(patch, repository.F("stock", *in.Stock))
	}
	if in.Category != nil {
		patch = append(patch, repository.F("category", *in.Category))
	}
	p, err := uc.svc.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete marca el producto como borrado.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	_, err := uc.svc.Delete(ctx, id)
	return err
}

// GetByCategory lista productos de una categoría.
func (uc *ProductUseCase) GetByCategory(ctx context.Context, category string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// AdjustStock suma quantity (puede ser negativo) al stock del producto.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, id int64, quantity int) (*dto.ProductResponse, error) {
	p, err := uc.repo.AdjustStock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("product", id)
	}
	return toProductResponse(p), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out
}
