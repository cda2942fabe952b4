package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/application/usecase"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
)

func newProductUseCase(t *testing.T) (*usecase.ProductUseCase, *fakeProductRepo) {
	t.Helper()
	repo := newFakeProductRepo()
	return usecase.NewProductUseCase(repo), repo
}

func TestProductCreateValidations(t *testing.T) {
	uc, _ := newProductUseCase(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		in      dto.CreateProductRequest
		message string
	}{
		{
			name:    "sin nombre",
			in:      dto.CreateProductRequest{Price: decimal.NewFromInt(10)},
			message: "Product name is required",
		},
		{
			name:    "precio cero",
			in:      dto.CreateProductRequest{Name: "Torta", Price: decimal.Zero},
			message: "Invalid price",
		},
		{
			name:    "precio negativo",
			in:      dto.CreateProductRequest{Name: "Torta", Price: decimal.NewFromInt(-5)},
			message: "Invalid price",
		},
		{
			name:    "stock negativo",
			in:      dto.CreateProductRequest{Name: "Torta", Price: decimal.NewFromInt(10), Stock: -1},
			message: "Stock cannot be negative",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.EqualError(t, err, tc.message)
		})
	}
}

func TestProductCreateAndGet(t *testing.T) {
	uc, _ := newProductUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		Name:     "Torta de chocolate",
		Price:    decimal.NewFromFloat(49.99),
		Stock:    5,
		Category: "tortas",
	})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Torta de chocolate", got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromFloat(49.99)))
}

func TestProductUpdateValidatesPatchedFields(t *testing.T) {
	uc, _ := newProductUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		Name:  "Torta",
		Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	bad := decimal.NewFromInt(-1)
	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Price: &bad})
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid price")

	stock := -3
	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Stock: &stock})
	require.Error(t, err)
	assert.EqualError(t, err, "Stock cannot be negative")

	good := decimal.NewFromInt(12)
	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Price: &good})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(good))
}

func TestProductGetByCategory(t *testing.T) {
	uc, _ := newProductUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Torta", Price: decimal.NewFromInt(10), Category: "tortas"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Alfajor", Price: decimal.NewFromInt(2), Category: "alfajores"})
	require.NoError(t, err)

	list, err := uc.GetByCategory(ctx, "tortas")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Torta", list[0].Name)
}

func TestProductAdjustStock(t *testing.T) {
	uc, _ := newProductUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Torta", Price: decimal.NewFromInt(10), Stock: 5})
	require.NoError(t, err)

	updated, err := uc.AdjustStock(ctx, created.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Stock)

	updated, err = uc.AdjustStock(ctx, created.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 13, updated.Stock)
}

func TestProductAdjustStockNotFound(t *testing.T) {
	uc, _ := newProductUseCase(t)

	_, err := uc.AdjustStock(context.Background(), 123, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDeleteHidesFromList(t *testing.T) {
	uc, _ := newProductUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Torta", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))

	list, err := uc.List(ctx, dto.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}
