package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/application/usecase"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
)

func newCustomerUseCase(t *testing.T) (*usecase.CustomerUseCase, *fakeCustomerRepo) {
	t.Helper()
	repo := newFakeCustomerRepo()
	return usecase.NewCustomerUseCase(repo), repo
}

func validCustomer() dto.CreateCustomerRequest {
	return dto.CreateCustomerRequest{
		Name:  "Ana García",
		Email: "ana@example.com",
		Phone: "+54 261 1234567",
		Type:  "individual",
	}
}

func TestCustomerCreateDefaultsToActive(t *testing.T) {
	uc, _ := newCustomerUseCase(t)

	created, err := uc.Create(context.Background(), validCustomer())
	require.NoError(t, err)
	assert.Equal(t, "active", created.Status)
	assert.NotZero(t, created.ID)
}

func TestCustomerCreateValidations(t *testing.T) {
	uc, _ := newCustomerUseCase(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*dto.CreateCustomerRequest)
		message string
	}{
		{
			name:    "sin nombre",
			mutate:  func(in *dto.CreateCustomerRequest) { in.Name = "  " },
			message: "Customer name is required",
		},
		{
			name:    "email inválido",
			mutate:  func(in *dto.CreateCustomerRequest) { in.Email = "no-es-un-email" },
			message: "Valid email is required",
		},
		{
			name:    "tipo desconocido",
			mutate:  func(in *dto.CreateCustomerRequest) { in.Type = "empresa" },
			message: `Customer type must be "individual" or "business"`,
		},
		{
			name: "business sin CUIT",
			mutate: func(in *dto.CreateCustomerRequest) {
				in.Type = "business"
				in.TaxID = ""
			},
			message: "Tax ID is required for business customers",
		},
		{
			name:    "teléfono inválido",
			mutate:  func(in *dto.CreateCustomerRequest) { in.Phone = "abc" },
			message: "Invalid phone number format",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCustomer()
			tc.mutate(&in)
			_, err := uc.Create(ctx, in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.EqualError(t, err, tc.message)
		})
	}
}

func TestCustomerCreateBusinessWithTaxID(t *testing.T) {
	uc, _ := newCustomerUseCase(t)

	in := validCustomer()
	in.Type = "business"
	in.TaxID = "30-12345678-9"
	created, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "business", created.Type)
}

func TestCustomerCreateAllowsEmptyPhone(t *testing.T) {
	uc, _ := newCustomerUseCase(t)

	in := validCustomer()
	in.Phone = ""
	_, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
}

func TestCustomerUpdateValidatesPatchedFields(t *testing.T) {
	uc, _ := newCustomerUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, validCustomer())
	require.NoError(t, err)

	bad := "tampoco-es-email"
	_, err = uc.Update(ctx, created.ID, dto.UpdateCustomerRequest{Email: &bad})
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid email format")

	good := "nueva@example.com"
	updated, err := uc.Update(ctx, created.ID, dto.UpdateCustomerRequest{Email: &good})
	require.NoError(t, err)
	assert.Equal(t, good, updated.Email)
	assert.Equal(t, created.Name, updated.Name, "lo no parchado queda intacto")
}

func TestCustomerUpdateNotFound(t *testing.T) {
	uc, _ := newCustomerUseCase(t)

	name := "Otro"
	_, err := uc.Update(context.Background(), 77, dto.UpdateCustomerRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerDeleteThenGetNotFound(t *testing.T) {
	uc, _ := newCustomerUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, validCustomer())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))

	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Borrar dos veces también es NotFound.
	err = uc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerGetByEmail(t *testing.T) {
	uc, _ := newCustomerUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, validCustomer())
	require.NoError(t, err)

	found, err := uc.GetByEmail(ctx, created.Email)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	missing, err := uc.GetByEmail(ctx, "nadie@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCustomerGetByTypeValidatesValue(t *testing.T) {
	uc, _ := newCustomerUseCase(t)
	ctx := context.Background()

	_, err := uc.GetByType(ctx, "empresa")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, validCustomer())
	require.NoError(t, err)
	list, err := uc.GetByType(ctx, "individual")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCustomerUpdateStatus(t *testing.T) {
	uc, _ := newCustomerUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, validCustomer())
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, created.ID, "suspendido")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := uc.UpdateStatus(ctx, created.ID, "inactive")
	require.NoError(t, err)
	assert.Equal(t, "inactive", updated.Status)
}

func TestCustomerSearchRequiresTerm(t *testing.T) {
	uc, _ := newCustomerUseCase(t)

	_, err := uc.SearchByName(context.Background(), "   ")
	require.Error(t, err)
	assert.EqualError(t, err, "Search term is required")
}

func TestCustomerStatistics(t *testing.T) {
	uc, _ := newCustomerUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, validCustomer())
	require.NoError(t, err)

	biz := validCustomer()
	biz.Email = "empresa@example.com"
	biz.Type = "business"
	biz.TaxID = "30-12345678-9"
	biz.Status = "inactive"
	_, err = uc.Create(ctx, biz)
	require.NoError(t, err)

	stats, err := uc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Inactive)
	assert.Equal(t, 1, stats.ByType.Individual)
	assert.Equal(t, 1, stats.ByType.Business)
}
