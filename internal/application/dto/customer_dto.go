package dto

import "time"

// CreateCustomerRequest cuerpo de POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Type    string `json:"type"`
	TaxID   string `json:"taxId"`
	Status  string `json:"status"`
}

// UpdateCustomerRequest cuerpo de PUT /api/customers/:id. Campos en nil no
// se tocan.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Type    *string `json:"type"`
	TaxID   *string `json:"taxId"`
	Status  *string `json:"status"`
}

// CustomerFilter filtros de igualdad para el listado.
type CustomerFilter struct {
	Type   string `query:"type"`
	Status string `query:"status"`
}

// CustomerResponse representación pública de un cliente.
type CustomerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Type      string    `json:"type"`
	TaxID     string    `json:"taxId,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerStatsResponse agregados para el panel.
type CustomerStatsResponse struct {
	Total    int                    `json:"total"`
	Active   int                    `json:"active"`
	Inactive int                    `json:"inactive"`
	ByType   CustomerStatsByTypeDTO `json:"byType"`
}

// CustomerStatsByTypeDTO desglose por tipo de cliente.
type CustomerStatsByTypeDTO struct {
	Individual int `json:"individual"`
	Business   int `json:"business"`
}
