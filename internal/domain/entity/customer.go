package entity

// CustomerType tipo de cliente.
type CustomerType string

// CustomerStatus estado del cliente.
type CustomerStatus string

const (
	CustomerIndividual CustomerType = "individual"
	CustomerBusiness   CustomerType = "business"

	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
)

// Valid indica si el tipo es uno de los admitidos.
func (t CustomerType) Valid() bool {
	return t == CustomerIndividual || t == CustomerBusiness
}

// Valid indica si el estado es uno de los admitidos.
func (s CustomerStatus) Valid() bool {
	return s == CustomerActive || s == CustomerInactive
}

// Customer cliente del negocio. TaxID es obligatorio para clientes business.
type Customer struct {
	Base
	Name    string
	Email   string
	Phone   string
	Address string
	Type    CustomerType
	TaxID   string
	Status  CustomerStatus
}

// CustomerStats agregados de clientes vivos para el panel.
type CustomerStats struct {
	Total      int
	Active     int
	Inactive   int
	Individual int
	Business   int
}
