package entity

import "github.com/shopspring/decimal"

// Product producto del catálogo. Price siempre mayor que cero; Stock nunca
// negativo (ambas reglas se validan en el caso de uso antes de persistir).
type Product struct {
	Base
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
}
