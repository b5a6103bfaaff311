package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. La transición Concluída -> Cancelada ocurre
// exactamente una vez; cancelar una venta ya cancelada se rechaza.
const (
	SaleStatusCompleted = "Concluída"
	SaleStatusCancelled = "Cancelada"
)

// Formas de pago aceptadas.
var PaymentMethods = []string{
	"Dinheiro",
	"Débito",
	"Crédito à Vista",
	"Crédito Parcelado",
	"PIX",
	"Boleto",
}

// ValidPaymentMethod indica si la forma de pago está en el catálogo.
func ValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Sale representa la cabecera de una venta.
// Invariante: NetTotal = GrossTotal - Discount, con
// 0 <= Discount <= GrossTotal y Discount <= 50% de GrossTotal.
type Sale struct {
	ID            string
	CustomerID    string // vacío = venta sin cliente
	Date          time.Time
	GrossTotal    decimal.Decimal
	Discount      decimal.Decimal
	NetTotal      decimal.Decimal
	PaymentMethod string
	Status        string // Concluída | Cancelada
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleItem representa una línea de una venta. UnitPrice es el precio
// al momento de la venta (snapshot): no cambia si el producto cambia
// de precio después. Nunca se modifica ni se borra individualmente.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string // denormalizado para listados y recibos
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
