package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de animal válidos para un producto (ración).
const (
	AnimalTypeCat = "gato"
	AnimalTypeDog = "cão"
)

// Estados de stock derivados de la cantidad actual y los umbrales de alerta.
const (
	StockStatusOut      = "SIN_STOCK"
	StockStatusCritical = "CRITICO"
	StockStatusLow      = "BAJO"
	StockStatusOK       = "OK"
)

// Product representa una ración del catálogo de la tienda.
// Stock solo se modifica vía movimientos del libro de inventario;
// la baja es lógica (Active en false) porque ventas y movimientos
// históricos mantienen referencias al producto.
type Product struct {
	ID         string
	Name       string
	AnimalType string // gato | cão
	Brand      string
	Weight     decimal.Decimal // kg por empaque
	CostPrice  decimal.Decimal
	SalePrice  decimal.Decimal
	Stock      int64
	MinStock   int64
	Barcode    string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StockValue devuelve el valor del stock a precio de venta.
func (p *Product) StockValue() decimal.Decimal {
	return p.SalePrice.Mul(decimal.NewFromInt(p.Stock))
}

// ProfitMargin devuelve el margen de ganancia en porcentaje (0 si no hay costo).
func (p *Product) ProfitMargin() decimal.Decimal {
	if !p.CostPrice.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return p.SalePrice.Sub(p.CostPrice).Div(p.CostPrice).Mul(decimal.NewFromInt(100))
}

// StockStatus clasifica el stock actual: SIN_STOCK (0), CRITICO
// (0 < q <= criticalThreshold), BAJO (hasta el mínimo del producto) u OK.
func (p *Product) StockStatus(criticalThreshold int64) string {
	switch {
	case p.Stock == 0:
		return StockStatusOut
	case p.Stock <= criticalThreshold:
		return StockStatusCritical
	case p.Stock <= p.MinStock:
		return StockStatusLow
	default:
		return StockStatusOK
	}
}
