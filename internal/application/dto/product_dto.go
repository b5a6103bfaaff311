package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Stock inicial genera un movimiento ENTRADA "Estoque inicial".
type CreateProductRequest struct {
	Name       string          `json:"name"`
	AnimalType string          `json:"animal_type"` // gato | cão (acepta "cao")
	Brand      string          `json:"brand"`
	Weight     decimal.Decimal `json:"weight"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	Stock      int64           `json:"stock"`
	MinStock   *int64          `json:"min_stock,omitempty"` // default 5
	Barcode    string          `json:"barcode,omitempty"`
}

// UpdateProductRequest actualización parcial: solo se aplican los campos
// presentes, validados con las mismas reglas del alta. El stock no se
// actualiza por aquí (se maneja vía movimientos).
type UpdateProductRequest struct {
	Name       *string          `json:"name,omitempty"`
	AnimalType *string          `json:"animal_type,omitempty"`
	Brand      *string          `json:"brand,omitempty"`
	Weight     *decimal.Decimal `json:"weight,omitempty"`
	CostPrice  *decimal.Decimal `json:"cost_price,omitempty"`
	SalePrice  *decimal.Decimal `json:"sale_price,omitempty"`
	MinStock   *int64           `json:"min_stock,omitempty"`
	Barcode    *string          `json:"barcode,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	AnimalType  string          `json:"animal_type"`
	Brand       string          `json:"brand"`
	Weight      decimal.Decimal `json:"weight"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Stock       int64           `json:"stock"`
	MinStock    int64           `json:"min_stock"`
	Barcode     string          `json:"barcode,omitempty"`
	Active      bool            `json:"active"`
	StockStatus string          `json:"stock_status"` // SIN_STOCK | CRITICO | BAJO | OK
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductListResponse listado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
