package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea del carrito (producto y cantidad; el precio se
// toma del producto al momento de la venta).
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id,omitempty"`
	Items         []SaleItemRequest `json:"items"`
	PaymentMethod string            `json:"payment_method"`
	Discount      decimal.Decimal   `json:"discount"`
	Notes         string            `json:"notes,omitempty"`
}

// CancelSaleRequest body para POST /api/sales/:id/cancel.
type CancelSaleRequest struct {
	Reason string `json:"reason,omitempty"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse cabecera de venta en respuestas.
type SaleResponse struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id,omitempty"`
	Date          time.Time       `json:"date"`
	GrossTotal    decimal.Decimal `json:"gross_total"`
	Discount      decimal.Decimal `json:"discount"`
	NetTotal      decimal.Decimal `json:"net_total"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
}

// SaleDetailResponse venta completa: cabecera, líneas y cliente si hay.
type SaleDetailResponse struct {
	Sale     SaleResponse       `json:"sale"`
	Items    []SaleItemResponse `json:"items"`
	Customer *CustomerResponse  `json:"customer,omitempty"`
}

// SaleListResponse listado de ventas (más reciente primero).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
}
