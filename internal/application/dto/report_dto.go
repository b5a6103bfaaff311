package dto

import "github.com/shopspring/decimal"

// PaymentBreakdownDTO ventas por forma de pago.
type PaymentBreakdownDTO struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int64           `json:"count"`
	Value         decimal.Decimal `json:"value"`
}

// SalesStatisticsResponse agregados del período (solo ventas Concluídas).
type SalesStatisticsResponse struct {
	TotalSales     int64                 `json:"total_sales"`
	GrossRevenue   decimal.Decimal       `json:"gross_revenue"`
	TotalDiscounts decimal.Decimal       `json:"total_discounts"`
	AverageTicket  decimal.Decimal       `json:"average_ticket"`
	ByPayment      []PaymentBreakdownDTO `json:"by_payment"`
}

// InventoryValueResponse valor del stock activo a precio de venta.
type InventoryValueResponse struct {
	TotalValue decimal.Decimal `json:"total_value"`
}
