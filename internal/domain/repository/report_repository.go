package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesStatistics agregados sobre ventas Concluídas de un período.
type SalesStatistics struct {
	TotalSales     int64
	GrossRevenue   decimal.Decimal // suma de net_total
	TotalDiscounts decimal.Decimal
	AverageTicket  decimal.Decimal
	ByPayment      []PaymentBreakdown
}

// PaymentBreakdown cantidad y valor vendidos por forma de pago.
type PaymentBreakdown struct {
	PaymentMethod string
	Count         int64
	Value         decimal.Decimal
}

// ReportRepository consultas de solo lectura para estadísticas.
// Lee las mismas tablas que los casos de uso de venta pero nunca muta.
type ReportRepository interface {
	SalesStatistics(ctx context.Context, from, to *time.Time) (*SalesStatistics, error)
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
}
