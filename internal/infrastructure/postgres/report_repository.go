package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/martesys/petshop-api/internal/domain/entity"
	"github.com/martesys/petshop-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura sobre ventas e
// inventario. Nunca muta datos.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesStatistics agregados de ventas Concluídas del período, con
// desglose por forma de pago. Las canceladas quedan fuera.
func (r *ReportRepo) SalesStatistics(ctx context.Context, from, to *time.Time) (*repository.SalesStatistics, error) {
	where := ` WHERE status = $1`
	args := []any{entity.SaleStatusCompleted}
	if from != nil {
		args = append(args, *from)
		where += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		where += fmt.Sprintf(` AND date <= $%d`, len(args))
	}

	stats := &repository.SalesStatistics{
		GrossRevenue:   decimal.Zero,
		TotalDiscounts: decimal.Zero,
		AverageTicket:  decimal.Zero,
	}
	query := `
		SELECT COUNT(*), COALESCE(SUM(net_total), 0), COALESCE(SUM(discount), 0), COALESCE(AVG(net_total), 0)
		FROM sales` + where
	if err := r.q.QueryRow(ctx, query, args...).Scan(
		&stats.TotalSales, &stats.GrossRevenue, &stats.TotalDiscounts, &stats.AverageTicket,
	); err != nil {
		return nil, fmt.Errorf("sales statistics: %w", err)
	}
	stats.AverageTicket = stats.AverageTicket.Round(2)

	byPayment := `
		SELECT payment_method, COUNT(*), COALESCE(SUM(net_total), 0)
		FROM sales` + where + `
		GROUP BY payment_method ORDER BY payment_method`
	rows, err := r.q.Query(ctx, byPayment, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by payment: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var b repository.PaymentBreakdown
		if err := rows.Scan(&b.PaymentMethod, &b.Count, &b.Value); err != nil {
			return nil, fmt.Errorf("scan payment breakdown: %w", err)
		}
		stats.ByPayment = append(stats.ByPayment, b)
	}
	return stats, rows.Err()
}

// InventoryValue valor del stock activo a precio de venta.
func (r *ReportRepo) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(sale_price * stock), 0) FROM products WHERE active = true`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("inventory value: %w", err)
	}
	return total, nil
}
