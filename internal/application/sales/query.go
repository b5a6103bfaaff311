package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/martesys/petshop-api/internal/application/dto"
	"github.com/martesys/petshop-api/internal/domain"
	"github.com/martesys/petshop-api/internal/domain/entity"
	"github.com/martesys/petshop-api/internal/domain/repository"
)

// GetSale devuelve la venta completa: cabecera, líneas y cliente si hay.
func (uc *UseCase) GetSale(ctx context.Context, saleID string) (*dto.SaleDetailResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, saleID)
	}
	items, err := uc.saleRepo.GetItemsBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	var customer *entity.Customer
	if sale.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(ctx, sale.CustomerID)
		if err != nil {
			return nil, err
		}
	}
	return uc.toDetail(sale, items, customer), nil
}

// ListSales lista ventas con filtros opcionales, de la más reciente a
// la más antigua.
func (uc *UseCase) ListSales(ctx context.Context, filter repository.SaleFilter) (*dto.SaleListResponse, error) {
	sales, err := uc.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.SaleListResponse{Items: make([]dto.SaleResponse, 0, len(sales))}
	for _, s := range sales {
		resp.Items = append(resp.Items, toSaleResponse(s))
	}
	resp.Total = len(resp.Items)
	return resp, nil
}

// Statistics agregados de ventas Concluídas del período. Las ventas
// canceladas quedan fuera de todos los totales.
func (uc *UseCase) Statistics(ctx context.Context, from, to *time.Time) (*dto.SalesStatisticsResponse, error) {
	stats, err := uc.reportRepo.SalesStatistics(ctx, from, to)
	if err != nil {
		return nil, err
	}
	resp := &dto.SalesStatisticsResponse{
		TotalSales:     stats.TotalSales,
		GrossRevenue:   stats.GrossRevenue,
		TotalDiscounts: stats.TotalDiscounts,
		AverageTicket:  stats.AverageTicket,
		ByPayment:      make([]dto.PaymentBreakdownDTO, 0, len(stats.ByPayment)),
	}
	for _, b := range stats.ByPayment {
		resp.ByPayment = append(resp.ByPayment, dto.PaymentBreakdownDTO{
			PaymentMethod: b.PaymentMethod,
			Count:         b.Count,
			Value:         b.Value,
		})
	}
	return resp, nil
}

// InventoryValue valor total del inventario activo a precio de venta.
func (uc *UseCase) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	return uc.reportRepo.InventoryValue(ctx)
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		Date:          s.Date,
		GrossTotal:    s.GrossTotal,
		Discount:      s.Discount,
		NetTotal:      s.NetTotal,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		Notes:         s.Notes,
	}
}

func (uc *UseCase) toDetail(sale *entity.Sale, items []*entity.SaleItem, customer *entity.Customer) *dto.SaleDetailResponse {
	detail := &dto.SaleDetailResponse{
		Sale:  toSaleResponse(sale),
		Items: make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		detail.Items = append(detail.Items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	if customer != nil {
		c := toCustomerResponse(customer)
		detail.Customer = &c
	}
	return detail
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		CPF:       c.CPF,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
	}
}
