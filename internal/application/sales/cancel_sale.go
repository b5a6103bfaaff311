package sales

import (
	"context"
	"fmt"

	"github.com/martesys/petshop-api/internal/application/dto"
	"github.com/martesys/petshop-api/internal/application/stock"
	"github.com/martesys/petshop-api/internal/domain"
	"github.com/martesys/petshop-api/internal/domain/entity"
	"github.com/martesys/petshop-api/internal/domain/repository"
)

// CancelSale cancela una venta Concluída: repone el stock de cada
// línea con movimientos ESTORNO y marca la cabecera como Cancelada,
// todo en una transacción. Cancelar dos veces se rechaza con
// ErrAlreadyCancelled, por lo que el stock nunca se repone doble.
func (uc *UseCase) CancelSale(ctx context.Context, saleID, reason string) (*dto.SaleResponse, error) {
	if reason == "" {
		reason = "Não informado"
	}

	var cancelled *entity.Sale
	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Lock de la cabecera: una cancelación concurrente queda en
		// espera y al despertar ve el estado ya Cancelada.
		sale, err := saleRepo.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("%w: venta %s", domain.ErrNotFound, saleID)
		}
		if sale.Status == entity.SaleStatusCancelled {
			return fmt.Errorf("%w: venta %s", domain.ErrAlreadyCancelled, saleID)
		}

		items, err := saleRepo.GetItemsBySaleID(ctx, saleID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if _, err := uc.ledger.AdjustInTx(ctx, productRepo, movRepo, stock.AdjustInput{
				ProductID: item.ProductID,
				Delta:     item.Quantity,
				Kind:      entity.MovementKindReversal,
				Reference: saleID,
				Reason:    fmt.Sprintf("Cancelamento venda %s - %s", saleID, reason),
			}); err != nil {
				return err
			}
		}

		notes := fmt.Sprintf("CANCELADA - %s", reason)
		if err := saleRepo.UpdateStatus(ctx, saleID, entity.SaleStatusCancelled, notes); err != nil {
			return err
		}
		sale.Status = entity.SaleStatusCancelled
		sale.Notes = notes
		cancelled = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toSaleResponse(cancelled)
	return &resp, nil
}
