package sales

import (
	"context"
)

// ReceiptUseCase genera el comprobante PDF de una venta.
type ReceiptUseCase struct {
	sales     *UseCase
	generator ReceiptGenerator
}

func NewReceiptUseCase(sales *UseCase, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, generator: generator}
}

// Receipt arma el detalle de la venta y lo renderiza como PDF.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, saleID string) ([]byte, error) {
	detail, err := uc.sales.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return uc.generator.Generate(detail)
}
