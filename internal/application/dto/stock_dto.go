package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntryRequest body para POST /api/stock/entries y /api/stock/exits.
// unit_cost solo aplica a entradas: recalcula el costo promedio del producto.
type StockEntryRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"` // siempre positiva; el caso de uso aplica el signo
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason    string           `json:"reason,omitempty"`
}

// StockAdjustmentRequest body para POST /api/stock/adjustments:
// fija el stock en un valor absoluto y registra la diferencia.
type StockAdjustmentRequest struct {
	ProductID string `json:"product_id"`
	NewStock  int64  `json:"new_stock"`
	Reason    string `json:"reason,omitempty"`
}

// StockMovementResponse renglón del log de movimientos.
type StockMovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Kind        string    `json:"kind"`
	Quantity    int64     `json:"quantity"` // delta con signo
	StockBefore int64     `json:"stock_before"`
	StockAfter  int64     `json:"stock_after"`
	Reference   string    `json:"reference,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AdjustResponse resultado de una operación de stock.
type AdjustResponse struct {
	ProductID string `json:"product_id"`
	NewStock  int64  `json:"new_stock"`
}

// StockAlertsResponse clasificación de productos activos por nivel de stock.
type StockAlertsResponse struct {
	OutOfStock []ProductResponse `json:"out_of_stock"`
	Critical   []ProductResponse `json:"critical"`
	Low        []ProductResponse `json:"low"`
}
