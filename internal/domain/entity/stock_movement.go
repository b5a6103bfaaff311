package entity

import "time"

// Tipos de movimiento del libro de inventario.
const (
	MovementKindInbound    = "ENTRADA"
	MovementKindOutbound   = "SAIDA"
	MovementKindAdjustment = "AJUSTE"
	MovementKindSale       = "VENDA"
	MovementKindReversal   = "ESTORNO" // devolución de stock por cancelación de venta
)

// StockMovement es un registro inmutable de auditoría: un renglón por
// cada mutación de stock, con cantidades antes y después. El libro de
// inventario es el único escritor; nunca se actualiza ni se borra.
type StockMovement struct {
	ID          string
	ProductID   string
	Kind        string // ENTRADA | SAIDA | AJUSTE | VENDA | ESTORNO
	Quantity    int64  // delta con signo (negativo en salidas y ventas)
	StockBefore int64
	StockAfter  int64
	Reference   string // ej. ID de la venta que originó el movimiento
	Reason      string
	CreatedAt   time.Time
}
