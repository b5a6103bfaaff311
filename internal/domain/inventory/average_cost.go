package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost recalcula el costo promedio ponderado de un producto
// tras una entrada de mercadería:
//
//	nuevo = ((stock * costoActual) + (cantidad * costoUnitario)) / (stock + cantidad)
//
// Si el stock resultante es cero o negativo devuelve el costo unitario de
// la entrada, que pasa a ser el único costo conocido.
func WeightedAverageCost(stock int64, currentCost decimal.Decimal, quantity int64, unitCost decimal.Decimal) decimal.Decimal {
	total := stock + quantity
	if total <= 0 {
		return unitCost
	}
	current := decimal.NewFromInt(stock).Mul(currentCost)
	incoming := decimal.NewFromInt(quantity).Mul(unitCost)
	return current.Add(incoming).Div(decimal.NewFromInt(total)).Round(2)
}
