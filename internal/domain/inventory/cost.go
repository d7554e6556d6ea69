// Package inventory reglas de valoración de inventario.
package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado después de una entrada:
// ((stock × costo actual) + (cantidad × costo de la entrada)) / (stock + cantidad).
// Con existencias resultantes no positivas devuelve el costo de la entrada.
func WeightedAverageCost(stock, currentCost, qty, entryCost decimal.Decimal) decimal.Decimal {
	if stock.IsNegative() {
		stock = decimal.Zero
	}
	total := stock.Add(qty)
	if !total.IsPositive() {
		return entryCost
	}
	return stock.Mul(currentCost).Add(qty.Mul(entryCost)).Div(total)
}
