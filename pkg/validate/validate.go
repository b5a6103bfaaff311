// Package validate reúne las validaciones de campos de negocio:
// precios, pesos, stock, descuento y tipo de animal. Las reglas son
// las mismas en alta y en actualización parcial.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Límites de negocio (política fija, no derivada).
var (
	maxPrice  = decimal.RequireFromString("999999.99")
	maxWeight = decimal.NewFromInt(50) // kg por empaque
)

const maxStock = 999999

// DiscountCapPercent tope de descuento sobre el total bruto (50%).
var DiscountCapPercent = decimal.RequireFromString("0.5")

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email valida el formato de un correo electrónico.
func Email(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("e-mail inválido: %q", email)
	}
	return nil
}

// Price valida un precio de venta: mayor que cero y dentro del límite.
func Price(price decimal.Decimal) error {
	if !price.GreaterThan(decimal.Zero) {
		return fmt.Errorf("el precio debe ser mayor que cero")
	}
	if price.GreaterThan(maxPrice) {
		return fmt.Errorf("precio demasiado alto (máximo %s)", maxPrice)
	}
	return nil
}

// Weight valida el peso del empaque: (0, 50] kg.
func Weight(weight decimal.Decimal) error {
	if !weight.GreaterThan(decimal.Zero) {
		return fmt.Errorf("el peso debe ser mayor que cero")
	}
	if weight.GreaterThan(maxWeight) {
		return fmt.Errorf("el peso no puede exceder %s kg", maxWeight)
	}
	return nil
}

// Stock valida una cantidad de stock: [0, 999999].
func Stock(stock int64) error {
	if stock < 0 {
		return fmt.Errorf("el stock no puede ser negativo")
	}
	if stock > maxStock {
		return fmt.Errorf("valor de stock demasiado alto (máximo %d)", maxStock)
	}
	return nil
}

// Discount valida un descuento contra el total bruto de la venta:
// 0 <= descuento <= total y descuento <= 50% del total.
func Discount(amount, grossTotal decimal.Decimal) error {
	if amount.LessThan(decimal.Zero) {
		return fmt.Errorf("el descuento no puede ser negativo")
	}
	if amount.GreaterThan(grossTotal) {
		return fmt.Errorf("el descuento no puede superar el total de la venta")
	}
	if amount.GreaterThan(grossTotal.Mul(DiscountCapPercent)) {
		return fmt.Errorf("descuento máximo permitido: 50%% del total")
	}
	return nil
}

// stripDiacritics descompone (NFD) y elimina las marcas diacríticas,
// de modo que "cão" y "cao" comparen igual.
var stripDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeAnimalType normaliza el tipo de animal a su valor canónico
// ("gato" o "cão"), aceptando variantes sin acento como "cao".
// Devuelve cadena vacía si el tipo no es reconocido.
func NormalizeAnimalType(animalType string) string {
	folded, _, err := transform.String(stripDiacritics, strings.ToLower(strings.TrimSpace(animalType)))
	if err != nil {
		return ""
	}
	switch folded {
	case "gato":
		return "gato"
	case "cao":
		return "cão"
	default:
		return ""
	}
}
