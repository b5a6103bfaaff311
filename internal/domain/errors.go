package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los casos de uso los
// envuelven con fmt.Errorf("%w: detalle") para que el mensaje lleve el
// nombre de la entidad y, en errores de stock, la cantidad disponible.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrEmptyCart          = errors.New("carrito vacío")
	ErrInvalidDiscount    = errors.New("descuento inválido")
	ErrProductInactive    = errors.New("producto inactivo")
	ErrAlreadyCancelled   = errors.New("la venta ya está cancelada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
