package entity

import "time"

// Customer representa un cliente de la tienda. CPF es opcional pero
// único cuando está presente; la baja es lógica (Active en false).
type Customer struct {
	ID        string
	Name      string
	CPF       string
	Phone     string
	Email     string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
