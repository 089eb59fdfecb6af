package entity

import "time"

// CuentaBancaria es la cuenta que el cliente declara para el depósito del 25%
// del capital social. Se elimina junto con el trámite.
type CuentaBancaria struct {
	ID        string
	TramiteID string
	Banco     string
	CBU       string
	Alias     string
	Titular   string
	CreatedAt time.Time
}
